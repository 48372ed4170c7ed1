// Package pipeline decodes and runs user-defined path transformation
// pipelines.
//
// A pipeline is stored as an encoded elements stream: a two-digit element
// count followed by one opcode character and a fixed-layout payload per
// element. Integers are four decimal characters, strings are an integer
// length followed by that many characters, booleans are '0' or '1' and plugin
// identifiers are braced GUIDs.
//
// Running a pipeline folds its elements over a path and a value stack that
// lives for a single run. Elements that reference other plugins reach them
// through a PluginProvider; validation follows those references to reject
// cycles.
package pipeline
