package builtin

import "github.com/pathcopycopy/pathcopy/internal/plugin"

// RegisterAll adds all built-in plugins to the registry.
func RegisterAll(r *plugin.Registry) {
	r.Register(&Cygwin{})
	r.Register(NewFileURI())
	r.Register(&Folder{})
	r.Register(&FullPath{})
	r.Register(&MSYS{})
	r.Register(&Name{})
	r.Register(&Samba{})
	r.Register(&Unix{})
	r.Register(&WSL{})
}
