package pipeline

// PathsSeparator sets the string placed between paths when several are copied.
type PathsSeparator struct {
	Separator string `yaml:"separator"`
}

func (*PathsSeparator) Opcode() rune { return OpPathsSeparator }

func (e *PathsSeparator) encodePayload(w *Writer) { w.WriteString(e.Separator) }

func (e *PathsSeparator) modifyOptions(opts *Options) { opts.Separator = e.Separator }

// RecursiveCopy makes folder selections include their contents.
type RecursiveCopy struct{}

func (*RecursiveCopy) Opcode() rune { return OpRecursiveCopy }

func (*RecursiveCopy) modifyOptions(opts *Options) { opts.Recursive = true }

// Executable launches a program with the paths instead of copying them.
type Executable struct {
	Path string `yaml:"path"`
}

func (*Executable) Opcode() rune { return OpExecutable }

func (e *Executable) encodePayload(w *Writer) { w.WriteString(e.Path) }

func (e *Executable) modifyOptions(opts *Options) {
	opts.SetExecutable(e.Path)
	opts.UseFilelist = false
}

// ExecutableWithFilelist launches a program with a file listing the paths.
type ExecutableWithFilelist struct {
	Path string `yaml:"path"`
}

func (*ExecutableWithFilelist) Opcode() rune { return OpExecutableWithFilelist }

func (e *ExecutableWithFilelist) encodePayload(w *Writer) { w.WriteString(e.Path) }

func (e *ExecutableWithFilelist) modifyOptions(opts *Options) {
	opts.SetExecutable(e.Path)
	opts.UseFilelist = true
}

// CommandLine launches a program with explicit arguments.
type CommandLine struct {
	Executable  string `yaml:"executable"`
	Arguments   string `yaml:"arguments"`
	UseFilelist bool   `yaml:"use_filelist"`
}

func (*CommandLine) Opcode() rune { return OpCommandLine }

func (e *CommandLine) encodePayload(w *Writer) {
	w.WriteString(e.Executable)
	w.WriteString(e.Arguments)
	w.WriteBool(e.UseFilelist)
}

func (e *CommandLine) modifyOptions(opts *Options) {
	opts.SetExecutable(e.Executable)
	opts.Arguments = e.Arguments
	opts.UseFilelist = e.UseFilelist
}

// DisplayForSelection restricts the kinds of items the plugin is shown for.
type DisplayForSelection struct {
	ShowForFiles   bool `yaml:"show_for_files"`
	ShowForFolders bool `yaml:"show_for_folders"`
}

func (*DisplayForSelection) Opcode() rune { return OpDisplayForSelection }

func (e *DisplayForSelection) encodePayload(w *Writer) {
	w.WriteBool(e.ShowForFiles)
	w.WriteBool(e.ShowForFolders)
}

func (e *DisplayForSelection) modifyOptions(opts *Options) {
	opts.ShowForFiles = e.ShowForFiles
	opts.ShowForFolders = e.ShowForFolders
}
