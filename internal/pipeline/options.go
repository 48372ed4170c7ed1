package pipeline

// Options is the record folded from every element's option contribution.
// Later elements override earlier ones field by field.
type Options struct {
	Separator      string `yaml:"separator,omitempty"` // empty: caller default
	Recursive      bool   `yaml:"recursive,omitempty"`
	Executable     string `yaml:"executable,omitempty"`
	Arguments      string `yaml:"arguments,omitempty"`
	UseFilelist    bool   `yaml:"use_filelist,omitempty"`
	ShowForFiles   bool   `yaml:"show_for_files"`
	ShowForFolders bool   `yaml:"show_for_folders"`
}

// DefaultOptions returns the options of a pipeline without option elements.
func DefaultOptions() Options {
	return Options{
		ShowForFiles:   true,
		ShowForFolders: true,
	}
}

// SetExecutable changes the executable. Arguments belong to the previous
// executable and are cleared.
func (o *Options) SetExecutable(executable string) {
	o.Executable = executable
	o.Arguments = ""
}
