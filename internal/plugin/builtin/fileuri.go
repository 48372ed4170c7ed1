package builtin

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/pipeline"
	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var FileURIID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b17")

// FileURI copies the path as a file:// URI.
type FileURI struct {
	p *pipeline.Pipeline
}

var _ plugin.Plugin = (*FileURI)(nil)

func NewFileURI() *FileURI {
	return &FileURI{p: pipeline.New(
		&pipeline.EncodeURIChars{},
		&pipeline.BackslashesToForward{},
		&pipeline.PushToStack{Method: pipeline.PushFixed, Value: "file:///"},
		&pipeline.PopFromStack{Location: pipeline.PopStart},
	)}
}

func (*FileURI) ID() uuid.UUID               { return FileURIID }
func (*FileURI) Description() string         { return "File URI" }
func (*FileURI) EnabledFor(_, _ string) bool { return true }

func (f *FileURI) Path(path string) string {
	return f.p.ModifyPath(path, pipeline.Host{})
}
