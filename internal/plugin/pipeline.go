package plugin

import (
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pathcopycopy/pathcopy/internal/pipeline"
)

// PipelinePlugin is a plugin defined by an encoded elements stream.
//
// The pipeline is built and validated on first use. A pipeline that fails
// either step is never retried: Path then returns the error text and
// EnabledFor returns false.
type PipelinePlugin struct {
	id          uuid.UUID
	description string
	encoded     string
	reg         *Registry

	decodeOnce sync.Once
	decoded    *pipeline.Pipeline
	decodeErr  error

	buildOnce sync.Once
	built     *pipeline.Pipeline // nil if invalid
	buildErr  error
	opts      pipeline.Options
}

var (
	_ Plugin                  = (*PipelinePlugin)(nil)
	_ Configured              = (*PipelinePlugin)(nil)
	_ pipeline.PipelineBacked = (*PipelinePlugin)(nil)
)

// NewPipelinePlugin returns a plugin running encoded. References to other
// plugins resolve through reg.
func NewPipelinePlugin(id uuid.UUID, description, encoded string, reg *Registry) *PipelinePlugin {
	return &PipelinePlugin{
		id:          id,
		description: description,
		encoded:     encoded,
		reg:         reg,
	}
}

func (p *PipelinePlugin) ID() uuid.UUID       { return p.id }
func (p *PipelinePlugin) Description() string { return p.description }

// Encoded returns the elements stream the plugin was created from.
func (p *PipelinePlugin) Encoded() string { return p.encoded }

// Pipeline returns the decoded pipeline without validating it.
func (p *PipelinePlugin) Pipeline() (*pipeline.Pipeline, error) {
	p.decodeOnce.Do(func() {
		p.decoded, p.decodeErr = pipeline.Parse(p.encoded)
	})
	return p.decoded, p.decodeErr
}

func (p *PipelinePlugin) build() {
	p.buildOnce.Do(func() {
		pl, err := p.Pipeline()
		if err == nil {
			err = pl.Validate(p.id, p.reg.Host())
		}
		if err != nil {
			p.buildErr = err
			p.reg.Logger().Warn("pipeline plugin disabled",
				zap.Stringer("plugin", p.id),
				zap.String("description", p.description),
				zap.Error(err))
			return
		}
		p.built = pl
		p.opts = pl.Options()
	})
}

// Err returns the error that made the pipeline unusable, or nil.
func (p *PipelinePlugin) Err() error {
	p.build()
	return p.buildErr
}

// Path runs the pipeline over path.
func (p *PipelinePlugin) Path(path string) string {
	p.build()
	if p.built == nil {
		return p.buildErr.Error()
	}
	return p.built.ModifyPath(path, p.reg.Host())
}

// EnabledFor requires a valid pipeline whose elements are all enabled and
// whose display options allow the kind of item selected.
func (p *PipelinePlugin) EnabledFor(parentPath, file string) bool {
	p.build()
	if p.built == nil {
		return false
	}
	host := p.reg.Host()
	if !p.built.EnabledFor(parentPath, file, host) {
		return false
	}
	if host.System != nil && host.System.IsDir(filepath.Join(parentPath, file)) {
		return p.opts.ShowForFolders
	}
	return p.opts.ShowForFiles
}

// Options returns the pipeline's options, or the defaults if it is invalid.
func (p *PipelinePlugin) Options() pipeline.Options {
	p.build()
	if p.built == nil {
		return pipeline.DefaultOptions()
	}
	return p.opts
}

// Separator returns the paths separator, empty for the caller's default.
func (p *PipelinePlugin) Separator() string { return p.Options().Separator }

// Recursive reports whether folder selections include their contents.
func (p *PipelinePlugin) Recursive() bool { return p.Options().Recursive }

// Action returns what to do with the transformed paths.
func (p *PipelinePlugin) Action() Action { return ActionFor(p.Options()) }
