package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// ApplyPlugin runs another plugin over the path. A plugin the provider does
// not know leaves the path unchanged.
type ApplyPlugin struct {
	ID uuid.UUID `yaml:"id"`
}

func (*ApplyPlugin) Opcode() rune { return OpApplyPlugin }

func (e *ApplyPlugin) encodePayload(w *Writer) { w.WriteGUID(e.ID) }

func (e *ApplyPlugin) validate(host Host, seen map[uuid.UUID]struct{}) error {
	return validateReference(e.ID, host, seen)
}

func (e *ApplyPlugin) modifyPath(path string, host Host) string {
	return applyPlugin(e.ID, path, host)
}

func (e *ApplyPlugin) enabledFor(parentPath, file string, host Host) bool {
	return pluginEnabledFor(e.ID, parentPath, file, host)
}

// ApplyPipelinePlugin runs another pipeline-backed plugin over the path.
// Validation follows the reference into that plugin's own pipeline.
type ApplyPipelinePlugin struct {
	ID uuid.UUID `yaml:"id"`
}

func (*ApplyPipelinePlugin) Opcode() rune { return OpApplyPipelinePlugin }

func (e *ApplyPipelinePlugin) encodePayload(w *Writer) { w.WriteGUID(e.ID) }

func (e *ApplyPipelinePlugin) validate(host Host, seen map[uuid.UUID]struct{}) error {
	return validateReference(e.ID, host, seen)
}

func (e *ApplyPipelinePlugin) modifyPath(path string, host Host) string {
	return applyPlugin(e.ID, path, host)
}

func (e *ApplyPipelinePlugin) enabledFor(parentPath, file string, host Host) bool {
	return pluginEnabledFor(e.ID, parentPath, file, host)
}

// validateReference records id in seen and, when the referenced plugin is
// itself pipeline-backed, validates its pipeline against the same set.
func validateReference(id uuid.UUID, host Host, seen map[uuid.UUID]struct{}) error {
	if _, dup := seen[id]; dup {
		return &InvalidPipelineError{Plugin: id, Err: ErrLoopDetected}
	}
	seen[id] = struct{}{}

	p, ok := host.plugin(id)
	if !ok {
		return nil
	}
	backed, ok := p.(PipelineBacked)
	if !ok {
		return nil
	}
	nested, err := backed.Pipeline()
	if err != nil {
		return &InvalidPipelineError{Plugin: id, Err: fmt.Errorf("%w: %w", ErrPossibleDowngrade, err)}
	}
	return nested.validate(host, seen)
}

func applyPlugin(id uuid.UUID, path string, host Host) string {
	p, ok := host.plugin(id)
	if !ok {
		return path
	}
	return p.Path(path)
}

func pluginEnabledFor(id uuid.UUID, parentPath, file string, host Host) bool {
	p, ok := host.plugin(id)
	if !ok {
		return true
	}
	return p.EnabledFor(parentPath, file)
}
