package pipeline

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/system"
)

// Plugin is the part of a plugin that pipeline elements can call.
type Plugin interface {
	// Path transforms a single path.
	Path(path string) string

	// EnabledFor reports whether the plugin applies to file inside parentPath.
	EnabledFor(parentPath, file string) bool
}

// PipelineBacked is implemented by plugins whose behaviour comes from their
// own pipeline. Pipeline returns the decoded, not yet validated, pipeline.
type PipelineBacked interface {
	Plugin
	Pipeline() (*Pipeline, error)
}

// PluginProvider looks plugins up by identifier.
type PluginProvider interface {
	Plugin(id uuid.UUID) (Plugin, bool)
}

// System is the operating-system collaborator used by the few elements that
// need more than string manipulation.
type System interface {
	ResolveSymlinks(path string) (string, error)
	UnexpandEnvStrings(path string) (string, bool)
	VolumeLabel(path string) (string, error)
	IsDir(path string) bool
}

// Host bundles the collaborators passed to every execution and validation call.
type Host struct {
	Plugins PluginProvider
	System  System
}

func (h Host) plugin(id uuid.UUID) (Plugin, bool) {
	if h.Plugins == nil {
		return nil, false
	}
	return h.Plugins.Plugin(id)
}

func (h Host) system() System {
	if h.System == nil {
		return system.Default()
	}
	return h.System
}
