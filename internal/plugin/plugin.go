package plugin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pathcopycopy/pathcopy/internal/pipeline"
	"github.com/pathcopycopy/pathcopy/internal/system"
)

// ErrUnknownPlugin is returned when no plugin matches an identifier.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Plugin is the interface every path transformation must implement.
type Plugin interface {
	// ID returns the identifier used by pipelines and configuration.
	ID() uuid.UUID

	// Description returns the human-readable name shown in listings.
	Description() string

	// Path transforms a single path.
	Path(path string) string

	// EnabledFor reports whether the plugin applies to file inside parentPath.
	EnabledFor(parentPath, file string) bool
}

// Configured is implemented by plugins that carry their own copy options.
type Configured interface {
	Options() pipeline.Options
}

// OptionsOf returns the options of p, or the defaults.
func OptionsOf(p Plugin) pipeline.Options {
	if c, ok := p.(Configured); ok {
		return c.Options()
	}
	return pipeline.DefaultOptions()
}

// Registry maps plugin identifiers to implementations. It is the plugin
// provider given to pipelines.
type Registry struct {
	mu      sync.RWMutex
	plugins map[uuid.UUID]Plugin
	system  pipeline.System
	logger  *zap.Logger
}

// NewRegistry creates an empty registry. A nil sys selects the real
// operating system; a nil logger discards output.
func NewRegistry(sys pipeline.System, logger *zap.Logger) *Registry {
	if sys == nil {
		sys = system.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		plugins: make(map[uuid.UUID]Plugin),
		system:  sys,
		logger:  logger,
	}
}

// Register adds a plugin, replacing any plugin with the same identifier.
func (r *Registry) Register(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[p.ID()] = p
	r.logger.Debug("registered plugin",
		zap.Stringer("plugin", p.ID()),
		zap.String("description", p.Description()))
}

// Lookup returns a plugin by identifier.
func (r *Registry) Lookup(id uuid.UUID) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, id)
	}
	return p, nil
}

// Find resolves a plugin from its identifier, with or without braces, or
// from its description ignoring case.
func (r *Registry) Find(ref string) (Plugin, error) {
	if id, err := uuid.Parse(strings.Trim(ref, "{}")); err == nil {
		return r.Lookup(id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plugins {
		if strings.EqualFold(p.Description(), ref) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, ref)
}

// Plugin implements pipeline.PluginProvider.
func (r *Registry) Plugin(id uuid.UUID) (pipeline.Plugin, bool) {
	p, err := r.Lookup(id)
	if err != nil {
		return nil, false
	}
	return p, true
}

// Host returns the collaborators pipelines run against.
func (r *Registry) Host() pipeline.Host {
	return pipeline.Host{Plugins: r, System: r.system}
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *zap.Logger { return r.logger }

// All returns all registered plugins sorted by description.
func (r *Registry) All() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plugins := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		plugins = append(plugins, p)
	}
	sort.Slice(plugins, func(i, j int) bool {
		if plugins[i].Description() != plugins[j].Description() {
			return plugins[i].Description() < plugins[j].Description()
		}
		return plugins[i].ID().String() < plugins[j].ID().String()
	})
	return plugins
}
