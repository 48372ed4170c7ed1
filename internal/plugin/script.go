package plugin

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.starlark.net/starlark"
	"go.uber.org/zap"
)

// Script entry points.
const (
	scriptTransform = "transform" // def transform(path): return new_path
	scriptEnabled   = "enabled"   // optional: def enabled(parent, file): return bool
)

// ScriptPlugin is a plugin written in Starlark. The script must define
// transform(path) and may define enabled(parent, file).
//
// The script is loaded once. A script that fails to load behaves like an
// invalid pipeline: Path returns the error text and EnabledFor is false.
// A failing call leaves the path unchanged.
type ScriptPlugin struct {
	id          uuid.UUID
	description string
	source      string
	logger      *zap.Logger

	once      sync.Once
	transform starlark.Callable
	enabled   starlark.Callable
	err       error
}

var _ Plugin = (*ScriptPlugin)(nil)

// NewScriptPlugin returns a plugin running the Starlark source.
func NewScriptPlugin(id uuid.UUID, description, source string, logger *zap.Logger) *ScriptPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptPlugin{id: id, description: description, source: source, logger: logger}
}

func (s *ScriptPlugin) ID() uuid.UUID       { return s.id }
func (s *ScriptPlugin) Description() string { return s.description }

func (s *ScriptPlugin) filename() string {
	return s.id.String() + ".star"
}

func (s *ScriptPlugin) load() error {
	s.once.Do(func() {
		thread := &starlark.Thread{Name: "load " + s.filename()}
		globals, err := starlark.ExecFile(thread, s.filename(), s.source, nil)
		if err != nil {
			s.err = fmt.Errorf("load script plugin %s: %w", s.id, err)
		} else if fn, ok := globals[scriptTransform].(starlark.Callable); !ok {
			s.err = fmt.Errorf("script plugin %s does not define %s(path)", s.id, scriptTransform)
		} else {
			globals.Freeze()
			s.transform = fn
			s.enabled, _ = globals[scriptEnabled].(starlark.Callable)
		}
		if s.err != nil {
			s.logger.Warn("script plugin disabled", zap.Stringer("plugin", s.id), zap.Error(s.err))
		}
	})
	return s.err
}

// Err returns the load error, if any.
func (s *ScriptPlugin) Err() error { return s.load() }

func (s *ScriptPlugin) call(fn starlark.Callable, args ...starlark.Value) (starlark.Value, error) {
	thread := &starlark.Thread{Name: s.filename()}
	return starlark.Call(thread, fn, starlark.Tuple(args), nil)
}

func (s *ScriptPlugin) Path(path string) string {
	if err := s.load(); err != nil {
		return err.Error()
	}
	v, err := s.call(s.transform, starlark.String(path))
	if err != nil {
		s.logger.Debug("script transform failed", zap.Stringer("plugin", s.id), zap.Error(err))
		return path
	}
	out, ok := starlark.AsString(v)
	if !ok {
		s.logger.Debug("script transform returned a non-string",
			zap.Stringer("plugin", s.id), zap.String("type", v.Type()))
		return path
	}
	return out
}

func (s *ScriptPlugin) EnabledFor(parentPath, file string) bool {
	if err := s.load(); err != nil {
		return false
	}
	if s.enabled == nil {
		return true
	}
	v, err := s.call(s.enabled, starlark.String(parentPath), starlark.String(file))
	if err != nil {
		s.logger.Debug("script enabled check failed", zap.Stringer("plugin", s.id), zap.Error(err))
		return false
	}
	return bool(v.Truth())
}
