package builtin

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var UnixID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b13")

// Unix copies the path with forward slashes.
type Unix struct{}

var _ plugin.Plugin = (*Unix)(nil)

func (*Unix) ID() uuid.UUID               { return UnixID }
func (*Unix) Description() string         { return "Unix path" }
func (*Unix) EnabledFor(_, _ string) bool { return true }
func (*Unix) Path(path string) string     { return forward(path) }
