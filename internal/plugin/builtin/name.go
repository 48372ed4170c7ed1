package builtin

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var NameID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b11")

// Name copies the last path segment.
type Name struct{}

var _ plugin.Plugin = (*Name)(nil)

func (*Name) ID() uuid.UUID               { return NameID }
func (*Name) Description() string         { return "Name" }
func (*Name) EnabledFor(_, _ string) bool { return true }

func (*Name) Path(path string) string {
	return path[lastSeparator(path)+1:]
}
