package builtin

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var CygwinID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b14")

// Cygwin copies the path as seen from a Cygwin shell.
type Cygwin struct{}

var _ plugin.Plugin = (*Cygwin)(nil)

func (*Cygwin) ID() uuid.UUID               { return CygwinID }
func (*Cygwin) Description() string         { return "Cygwin path" }
func (*Cygwin) EnabledFor(_, _ string) bool { return true }
func (*Cygwin) Path(path string) string     { return mountPath(path, "/cygdrive/") }
