package builtin

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var MSYSID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b16")

// MSYS copies the path as seen from an MSYS2 shell.
type MSYS struct{}

var _ plugin.Plugin = (*MSYS)(nil)

func (*MSYS) ID() uuid.UUID               { return MSYSID }
func (*MSYS) Description() string         { return "MSYS path" }
func (*MSYS) EnabledFor(_, _ string) bool { return true }
func (*MSYS) Path(path string) string     { return mountPath(path, "/") }
