package builtin

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var WSLID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b15")

// WSL copies the path as mounted in the Windows Subsystem for Linux.
type WSL struct{}

var _ plugin.Plugin = (*WSL)(nil)

func (*WSL) ID() uuid.UUID               { return WSLID }
func (*WSL) Description() string         { return "WSL path" }
func (*WSL) EnabledFor(_, _ string) bool { return true }
func (*WSL) Path(path string) string     { return mountPath(path, "/mnt/") }
