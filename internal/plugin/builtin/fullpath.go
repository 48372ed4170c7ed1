package builtin

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var FullPathID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b10")

// FullPath copies the path as selected.
type FullPath struct{}

var _ plugin.Plugin = (*FullPath)(nil)

func (*FullPath) ID() uuid.UUID               { return FullPathID }
func (*FullPath) Description() string         { return "Full path" }
func (*FullPath) Path(path string) string     { return path }
func (*FullPath) EnabledFor(_, _ string) bool { return true }
