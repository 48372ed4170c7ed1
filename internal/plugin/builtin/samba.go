package builtin

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var SambaID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b18")

// Samba copies a network path as an smb:// URL. It only applies to items on
// a network share.
type Samba struct{}

var _ plugin.Plugin = (*Samba)(nil)

func (*Samba) ID() uuid.UUID       { return SambaID }
func (*Samba) Description() string { return "Samba path" }

func (*Samba) EnabledFor(parentPath, _ string) bool {
	return isUNC(parentPath)
}

func (*Samba) Path(path string) string {
	if !isUNC(path) {
		return path
	}
	return "smb://" + strings.TrimLeft(forward(path), "/")
}
