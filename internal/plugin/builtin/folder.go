package builtin

import (
	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

var FolderID = uuid.MustParse("f2c3b1a0-2d6e-4a8b-9c71-0e5d4f3a2b12")

// Folder copies the path of the parent folder.
type Folder struct{}

var _ plugin.Plugin = (*Folder)(nil)

func (*Folder) ID() uuid.UUID               { return FolderID }
func (*Folder) Description() string         { return "Parent folder" }
func (*Folder) EnabledFor(_, _ string) bool { return true }

func (*Folder) Path(path string) string {
	if i := lastSeparator(path); i > 0 {
		return path[:i]
	}
	return path
}
