package builtin

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

func TestBuiltinPaths(t *testing.T) {
	tests := []struct {
		plugin plugin.Plugin
		in     string
		want   string
	}{
		{&FullPath{}, `C:\a\b.txt`, `C:\a\b.txt`},
		{&Name{}, `C:\a\b.txt`, "b.txt"},
		{&Name{}, "b.txt", "b.txt"},
		{&Folder{}, `C:\a\b.txt`, `C:\a`},
		{&Folder{}, "b.txt", "b.txt"},
		{&Unix{}, `C:\a\b.txt`, "C:/a/b.txt"},
		{&Cygwin{}, `C:\a\b.txt`, "/cygdrive/c/a/b.txt"},
		{&Cygwin{}, `\\srv\share\x`, "//srv/share/x"},
		{&WSL{}, `D:\src`, "/mnt/d/src"},
		{&MSYS{}, `E:\x y`, "/e/x y"},
		{NewFileURI(), `C:\my docs\a#1.txt`, "file:///C:/my%20docs/a%231.txt"},
		{&Samba{}, `\\srv\share\x`, "smb://srv/share/x"},
		{&Samba{}, `C:\x`, `C:\x`},
	}
	for _, tt := range tests {
		t.Run(tt.plugin.Description()+" "+tt.in, func(t *testing.T) {
			if got := tt.plugin.Path(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSambaEnabledOnlyOnShares(t *testing.T) {
	s := &Samba{}
	if !s.EnabledFor(`\\srv\share`, "f") {
		t.Error("expected enabled on a share")
	}
	if s.EnabledFor(`C:\dir`, "f") {
		t.Error("expected disabled on a local drive")
	}
}

func TestRegisterAllUniqueIDs(t *testing.T) {
	reg := plugin.NewRegistry(nil, nil)
	RegisterAll(reg)
	all := reg.All()
	if len(all) != 9 {
		t.Fatalf("expected 9 plugins, got %d", len(all))
	}
	seen := map[uuid.UUID]bool{}
	for _, p := range all {
		if seen[p.ID()] {
			t.Errorf("duplicate id %s", p.ID())
		}
		seen[p.ID()] = true
	}
	if _, err := reg.Find("unix path"); err != nil {
		t.Errorf("find by description: %v", err)
	}
}
