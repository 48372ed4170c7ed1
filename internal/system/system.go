// Package system implements the operating-system calls a few pipeline
// elements delegate to.
package system

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultUnexpandVars lists the variables UnexpandEnvStrings considers when
// none are configured.
var DefaultUnexpandVars = []string{
	"ALLUSERSPROFILE",
	"APPDATA",
	"LOCALAPPDATA",
	"ProgramFiles",
	"SystemRoot",
	"USERPROFILE",
	"HOME",
}

// OS is the real operating system.
type OS struct {
	// UnexpandVars are tried in order; the longest matching value wins.
	UnexpandVars []string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

var (
	defaultOnce sync.Once
	defaultOS   *OS
)

// Default returns the shared OS instance using DefaultUnexpandVars.
func Default() *OS {
	defaultOnce.Do(func() {
		defaultOS = New(DefaultUnexpandVars)
	})
	return defaultOS
}

// New returns an OS that unexpands the given variables.
func New(unexpandVars []string) *OS {
	return &OS{UnexpandVars: unexpandVars, Getenv: os.Getenv}
}

// ResolveSymlinks returns path with every symbolic link and junction resolved.
func (s *OS) ResolveSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// UnexpandEnvStrings replaces the longest leading directory held by one of
// UnexpandVars with a %NAME% reference. ok is false if no variable matched.
func (s *OS) UnexpandEnvStrings(path string) (string, bool) {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	var bestName, bestValue string
	for _, name := range s.UnexpandVars {
		value := strings.TrimRight(getenv(name), `\/`)
		if value == "" || len(value) <= len(bestValue) || len(path) < len(value) {
			continue
		}
		if !strings.EqualFold(path[:len(value)], value) {
			continue
		}
		if len(path) > len(value) && path[len(value)] != '\\' && path[len(value)] != '/' {
			continue
		}
		bestName, bestValue = name, value
	}
	if bestName == "" {
		return path, false
	}
	return "%" + bestName + "%" + path[len(bestValue):], true
}

// VolumeLabel returns the label of the volume holding path, or of the
// current volume when path names none.
func (s *OS) VolumeLabel(path string) (string, error) {
	return volumeLabel(path)
}

// IsDir reports whether path names an existing directory.
func (s *OS) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
