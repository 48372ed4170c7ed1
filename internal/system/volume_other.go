//go:build !windows

package system

import (
	"errors"
	"fmt"
)

func volumeLabel(path string) (string, error) {
	return "", fmt.Errorf("volume label for %q: %w", path, errors.ErrUnsupported)
}
