//go:build windows

package system

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

func volumeLabel(path string) (string, error) {
	var root *uint16
	if vol := filepath.VolumeName(path); vol != "" {
		p, err := windows.UTF16PtrFromString(vol + `\`)
		if err != nil {
			return "", err
		}
		root = p
	}
	var name [windows.MAX_PATH + 1]uint16
	if err := windows.GetVolumeInformation(root, &name[0], uint32(len(name)), nil, nil, nil, nil, 0); err != nil {
		return "", fmt.Errorf("volume information for %q: %w", path, err)
	}
	return windows.UTF16ToString(name[:]), nil
}
