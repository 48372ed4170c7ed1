package builtin

import "strings"

func lastSeparator(path string) int {
	return strings.LastIndexAny(path, `\/`)
}

// splitDrive splits "C:\dir" into "c" and "\dir".
func splitDrive(path string) (drive, rest string, ok bool) {
	if len(path) < 2 || path[1] != ':' {
		return "", path, false
	}
	c := path[0]
	if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return "", path, false
	}
	return strings.ToLower(path[:1]), path[2:], true
}

func isUNC(path string) bool {
	return strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
}

func forward(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// mountPath maps a drive path below prefix, e.g. C:\a with "/mnt/" gives
// /mnt/c/a. UNC and relative paths only get forward slashes.
func mountPath(path, prefix string) string {
	drive, rest, ok := splitDrive(path)
	if !ok {
		return forward(path)
	}
	return prefix + drive + forward(rest)
}
