package source

import (
	"slices"
	"strings"
)

// DefaultExtensions are the file extensions checked when no configuration
// overrides them.
var DefaultExtensions = []string{"c", "cpp", "h"}

// Eligible reports whether path ends with one of extensions. The extension is
// whatever follows the last dot of the path, compared case-sensitively.
func Eligible(path string, extensions []string) bool {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return false
	}
	ext := path[i+1:]
	if strings.ContainsRune(ext, '/') {
		return false
	}
	return slices.Contains(extensions, ext)
}
