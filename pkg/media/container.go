package media

import (
	"path/filepath"
	"strings"
)

// supportedExtensions is the container allow-list for reversal and
// concatenation inputs.
var supportedExtensions = map[string]bool{
	".mov": true,
	".mp4": true,
	".m4v": true,
}

// SupportedExtension reports whether the path's container extension is in
// the allow-list. The check is case-insensitive.
func SupportedExtension(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// FilterSupported returns the paths whose extension is in the allow-list,
// preserving input order.
func FilterSupported(paths []string) []string {
	var accepted []string
	for _, p := range paths {
		if SupportedExtension(p) {
			accepted = append(accepted, p)
		}
	}
	return accepted
}
