package constants

import "strings"

// Snapshot formats accepted by the layout snapshot reader.
const (
	JSON = "JSON"
	TXT  = "TXT"
)

// AllowedExtensions holds the default extensions picked up when scanning a directory.
var AllowedExtensions = map[string]struct{}{
	"json": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the snapshot format for an extension, or "" if unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "json":
		return JSON
	case "txt", "text":
		return TXT
	default:
		return ""
	}
}
