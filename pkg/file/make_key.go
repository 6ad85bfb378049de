package file

import (
	"path/filepath"
	"strings"
)

// MakeKey builds a scratch file name: <category>_<token><ext>. The extension is taken
// from the client's original name only if it is short and alphanumeric.
func MakeKey(category, token, originalName string) string {
	return category + "_" + token + SafeExt(originalName)
}

func SafeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
