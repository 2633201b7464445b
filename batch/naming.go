package batch

import (
	"path/filepath"
	"strings"
)

// OutputName derives the output file name: the base name without its last extension,
// followed by suffix and ".pdf".
func OutputName(name, suffix string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + suffix + ".pdf"
}
