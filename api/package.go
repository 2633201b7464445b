package api

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"pdf_overlay/batch"
)

// writeZip writes every result as one entry of a zip archive, in result order.
func writeZip(w io.Writer, results []batch.Result) error {
	zw := zip.NewWriter(w)
	for i, name := range entryNames(results) {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := f.Write(results[i].PDF); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
	}
	return zw.Close()
}

// entryNames returns one archive entry name per result. A name that is already taken gets
// _2, _3, ... inserted before its extension.
func entryNames(results []batch.Result) []string {
	names := make([]string, len(results))
	seen := make(map[string]bool, len(results))
	for i, r := range results {
		name := sanitizeFilename(r.Name)
		if seen[strings.ToLower(name)] {
			stem, ext := splitExt(name)
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
				if !seen[strings.ToLower(candidate)] {
					name = candidate
					break
				}
			}
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func splitExt(name string) (string, string) {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i], name[i:]
	}
	return name, ""
}
