// Package statement discovers bank-statement files and drives their text
// through extraction into the ledger.
package statement

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveredFile is one candidate statement found on disk.
type DiscoveredFile struct {
	Path string
	Name string
	Ext  string
}

// ScanDir walks dir and discovers statement files by extension. PDF and
// plain-text statements are supported. A missing directory is not an
// error; it just yields nothing.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".pdf" && ext != ".txt" {
			return nil
		}

		files = append(files, DiscoveredFile{
			Path: path,
			Name: d.Name(),
			Ext:  ext,
		})
		return nil
	})

	return files, err
}
