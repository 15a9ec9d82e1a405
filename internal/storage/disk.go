package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// UsageOf returns the bytes on disk behind s.
func UsageOf(s Storage) (int64, error) {
	return DiskUsageBytes(s.Paths()...)
}

// DiskUsageBytes returns the total size in bytes of the given paths.
// A directory is summed recursively. Missing and empty paths contribute 0.
func DiskUsageBytes(paths ...string) (int64, error) {
	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if !info.IsDir() {
			total += info.Size()
			continue
		}
		err = filepath.WalkDir(p, func(_ string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			total += fi.Size()
			return nil
		})
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}
