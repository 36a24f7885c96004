package common

import (
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ImageSources are the paths, relative to the repo root, that end up in
// the API image. The image tag changes only when one of them does.
var ImageSources = []string{"go.mod", "go.sum", "cmd", "internal", "pkg"}

// SourceHash digests every regular file under the given paths of root,
// including each file's relative path so renames change the result.
// Missing paths are skipped.
func SourceHash(root string, paths ...string) (string, error) {
	h := md5.New()
	for _, p := range paths {
		err := filepath.WalkDir(filepath.Join(root, p), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			io.WriteString(h, filepath.ToSlash(rel))
			return hashFile(h, path)
		})
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
