// Package storage persists calibration reference images as PNG files so a
// baseline can be inspected offline or reloaded across runs.
package storage

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/soocke/vision-tester-go/domain/vision"
)

func refPath(dir string, idx int) string {
	return filepath.Join(dir, fmt.Sprintf("ref_%d.png", idx))
}

// SaveReferences writes each reference as ref_<i>.png under dir, creating the
// directory if needed. Any previously saved set in dir is removed first so a
// shorter set never leaves stale trailing files.
func SaveReferences(dir string, refs []*image.Gray) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create reference dir: %w", err)
	}
	if err := ClearReferences(dir); err != nil {
		return err
	}
	for i, ref := range refs {
		if ref == nil {
			return fmt.Errorf("reference %d is nil", i)
		}
		if err := imaging.Save(ref, refPath(dir, i)); err != nil {
			return fmt.Errorf("save reference %d: %w", i, err)
		}
	}
	return nil
}

// LoadReferences reads ref_0.png, ref_1.png, ... from dir until the next
// index is missing. An empty or missing directory yields an empty slice.
func LoadReferences(dir string) ([]*image.Gray, error) {
	var refs []*image.Gray
	for i := 0; ; i++ {
		path := refPath(dir, i)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return refs, nil
			}
			return nil, fmt.Errorf("stat reference %d: %w", i, err)
		}
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open reference %d: %w", i, err)
		}
		refs = append(refs, vision.ToGray(img))
	}
}

// ClearReferences deletes every ref_<i>.png in dir. Missing directories are
// not an error.
func ClearReferences(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "ref_*.png"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}
