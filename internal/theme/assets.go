package theme

import (
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
)

// CopyAssets copies every asset into destDir under its base name,
// overwriting existing files. Directories are copied recursively.
// It returns the paths written at the top level of destDir.
func (t *Theme) CopyAssets(destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create asset directory").
			WithContext("path", destDir).
			Build()
	}

	copied := make([]string, 0, len(t.Assets))
	for _, asset := range t.Assets {
		src := t.AssetPath(asset)
		dst := filepath.Join(destDir, filepath.Base(src))

		info, err := os.Stat(src)
		if err == nil {
			if info.IsDir() {
				err = copyDir(src, dst)
			} else {
				err = copyFile(src, dst, info.Mode())
			}
		}
		if err != nil {
			return copied, errors.WrapError(err, errors.CategoryFileSystem, "failed to copy theme asset").
				WithContext("asset", asset).
				WithContext("path", dst).
				Build()
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := copyFile(srcPath, dstPath, info.Mode()); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	// #nosec G304 -- asset paths come from the theme descriptor.
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
