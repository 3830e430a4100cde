package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyTree recursively copies the directory src to dst. Nothing at dst may
// already exist: directories are created with os.Mkdir and files with
// O_EXCL, so a conflict fails with ErrOutputExists instead of merging.
// Symlinks are followed. Permission bits are preserved.
func CopyTree(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("copy %s: not a directory", src)
	}

	if err := os.Mkdir(dst, 0755); err != nil {
		return conflict(err, dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}

		if info.IsDir() {
			err = CopyTree(srcPath, dstPath)
		} else {
			err = copyFile(srcPath, dstPath, info.Mode().Perm())
		}
		if err != nil {
			return err
		}
	}

	// Applied last so read-only source directories can still be filled.
	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// copyFile copies a single file from src to a new file dst
func copyFile(src, dst string, perm fs.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return conflict(err, dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}

func conflict(err error, path string) error {
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	return err
}
