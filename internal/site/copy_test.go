package site

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTree(t *testing.T) {
	src := writeSite(t, map[string]string{
		"img/logo.png":   "png",
		"css/site.css":   "body{}",
		"robots.txt":     "User-agent: *",
		"empty/.gitkeep": "",
	})
	dst := filepath.Join(t.TempDir(), "res")

	require.NoError(t, CopyTree(src, dst))

	assert.Equal(t, "png", readFile(t, filepath.Join(dst, "img", "logo.png")))
	assert.Equal(t, "body{}", readFile(t, filepath.Join(dst, "css", "site.css")))
	assert.Equal(t, "User-agent: *", readFile(t, filepath.Join(dst, "robots.txt")))
	assert.Equal(t, "", readFile(t, filepath.Join(dst, "empty", ".gitkeep")))
}

func TestCopyTree_DestinationExists(t *testing.T) {
	src := writeSite(t, map[string]string{"a.txt": "new"})
	dst := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dst, "a.txt"), []byte("old"), 0644))

	err := CopyTree(src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputExists))
	assert.Equal(t, "old", readFile(t, filepath.Join(dst, "a.txt")))
}

func TestCopyTree_PreservesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	src := writeSite(t, map[string]string{"run.sh": "#!/bin/sh\n"})
	require.NoError(t, os.Chmod(filepath.Join(src, "run.sh"), 0755))
	dst := filepath.Join(t.TempDir(), "res")

	require.NoError(t, CopyTree(src, dst))

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestCopyTree_FollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	src := writeSite(t, map[string]string{"real.txt": "target"})
	require.NoError(t, os.Symlink("real.txt", filepath.Join(src, "link.txt")))
	dst := filepath.Join(t.TempDir(), "res")

	require.NoError(t, CopyTree(src, dst))

	info, err := os.Lstat(filepath.Join(dst, "link.txt"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, "target", readFile(t, filepath.Join(dst, "link.txt")))
}

func TestCopyTree_SourceNotDirectory(t *testing.T) {
	src := writeSite(t, map[string]string{"res": "a file"})

	err := CopyTree(filepath.Join(src, "res"), filepath.Join(t.TempDir(), "res"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
