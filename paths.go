package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
)

// defaultMaxConflicts bounds how many numbered variants deconflictPath tries.
const defaultMaxConflicts = 10000

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// deconflictPath returns candidate if nothing exists there. Otherwise it
// appends " 1", " 2", ... to the stem until a free path turns up, giving up
// after maxAttempts tries. The check and a later rename are not atomic.
func deconflictPath(candidate string, maxAttempts int) (string, error) {
	if !pathExists(candidate) {
		return candidate, nil
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxConflicts
	}

	dir := filepath.Dir(candidate)
	base := filepath.Base(candidate)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 1; n <= maxAttempts; n++ {
		next := filepath.Join(dir, fmt.Sprintf("%s %d%s", stem, n, ext))
		if !pathExists(next) {
			return next, nil
		}
	}
	return "", errors.Wrapf(ErrPathExhausted, "%s after %d attempts", candidate, maxAttempts)
}

// renameFile moves src to dst, copying across devices when a plain rename
// can't. Any failure comes back marked with ErrRenameFailed.
func renameFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EXDEV) {
		if err := moveFile(src, dst); err != nil {
			return errors.Mark(errors.Wrapf(err, "moving %s", src), ErrRenameFailed)
		}
		return nil
	}
	return errors.Mark(errors.Wrapf(err, "renaming %s", src), ErrRenameFailed)
}

// moveFile is the cross-device fallback: copy then delete.
func moveFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Remove(src)
}
