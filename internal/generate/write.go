package generate

import (
	"bytes"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// writeIfChanged writes data to path atomically (temp file in the same
// directory, then rename). It reports false without touching the file when
// the current content already equals data.
func writeIfChanged(path string, data []byte) (bool, error) {
	current, err := os.ReadFile(filepath.Clean(path))
	if err == nil && bytes.Equal(current, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).Build()
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to create temporary file").
			WithContext("path", dir).Build()
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to write temporary file").
			WithContext("path", tmpPath).Build()
	}
	if err := tmp.Close(); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to close temporary file").
			WithContext("path", tmpPath).Build()
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to set file mode").
			WithContext("path", tmpPath).Build()
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to replace output file").
			WithContext("path", path).Build()
	}
	return true, nil
}
