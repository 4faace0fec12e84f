package driver

import (
	"os"
	"path/filepath"
)

// Write stores r.Output back into r.Path when the file changed. The file is
// replaced atomically and keeps its permissions.
func Write(r Result) (bool, error) {
	if r.Err != nil || !r.Changed {
		return false, nil
	}
	info, err := os.Stat(r.Path)
	if err != nil {
		return false, err
	}
	f, err := os.CreateTemp(filepath.Dir(r.Path), ".reprint-*")
	if err != nil {
		return false, err
	}
	tmp := f.Name()
	if _, err := f.WriteString(r.Output); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return false, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	if err := os.Chmod(tmp, info.Mode().Perm()); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	// Атомарная замена
	if err := os.Rename(tmp, r.Path); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	return true, nil
}
