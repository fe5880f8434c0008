package artifact

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// SaveFile writes m to path atomically: the artifact is written to a
// temporary file in the same directory and renamed into place.
func SaveFile(path string, m *Model, opts ...EncodeOption) (Info, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, fmt.Errorf("create artifact dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return Info{}, fmt.Errorf("create temp artifact: %w", err)
	}

	w := bufio.NewWriter(f)
	info, err := Encode(w, m, opts...)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return Info{}, err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return Info{}, fmt.Errorf("rename artifact: %w", err)
	}

	return info, nil
}

// LoadFile reads the artifact at path.
func LoadFile(path string) (*Model, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	m, info, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, Info{}, fmt.Errorf("%s: %w", path, err)
	}

	return m, info, nil
}
