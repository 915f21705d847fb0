package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/evremap/evremapd/xdg"
)

// PIDFile represents a written process-id file, to be unlinked on
// clean shutdown. A relative path is resolved against the XDG runtime
// directory, matching [xdg.RuntimeFile]'s own rationale that this is
// the right home for short-lived communication/synchronization files;
// an absolute path is used exactly as given.
type PIDFile struct {
	path string
}

func runtimeDir() string {
	var dir string = os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" || !filepath.IsAbs(dir) {
		return "/tmp"
	}

	return dir
}

// WritePIDFile creates (or truncates) the file at path and writes the
// calling process's id into it.
func WritePIDFile(path string) (*PIDFile, error) {
	var (
		file     *os.File
		realPath string = path
		err      error
	)

	if filepath.IsAbs(path) {
		file, err = os.OpenFile(filepath.Clean(path), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	} else {
		realPath = filepath.Join(runtimeDir(), path)
		file, err = xdg.RuntimeFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("daemon.WritePIDFile: %w", err)
	}

	defer file.Close()

	err = file.Truncate(0)
	if err != nil {
		return nil, fmt.Errorf("daemon.WritePIDFile: %w", err)
	}

	_, err = fmt.Fprintf(file, "%d\n", os.Getpid())
	if err != nil {
		return nil, fmt.Errorf("daemon.WritePIDFile: %w", err)
	}

	return &PIDFile{path: realPath}, nil
}

// Remove unlinks the pid file. Safe to call on a nil *PIDFile.
func (p *PIDFile) Remove() error {
	if p == nil {
		return nil
	}

	var err error

	err = os.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("PIDFile.Remove: %w", err)
	}

	return nil
}
