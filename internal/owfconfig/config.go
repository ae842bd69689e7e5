// Package owfconfig resolves the per-user state directory and the
// OWF_SOCK and OWF_MAX_ALLOC environment variables, mirroring
// _examples/kryptco-kr/src/common/socket's KrDir/KrDirFile pattern: no
// config framework, just os.Getenv with an explicit default.
package owfconfig

import (
	"os"
	"path/filepath"
	"strconv"
)

// OWFDir resolves (creating if needed) the per-user OWF state directory,
// $HOME/.owf, the direct analogue of the teacher's KrDir.
func OWFDir() (dir string, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir = filepath.Join(home, ".owf")
	err = os.MkdirAll(dir, 0700)
	return
}

// OWFDirFile resolves a file path within OWFDir, the analogue of KrDirFile.
func OWFDirFile(file string) (path string, err error) {
	dir, err := OWFDir()
	if err != nil {
		return
	}
	path = filepath.Join(dir, file)
	return
}

// DefaultSocketFilename is the unix-socket filename SockPath resolves
// under OWFDir when OWF_SOCK is unset (internal/transport's Listen and
// Dial use it).
const DefaultSocketFilename = "owfd.sock"

// SockPath returns the OWF_SOCK override if set, else the default path
// under OWFDir.
func SockPath() (path string, err error) {
	if v := os.Getenv("OWF_SOCK"); v != "" {
		path = v
		return
	}
	path, err = OWFDirFile(DefaultSocketFilename)
	return
}

// MaxAlloc returns the OWF_MAX_ALLOC override in bytes if set and valid,
// else fallback.
func MaxAlloc(fallback int) int {
	v := os.Getenv("OWF_MAX_ALLOC")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
