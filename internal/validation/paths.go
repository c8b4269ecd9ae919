package validation

import (
	"os"
	"path/filepath"
)

// PathHandler resolves the files spotlight writes to
type PathHandler struct {
	validator *FilePathValidator
}

// NewSecurePathHandler creates a path handler with secure validation
func NewSecurePathHandler() *PathHandler {
	return &PathHandler{validator: NewFilePathValidator()}
}

// NewPermissivePathHandler creates a path handler for development/testing
func NewPermissivePathHandler() *PathHandler {
	return &PathHandler{validator: NewPermissiveFilePathValidator()}
}

func defaultPath(elem ...string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}

// CachePath returns a validated session cache path
func (ph *PathHandler) CachePath(userPath string) (string, error) {
	if userPath == "" {
		p, err := defaultPath(".spotlight", "cache.db")
		if err != nil {
			return "", err
		}
		userPath = p
	}
	return ph.validator.ValidateFile(userPath)
}

// LogPath returns a validated log file path
func (ph *PathHandler) LogPath(userPath string) (string, error) {
	if userPath == "" {
		p, err := defaultPath(".spotlight", "spotlight.log")
		if err != nil {
			return "", err
		}
		userPath = p
	}
	return ph.validator.ValidateFile(userPath)
}

// SourcePath validates a local index file without restricting its
// directory.
func SourcePath(userPath string) (string, error) {
	return NewPermissiveFilePathValidator().ValidateFile(userPath)
}
