package cache

import (
	"os"
	"path/filepath"
	"time"
)

// FileStamp identifies one version of a file on disk.
type FileStamp struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Stamp stats path and returns its stamp. The path is made absolute so the
// same file reached through different relative paths shares entries.
func Stamp(path string) (FileStamp, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	info, err := os.Stat(abs)
	if err != nil {
		return FileStamp{}, err
	}
	return FileStamp{Path: abs, Size: info.Size(), ModTime: info.ModTime().UTC()}, nil
}

// Keyer builds cache keys.
type Keyer interface {
	// InfoKey is the key for a background's decoded dimensions and DPI.
	InfoKey(f FileStamp) string

	// DataURIKey is the key for a background's base64 data URI.
	DataURIKey(f FileStamp) string
}

// DefaultKeyer hashes the file stamp under a per-kind prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) InfoKey(f FileStamp) string {
	return hashKey("info", f.Path, f.Size, f.ModTime.UnixNano())
}

func (DefaultKeyer) DataURIKey(f FileStamp) string {
	return hashKey("datauri", f.Path, f.Size, f.ModTime.UnixNano())
}

var _ Keyer = DefaultKeyer{}
