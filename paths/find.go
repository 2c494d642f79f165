// Package paths locates sprite sheets and related files on disk or over HTTP.
package paths

import (
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
)

// ReadSeekCloser is what Open hands back for both local files and cached
// HTTP bodies.
type ReadSeekCloser interface {
	io.ReadCloser
	io.Seeker
}

func isURL(fileName string) bool {
	return strings.HasPrefix(fileName, "http://") || strings.HasPrefix(fileName, "https://")
}

// Find locates the passed file name and returns a path to find it at, or an
// empty string if it was not found. URLs are returned unchanged.
//
// For example, for "hero.png" it may return "assets/sheets/hero.png" if
// -sheet_dirs contains "assets/sheets".
func Find(fileName string) string {
	if isURL(fileName) {
		return fileName
	}
	for _, path := range possiblePaths(fileName) {
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.V(1).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look,
// and opens it. URLs are fetched and cached for the life of the process.
func Open(fileName string) (ReadSeekCloser, error) {
	if isURL(fileName) {
		return openHTTP(fileName)
	}
	path := Find(fileName)
	if path == "" {
		return nil, &os.PathError{Op: "find", Path: fileName, Err: os.ErrNotExist}
	}
	return os.Open(path)
}

// NoFindOpen opens the passed file name or URL as-is, without searching.
func NoFindOpen(fileName string) (ReadSeekCloser, error) {
	if isURL(fileName) {
		return openHTTP(fileName)
	}
	return os.Open(fileName)
}
