package paths

import (
	"flag"
	"path/filepath"
	"strings"
)

var (
	sheetDirs = flag.String("sheet_dirs", "", "Comma separated list of directories searched for sprite sheets, in addition to the working directory.")
)

// SetDirs replaces the directories searched by Find, as if passed through
// -sheet_dirs.
func SetDirs(dirs ...string) {
	*sheetDirs = strings.Join(dirs, ",")
}

func possibleDirs() []string {
	dirs := []string{"."}
	for _, d := range strings.Split(*sheetDirs, ",") {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func possiblePaths(fileName string) []string {
	if filepath.IsAbs(fileName) {
		return []string{fileName}
	}
	var out []string
	for _, d := range possibleDirs() {
		out = append(out, filepath.Join(d, fileName))
	}
	return out
}
