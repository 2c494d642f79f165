// Command sheetmerge collects the per-sheet sprite descriptions of a sheet
// tree into the single list the game loads.
//
//	sheetmerge -dir=spritesheets -aliases=oc=orc,hu=human -o spritesheets.json
//
// Every .json file below -dir is read; its name becomes the directory
// (renamed through -aliases) followed by the dot separated parts of the
// file name, so hu/peasant.walk.json is listed as human/peasant/walk.
package main

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritegrid/desc"
	"badc0de.net/pkg/spritegrid/paths"
)

// aliasFlag is a flag.Value holding comma separated from=to directory
// renames.
type aliasFlag map[string]string

func (a aliasFlag) String() string {
	var parts []string
	for k, v := range a {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (a aliasFlag) Set(s string) error {
	for k := range a {
		delete(a, k)
	}
	if s == "" {
		return nil
	}
	for _, part := range strings.Split(s, ",") {
		from, to, ok := strings.Cut(part, "=")
		if !ok || from == "" || to == "" {
			return errors.Errorf("alias %q is not from=to", part)
		}
		a[from] = to
	}
	return nil
}

var (
	dir     string
	outPath = flag.String("o", "spritesheets.json", "where to write the merged list")
	aliases = aliasFlag{"oc": "orc", "hu": "human"}
)

func init() {
	paths.SetupFilePathFlag("spritesheets", "dir", &dir)
	flag.Var(aliases, "aliases", "comma separated from=to renames of sheet directories")
}

// collect reads every sheet description below root, in lexical path order.
func collect(root string, aliases map[string]string) ([]desc.Sheet, error) {
	var sheets []desc.NamedSheet
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := paths.NoFindOpen(path)
		if err != nil {
			return err
		}
		defer f.Close()
		s, err := desc.Read(f)
		if err != nil {
			return errors.Wrapf(err, "%s", path)
		}
		glog.V(1).Infof("%s: %d sprites", rel, len(s.Sprites))
		sheets = append(sheets, desc.NamedSheet{Path: rel, Sheet: s})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "collecting sheet descriptions")
	}
	return desc.MergeSheets(sheets, aliases), nil
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if dir == "" {
		glog.Fatal("no sheet tree found; pass -dir")
	}
	sheets, err := collect(dir, aliases)
	if err != nil {
		glog.Fatalf("%v", err)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		glog.Fatalf("creating output: %v", err)
	}
	if err := desc.Write(f, sheets); err != nil {
		glog.Fatalf("%v", err)
	}
	if err := f.Close(); err != nil {
		glog.Fatalf("closing output: %v", err)
	}
	glog.Infof("%d sheets written to %q", len(sheets), *outPath)
}
