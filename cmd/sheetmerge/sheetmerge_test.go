package main

import (
	"os"
	"path/filepath"
	"testing"

	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/desc"
	"badc0de.net/pkg/spritegrid/ttesting"
)

func writeSheet(t *testing.T, path string, s *desc.Sheet) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := desc.Write(f, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeSheet(t, filepath.Join(root, "oc", "grunt.json"), desc.Sprites("res/textures/grunt.png", []bbox.Box{bbox.New(0, 0, 3, 3)}, "grunt"))
	writeSheet(t, filepath.Join(root, "hu", "peasant.walk.json"), desc.Sprites("res/textures/peasant.png", []bbox.Box{bbox.New(0, 0, 3, 3), bbox.New(0, 5, 3, 8)}, "walk"))
	if err := os.WriteFile(filepath.Join(root, "hu", "notes.txt"), []byte("not a sheet"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sheets, err := collect(root, map[string]string{"oc": "orc", "hu": "human"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	ttesting.AssertEqualInt(t, "sheets", len(sheets), 2)
	ttesting.AssertDeepEqual(t, "names", []string{sheets[0].Name, sheets[1].Name}, []string{"human/peasant/walk", "orc/grunt"})
	ttesting.AssertDeepEqual(t, "texture", sheets[1].Texture, "res/textures/grunt.png")
	ttesting.AssertEqualInt(t, "sprites", len(sheets[0].Sprites), 2)
}

func TestCollectBadJSON(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := collect(root, nil); err == nil {
		t.Error("collect succeeded on broken JSON")
	}
}

func TestAliasFlag(t *testing.T) {
	a := aliasFlag{"oc": "orc"}
	if err := a.Set("hu=human,el=elf"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := a.String(); got != "el=elf,hu=human" {
		t.Errorf("String() = %q", got)
	}
	if err := a.Set("hu"); err == nil {
		t.Error("Set(hu) succeeded")
	}
}
