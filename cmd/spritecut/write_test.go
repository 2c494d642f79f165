package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/mask"
	"badc0de.net/pkg/spritegrid/pixels"
	"badc0de.net/pkg/spritegrid/slicer"
	"badc0de.net/pkg/spritegrid/ttesting"
)

func analyzed(t *testing.T, rows, cols int) ([]slicer.Job, []*slicer.Result) {
	t.Helper()
	buf := pixels.New(11, 3, 4)
	for _, b := range []bbox.Box{bbox.New(0, 0, 2, 2), bbox.New(0, 4, 2, 6), bbox.New(0, 8, 2, 10)} {
		buf.Fill(b.Rect(), []uint8{255, 0, 0, 255})
	}
	o := slicer.Options{Rule: mask.Transparent(), Rows: rows, Cols: cols}
	r, err := slicer.Analyze(buf, o)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return []slicer.Job{{Name: "orc.png", Buffer: buf, Options: o}}, []*slicer.Result{r}
}

func TestWriteFit(t *testing.T) {
	jobs, results := analyzed(t, 1, 3)
	var b bytes.Buffer
	if err := write(&b, "fit", jobs, results); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got [][]int
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("decoding %q: %v", b.String(), err)
	}
	ttesting.AssertDeepEqual(t, "vector", got, [][]int{{3, 3}, {1, 0}, {0, 0}, {0}, {1, 3}})
}

func TestWriteBoxesSeveralSheets(t *testing.T) {
	jobs, results := analyzed(t, 0, 0)
	jobs = append(jobs, slicer.Job{Name: "hu.png"})
	results = append(results, results[0])

	var b bytes.Buffer
	if err := write(&b, "boxes", jobs, results); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got map[string][][]int
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("decoding %q: %v", b.String(), err)
	}
	ttesting.AssertEqualInt(t, "sheets", len(got), 2)
	ttesting.AssertDeepEqual(t, "boxes", got["hu.png"], [][]int{{0, 0, 2, 2}, {0, 4, 2, 6}, {0, 8, 2, 10}})
}

func TestWriteReport(t *testing.T) {
	jobs, results := analyzed(t, 1, 3)
	var b bytes.Buffer
	if err := write(&b, "report", jobs, results); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, want := range []string{"bounding boxes found: 3", "x-step: 4", "width: 3", "vec = [[3 3] [1 0] [0 0] [0] [1 3]]"} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("report lacks %q:\n%s", want, b.String())
		}
	}
}

func TestWriteTileset(t *testing.T) {
	jobs, results := analyzed(t, 1, 3)
	var b bytes.Buffer
	if err := write(&b, "tileset", jobs, results); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("decoding %q: %v", b.String(), err)
	}
	ttesting.AssertDeepEqual(t, "tileset", got, map[string]interface{}{
		"texture_filepath": "",
		"tile_count":       []interface{}{3.0, 1.0},
		"tile_size":        []interface{}{3.0, 3.0},
		"offset":           1.0,
	})
}

func TestWriteErrors(t *testing.T) {
	jobs, results := analyzed(t, 0, 0)
	if err := write(&bytes.Buffer{}, "fit", jobs, results); err == nil {
		t.Error("fit without a grid succeeded")
	}
	if err := write(&bytes.Buffer{}, "tileset", jobs, results); err == nil {
		t.Error("tileset without a grid succeeded")
	}
	if err := write(&bytes.Buffer{}, "npy", jobs, results); err == nil {
		t.Error("unknown mode succeeded")
	}
}
