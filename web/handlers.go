// Package web serves sprite sheet analysis over HTTP.
//
// Sheets are either POSTed as the request body, or named in the URL and
// looked up with package paths.
package web

import (
	"bytes"
	"encoding/json"
	"image/gif"
	"image/png"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/spritegrid"
	"badc0de.net/pkg/spritegrid/bbox"
	"badc0de.net/pkg/spritegrid/desc"
	"badc0de.net/pkg/spritegrid/grid"
	"badc0de.net/pkg/spritegrid/imageprint"
	"badc0de.net/pkg/spritegrid/mask"
	"badc0de.net/pkg/spritegrid/pixels"
	"badc0de.net/pkg/spritegrid/sheetio"
	"badc0de.net/pkg/spritegrid/slicer"
)

// Options configures a Handler.
type Options struct {
	// DefaultRule is used when a request does not pass ?rule=.
	DefaultRule mask.Rule

	// MaxBodyBytes limits uploaded sheets. Zero means 32 MiB.
	MaxBodyBytes int64

	// Texture is written as texture_filepath into sprite descriptions.
	Texture string
}

type Handler struct {
	opts Options
}

// NewHandler constructs a web handler.
func NewHandler(opts Options) *Handler {
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 32 << 20
	}
	return &Handler{opts: opts}
}

var errNotFound = errors.New("sheet not found")

// badRequest marks errors caused by the request itself.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }

func isBadRequest(err error) bool {
	_, ok := err.(badRequest)
	return ok
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest{errors.Errorf("%s not a number", name)}
	}
	return i, nil
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// parseOptions reads slicer options from the query string: rule, merge,
// clear, rows, cols, count, and the cutout as ym, xm, yM, xM (yM and xM
// exclusive).
func (h *Handler) parseOptions(r *http.Request) (slicer.Options, error) {
	o := slicer.Options{
		Rule:             h.opts.DefaultRule,
		Merge:            queryBool(r, "merge"),
		ClearTransparent: queryBool(r, "clear"),
	}
	if rule := r.URL.Query().Get("rule"); rule != "" {
		var err error
		if o.Rule, err = mask.ParseRule(rule); err != nil {
			return o, badRequest{err}
		}
	}

	var err error
	ints := []struct {
		name string
		dst  *int
	}{
		{"rows", &o.Rows}, {"cols", &o.Cols}, {"count", &o.SpriteCount},
		{"ym", &o.Cutout.Min.Y}, {"xm", &o.Cutout.Min.X}, {"yM", &o.Cutout.Max.Y}, {"xM", &o.Cutout.Max.X},
	}
	for _, i := range ints {
		if *i.dst, err = queryInt(r, i.name, 0); err != nil {
			return o, err
		}
	}
	return o, nil
}

func (h *Handler) readSheet(w http.ResponseWriter, r *http.Request) (*pixels.Buffer, error) {
	if name, ok := mux.Vars(r)["name"]; ok {
		buf, err := sheetio.LoadFile(name)
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNotFound
		}
		return buf, err
	}
	body := http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	defer body.Close()
	buf, _, err := sheetio.Load(body)
	if err != nil {
		return nil, badRequest{err}
	}
	return buf, nil
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) (*pixels.Buffer, *slicer.Result, bool) {
	o, err := h.parseOptions(r)
	if err != nil {
		writeError(w, r, err)
		return nil, nil, false
	}
	buf, err := h.readSheet(w, r)
	if err != nil {
		writeError(w, r, err)
		return nil, nil, false
	}
	res, err := slicer.Analyze(buf, o)
	if err != nil {
		writeError(w, r, err)
		return nil, nil, false
	}
	return buf, res, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case err == errNotFound:
		code = http.StatusNotFound
	case isBadRequest(err):
		code = http.StatusBadRequest
	case spritegrid.Kind(err) != nil:
		code = http.StatusUnprocessableEntity
	default:
		glog.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("error encoding response: %v", err)
	}
}

type detectResponse struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Boxes  [][]int      `json:"boxes"`
	Sheet  *desc.Sheet  `json:"sheet"`
	Fit    *fitResponse `json:"fit,omitempty"`
}

type fitResponse struct {
	*grid.Fit
	Vector [][]int `json:"vector"`
}

func boxSlices(boxes []bbox.Box) [][]int {
	out := make([][]int, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, b.Slice())
	}
	return out
}

// detectHandler reports sprite boxes in sheet coordinates, together with a
// sprite description of them.
func (h *Handler) detectHandler(w http.ResponseWriter, r *http.Request) {
	buf, res, ok := h.analyze(w, r)
	if !ok {
		return
	}
	boxes := res.SheetBoxes()
	writeJSON(w, detectResponse{
		Width:  buf.Width,
		Height: buf.Height,
		Boxes:  boxSlices(boxes),
		Sheet:  desc.Sprites(h.opts.Texture, boxes, r.URL.Query().Get("prefix")),
	})
}

// fitHandler reports the grid fit. rows and cols are required.
func (h *Handler) fitHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("rows") == "" || r.URL.Query().Get("cols") == "" {
		writeError(w, r, badRequest{errors.New("rows and cols are required")})
		return
	}
	buf, res, ok := h.analyze(w, r)
	if !ok {
		return
	}
	boxes := res.SheetBoxes()
	writeJSON(w, detectResponse{
		Width:  buf.Width,
		Height: buf.Height,
		Boxes:  boxSlices(boxes),
		Sheet:  desc.Sprites(h.opts.Texture, boxes, r.URL.Query().Get("prefix")),
		Fit:    &fitResponse{res.Fit, desc.FitVector(res.Fit)},
	})
}

// maxScale limits ?scale= on previews.
const maxScale = 16

// previewHandler draws the detected boxes and fitted cells onto the sheet.
// ?format=gif returns a paletted GIF; ?scale=N enlarges it; ?inline=1 wraps
// the image into a JSON data URL.
func (h *Handler) previewHandler(w http.ResponseWriter, r *http.Request) {
	scale, err := queryInt(r, "scale", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if scale < 1 || scale > maxScale {
		writeError(w, r, badRequest{errors.Errorf("scale must be 1 to %d", maxScale)})
		return
	}
	buf, res, ok := h.analyze(w, r)
	if !ok {
		return
	}

	img := imageprint.Overlay(buf.Image(), res.SheetBoxes(), imageprint.BoxColor)
	if res.Fit != nil {
		img = imageprint.OverlayFit(img, res.Fit, res.Grid.Count())
	}
	img = imageprint.Scale(img, scale)

	var (
		out  bytes.Buffer
		mime string
	)
	switch format := r.URL.Query().Get("format"); format {
	case "", "png":
		mime = "image/png"
		err = png.Encode(&out, img)
	case "gif":
		mime = "image/gif"
		err = gif.Encode(&out, imageprint.Paletted(img, 256), nil)
	default:
		writeError(w, r, badRequest{errors.Errorf("unsupported format %q", format)})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if queryBool(r, "inline") {
		u, err := dataurl.New(out.Bytes(), mime).MarshalText()
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, map[string]string{"data_url": string(u)})
		return
	}

	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, &out)
}

// RegisterRoutes adds the analysis routes to r. Every route accepts a POSTed
// sheet, or a GET naming a sheet found by package paths.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/detect", h.detectHandler).Methods(http.MethodPost)
	r.HandleFunc("/fit", h.fitHandler).Methods(http.MethodPost)
	r.HandleFunc("/preview", h.previewHandler).Methods(http.MethodPost)
	r.HandleFunc("/sheet/{name:.+}/detect", h.detectHandler).Methods(http.MethodGet)
	r.HandleFunc("/sheet/{name:.+}/fit", h.fitHandler).Methods(http.MethodGet)
	r.HandleFunc("/sheet/{name:.+}/preview", h.previewHandler).Methods(http.MethodGet)
}
