// Command spriteweb serves sprite sheet detection, grid fitting and
// previews over HTTP.
//
// Sheets can be POSTed to /detect, /fit and /preview, or fetched by name
// from -sheet_dirs through /sheet/{name}/detect and friends.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/spritegrid/mask"
	"badc0de.net/pkg/spritegrid/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for spriteweb")
	texture       = flag.String("texture", "", "texture_filepath written into sprite descriptions")
	maxBody       = flag.Int64("max_body_bytes", 32<<20, "largest accepted sprite sheet upload")
	accessLog     = flag.Bool("access_log", true, "whether to log requests to stderr in combined log format")

	rule = mask.Transparent()
)

func init() {
	flag.Var(&rule, "rule", "default background rule: alpha, color:R,G,B,A or channel:N=V")
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	r := mux.NewRouter()
	web.NewHandler(web.Options{
		DefaultRule:  rule,
		MaxBodyBytes: *maxBody,
		Texture:      *texture,
	}).RegisterRoutes(r)
	// golang.org/x/net/trace registers its pages on the default mux.
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)

	var h http.Handler = r
	if *accessLog {
		h = handlers.CombinedLoggingHandler(os.Stderr, h)
	}

	glog.Infof("spriteweb listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, h))
}
