package httpapi

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
)

//go:embed static
var embeddedStatic embed.FS

// staticFiles returns the asset tree: the configured directory, else the
// embedded copy.
func staticFiles() fs.FS {
	if staticDir != "" {
		return os.DirFS(staticDir)
	}
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}

// serveIndex writes the interactive page. Query parameters are ignored.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	b, err := fs.ReadFile(staticFiles(), "index.html")
	if err != nil {
		lg := requestLogger(r)
		lg.Error().Err(err).Msg("index page unavailable")
		writeJSONError(w, http.StatusInternalServerError, "index page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func staticHandler() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles())))
}
