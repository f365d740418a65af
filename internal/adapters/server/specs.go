package server

import (
	_ "embed"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gorilla/mux"
	"go.trai.ch/ybuild/internal/adapters/jsspec"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("specs").Parse(pageSource))

type pageData struct {
	Files []string
}

// SpecsHandler serves the spec runner page at "/", the harness at
// "/harness.js" and the spec files listed on the page below "/files/".
// specs is resolved on every request.
func SpecsHandler(root string, specs func() ([]string, error)) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		files, err := specs()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = RenderPage(w, root, files)
	}).Methods(http.MethodGet)

	r.HandleFunc("/harness.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		_, _ = w.Write([]byte(jsspec.Harness()))
	}).Methods(http.MethodGet)

	// Only the files listed on the page are served.
	r.PathPrefix("/files/").Handler(noStore(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		files, err := specs()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		rel := strings.TrimPrefix(req.URL.Path, "/files/")
		if !slices.Contains(pageFiles(root, files), rel) {
			http.NotFound(w, req)
			return
		}
		http.ServeFile(w, req, filepath.Join(root, filepath.FromSlash(rel)))
	}))).Methods(http.MethodGet)

	return r
}

// RenderPage writes the spec runner page for files. Files outside root are left out.
func RenderPage(w io.Writer, root string, files []string) error {
	return pageTemplate.Execute(w, pageData{Files: pageFiles(root, files)})
}

// pageFiles returns files as slash-separated paths relative to root,
// dropping those outside root.
func pageFiles(root string, files []string) []string {
	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel := f
		if filepath.IsAbs(f) {
			var err error
			if rel, err = filepath.Rel(root, f); err != nil {
				continue
			}
		}
		rel = filepath.ToSlash(filepath.Clean(rel))
		if rel == ".." || strings.HasPrefix(rel, "../") {
			continue
		}
		rels = append(rels, rel)
	}
	return rels
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
