package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/familyboard/familyboard/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

const indexFile = "index.html"

// RegisterStatic installs the catch-all fallback. GET and HEAD requests for
// paths no route claims are served from fs when the file exists and fall back
// to the front-end entry document otherwise. Other methods get a 404 envelope.
func RegisterStatic(r *gin.Engine, fs afero.Fs) {
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.Fail(c, http.StatusNotFound, response.MsgNotFound)
			return
		}
		name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
		if name == "" || !serveFile(c, fs, name) {
			if !serveFile(c, fs, indexFile) {
				response.Fail(c, http.StatusNotFound, response.MsgNotFound)
			}
		}
	})
}

// serveFile writes a regular file from fs and reports whether it did.
func serveFile(c *gin.Context, fs afero.Fs, name string) bool {
	f, err := fs.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		return false
	}
	c.Status(http.StatusOK)
	http.ServeContent(c.Writer, c.Request, fi.Name(), fi.ModTime(), f)
	return true
}

// StaticFs returns a read-only view of dir on fs.
func StaticFs(fs afero.Fs, dir string) afero.Fs {
	return afero.NewReadOnlyFs(afero.NewBasePathFs(fs, dir))
}
