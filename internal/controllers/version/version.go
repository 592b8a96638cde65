// Package version reports which build of the spendwise backend is running.
package version

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
)

// Version of the API, set from main at startup.
var apiVersion = "0.0.0"

type Response struct {
	Data Object `json:"data"` // Data object for the version endpoint
}

type Object struct {
	Version   string `json:"version" example:"1.1.0"`                                      // Release of the spendwise backend
	GoVersion string `json:"goVersion" example:"go1.22.1"`                                 // Go toolchain the binary was built with
	Revision  string `json:"revision" example:"4b825dc642cb6eb9a060e54bf8d69288fbee4904"` // VCS revision, empty for builds outside a checkout
	Modified  bool   `json:"modified" example:"false"`                                     // Whether the checkout had uncommitted changes
}

func RegisterRoutes(r *gin.RouterGroup, version string) {
	apiVersion = version

	r.GET("", Get)
	r.OPTIONS("", Options)
}

// build returns the version object for the running binary.
func build() Object {
	o := Object{Version: apiVersion}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return o
	}

	o.GoVersion = info.GoVersion
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			o.Revision = s.Value
		case "vcs.modified":
			o.Modified = s.Value == "true"
		}
	}

	return o
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		API version
// @Description	Returns the release, Go toolchain and VCS revision of the running backend
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Data: build()})
}
