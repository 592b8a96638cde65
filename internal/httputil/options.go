package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Allow returns a handler answering OPTIONS requests with 204 No Content
// and an "allow" header listing OPTIONS followed by methods.
func Allow(methods ...string) gin.HandlerFunc {
	header := strings.Join(append([]string{http.MethodOptions}, methods...), ", ")

	return func(c *gin.Context) {
		c.Header("allow", header)
		c.Render(http.StatusNoContent, render.JSON{})
	}
}

var (
	optionsGet            = Allow(http.MethodGet)
	optionsPost           = Allow(http.MethodPost)
	optionsGetPost        = Allow(http.MethodGet, http.MethodPost)
	optionsGetDelete      = Allow(http.MethodGet, http.MethodDelete)
	optionsGetPatchDelete = Allow(http.MethodGet, http.MethodPatch, http.MethodDelete)
	optionsDelete         = Allow(http.MethodDelete)
)

// OptionsGet answers OPTIONS for read-only endpoints such as the API roots,
// the health check and the spend views.
func OptionsGet(c *gin.Context) { optionsGet(c) }

// OptionsPost answers OPTIONS for endpoints that only create, like the card
// collection and the spend recording saga.
func OptionsPost(c *gin.Context) { optionsPost(c) }

// OptionsGetPost answers OPTIONS for the user and spend collections and for
// the association lists below a user or card.
func OptionsGetPost(c *gin.Context) { optionsGetPost(c) }

// OptionsGetDelete answers OPTIONS for cards and spends, which can be read
// and removed but not updated.
func OptionsGetDelete(c *gin.Context) { optionsGetDelete(c) }

// OptionsGetPatchDelete answers OPTIONS for a single user.
func OptionsGetPatchDelete(c *gin.Context) { optionsGetPatchDelete(c) }

// OptionsDelete answers OPTIONS for association links, which can only be removed.
func OptionsDelete(c *gin.Context) { optionsDelete(c) }
