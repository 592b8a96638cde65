package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Users  string `json:"users" example:"https://example.com/api/v1/users"`   // URL of user list endpoint
	Cards  string `json:"cards" example:"https://example.com/api/v1/cards"`   // URL of card collection endpoint
	Spends string `json:"spends" example:"https://example.com/api/v1/spends"` // URL of spend list endpoint
}

// RegisterRoutes registers the v1 root and all v1 resources with the RouterGroup.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	RegisterUserRoutes(r.Group("/users"))
	RegisterCardRoutes(r.Group("/cards"))
	RegisterSpendRoutes(r.Group("/spends"))
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Users:  url + "/v1/users",
			Cards:  url + "/v1/cards",
			Spends: url + "/v1/spends",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
