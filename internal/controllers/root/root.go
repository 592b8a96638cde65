// Package root serves the entrypoint of the spendwise API.
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/money"
)

type Response struct {
	Links Links  `json:"links"`
	Money *Money `json:"money"` // How amounts are formatted in exports. Null when the server has no formatter configured
}

type Links struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Healthz endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Endpoint returning Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // Users, cards and spends
}

type Money struct {
	Currency string `json:"currency" example:"CLP"` // ISO 4217 currency code
	Locale   string `json:"locale" example:"es-CL"` // BCP 47 locale for separators
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints and the money formatting settings
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	response := Response{
		Links: Links{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	}

	if v, ok := c.Get(string(models.DBContextFormatter)); ok {
		if f, ok := v.(money.Formatter); ok {
			response.Money = &Money{Currency: f.Currency(), Locale: f.Locale()}
		}
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
