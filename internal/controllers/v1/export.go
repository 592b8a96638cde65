package v1

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/export"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/money"
)

// formatter returns the money formatter set up by the router.
func formatter(c *gin.Context) (money.Formatter, bool) {
	f, ok := c.Get(string(models.DBContextFormatter))
	if !ok {
		return money.Formatter{}, false
	}

	format, ok := f.(money.Formatter)
	return format, ok
}

// @Summary		Export spends
// @Description	Returns all spends of the user as xlsx workbook with one sheet for the spends and one for the totals per category
// @Tags			Users
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/export [get]
func ExportSpends(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	spends, err := user.Spends(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	cards, err := user.Cards(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	format, ok := formatter(c)
	if !ok {
		log.Error().Msg("no money formatter in the request context")
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, spends, cards, format); err != nil {
		log.Error().Err(err).Str("user", user.ID.String()).Msg("xlsx export failed")
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="spends-%s.xlsx"`, user.ID))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
