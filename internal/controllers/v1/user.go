package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsUserList)
		r.GET("", GetUsers)
		r.POST("", CreateUsers)
	}

	// User with ID
	{
		r.OPTIONS("/:id", OptionsUserDetail)
		r.GET("/:id", GetUser)
		r.PATCH("/:id", UpdateUser)
		r.DELETE("/:id", DeleteUser)
	}

	// Associations
	{
		r.OPTIONS("/:id/cards", OptionsUserCards)
		r.GET("/:id/cards", GetUserCards)
		r.POST("/:id/cards", AddUserCard)
		r.OPTIONS("/:id/cards/:cardId", OptionsUserCard)
		r.DELETE("/:id/cards/:cardId", RemoveUserCard)

		r.OPTIONS("/:id/spends", OptionsUserSpends)
		r.GET("/:id/spends", GetUserSpends)
		r.POST("/:id/spends", AddUserSpend)
		r.OPTIONS("/:id/spends/:spendId", OptionsUserSpend)
		r.DELETE("/:id/spends/:spendId", RemoveUserSpend)
	}

	// Operations and views
	{
		r.OPTIONS("/:id/record-spend", OptionsRecordSpend)
		r.POST("/:id/record-spend", RecordSpend)

		r.OPTIONS("/:id/summary", OptionsView)
		r.GET("/:id/summary", GetSummary)
		r.OPTIONS("/:id/stats", OptionsView)
		r.GET("/:id/stats", GetStats)
		r.OPTIONS("/:id/transactions", OptionsView)
		r.GET("/:id/transactions", GetTransactions)
		r.OPTIONS("/:id/export", OptionsView)
		r.GET("/:id/export", ExportSpends)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func OptionsUserList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [options]
func OptionsUserDetail(c *gin.Context) {
	if _, ok := getUser(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create users
// @Description	Creates new users
// @Tags			Users
// @Produce		json
// @Success		201		{object}	UserCreateResponse
// @Failure		400		{object}	UserCreateResponse
// @Failure		500		{object}	UserCreateResponse
// @Param			users	body		[]UserEditable	true	"Users"
// @Router			/v1/users [post]
func CreateUsers(c *gin.Context) {
	var editables []UserEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := UserCreateResponse{}

	for _, editable := range editables {
		user := editable.model()

		err = models.DB.Create(&user).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newUser(c, models.DB, user)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, UserResponse{Data: &data})
	}

	c.JSON(status, r)
}

type UserQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first user returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of users to return. Defaults to 50.
}

// @Summary		Get users
// @Description	Returns a list of users
// @Tags			Users
// @Produce		json
// @Success		200		{object}	UserListResponse
// @Failure		400		{object}	UserListResponse
// @Failure		500		{object}	UserListResponse
// @Param			name	query		string	false	"Filter by name"
// @Param			offset	query		uint	false	"The offset of the first user returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of users to return. Defaults to 50."
// @Router			/v1/users [get]
func GetUsers(c *gin.Context) {
	var filter UserQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, UserListResponse{
			Error: &e,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")
	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	}

	// Default to 50 users and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	q = q.Offset(int(filter.Offset)).Limit(limit)

	var users []models.User
	err := q.Find(&users).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &e,
		})
		return
	}

	data := make([]User, 0)
	for _, user := range users {
		apiResource, err := newUser(c, models.DB, user)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), UserListResponse{
				Error: &e,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, UserListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get user
// @Description	Returns a specific user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	UserResponse
// @Failure		404	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [get]
func GetUser(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	data, err := newUser(c, models.DB, user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update user
// @Description	Updates the name and/or the balance of a user. Only values to be updated need to be specified. The balance is set to the value sent.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		404		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users/{id} [patch]
func UpdateUser(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, UserEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var data UserEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	// The changes are applied to the loaded user so that the
	// hooks validate the new values
	if slices.Contains(updateFields, any("Name")) {
		user.Name = data.Name
	}

	balanceSet := slices.Contains(updateFields, any("Balance"))
	if balanceSet {
		user.Balance = data.Balance
	}

	err = models.DB.Model(&user).Select("", updateFields...).Updates(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	if balanceSet {
		events.Publish(c.Request.Context(), events.Event{Type: events.BalanceSet, UserID: user.ID, Amount: user.Balance})
	}

	r, err := newUser(c, models.DB, user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &r})
}

// @Summary		Delete user
// @Description	Deletes a user and its associations. Cards and spends are kept.
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [delete]
func DeleteUser(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		return
	}

	err := user.Delete(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// getUser loads the user with the ID from the URI. If that fails,
// the error is written to the response and ok is false.
func getUser(c *gin.Context) (user models.User, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	return user, true
}
