package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/export"
	"github.com/spendwise/backend/internal/money"
	"github.com/spendwise/backend/internal/router"
	"github.com/spendwise/backend/internal/views"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func (suite *TestSuiteStandard) TestExportSpends() {
	u, c := suite.createViewFixture()

	r := test.Request(suite.T(), http.MethodGet, u.Links.Export, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), export.ContentType, r.Header().Get("Content-Type"))
	assert.Equal(suite.T(), fmt.Sprintf(`attachment; filename="spends-%s.xlsx"`, u.ID), r.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(r.Body)
	suite.Require().Nil(err)
	defer f.Close()

	rows, err := f.GetRows(export.SpendsSheet)
	suite.Require().Nil(err)
	suite.Require().Len(rows, 4, "Header and three spends")

	assert.Equal(suite.T(), "Date", rows[0][0])
	assert.Equal(suite.T(), []string{"14-06-24", "Groceries", "Food"}, rows[1][:3])
	assert.Equal(suite.T(), c.Name, rows[1][5])
	assert.Equal(suite.T(), "Old lunch", rows[3][1])
	assert.Equal(suite.T(), views.UnknownCard, rows[3][5])

	categories, err := f.GetRows(export.CategoriesSheet)
	suite.Require().Nil(err)
	assert.Equal(suite.T(), []string{"Food", "28000"}, categories[1][:2])
}

func (suite *TestSuiteStandard) TestExportSpendsFormatter() {
	u, _ := suite.createViewFixture()

	format, err := money.NewFormatter("USD", "en-US")
	suite.Require().Nil(err)

	baseURL, _ := url.Parse("http://example.com")
	r, teardown, err := router.Config(baseURL, router.WithFormatter(format))
	defer teardown()
	suite.Require().Nil(err)
	router.AttachRoutes(r.Group("/"))

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, u.Links.Export, nil))
	test.AssertHTTPStatus(suite.T(), recorder, http.StatusOK)

	f, err := excelize.OpenReader(recorder.Body)
	suite.Require().Nil(err)
	defer f.Close()

	rows, err := f.GetRows(export.SpendsSheet)
	suite.Require().Nil(err)
	suite.Require().Len(rows, 4)
	assert.Equal(suite.T(), "$20,000.00", rows[1][4])
}

func (suite *TestSuiteStandard) TestExportSpendsFails() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s/export", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Without the router middlewares, there is no formatter
	u := createTestUser(suite.T(), v1.UserEditable{})
	engine := gin.New()
	engine.GET("/v1/users/:id/export", v1.ExportSpends)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/users/%s/export", u.Data.ID), nil))
	test.AssertHTTPStatus(suite.T(), recorder, http.StatusInternalServerError)
}
