package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mercado-backend/internal/database"
	"mercado-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newChartApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One :memory: connection per pool; a second one would see an empty db.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Sale{}, &models.SaleItem{}))
	database.DB = db

	app := fiber.New()
	app.Get("/dashboard/sales-chart", SalesChartHandler())
	return app, db
}

func getChart(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	res, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	return res
}

func TestSalesChartAggregatesByDay(t *testing.T) {
	app, db := newChartApp(t)

	now := time.Now()
	require.NoError(t, db.Create(&models.Sale{Timestamp: now, Total: 10}).Error)
	require.NoError(t, db.Create(&models.Sale{Timestamp: now, Total: 5}).Error)
	require.NoError(t, db.Create(&models.Sale{Timestamp: now.AddDate(0, 0, -1), Total: 7}).Error)

	res := getChart(t, app, "/dashboard/sales-chart?days=2")
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body SalesChartResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Len(t, body.Points, 2)

	assert.Equal(t, now.AddDate(0, 0, -1).Format("2006-01-02"), body.Points[0].Label)
	assert.Equal(t, 7.0, body.Points[0].Total)
	assert.Equal(t, 1, body.Points[0].Count)

	assert.Equal(t, now.Format("2006-01-02"), body.Points[1].Label)
	assert.Equal(t, 15.0, body.Points[1].Total)
	assert.Equal(t, 2, body.Points[1].Count)

	assert.Equal(t, 22.0, body.GrandTotal)
	assert.Equal(t, 3, body.SaleCount)
}

func TestSalesChartClampsDays(t *testing.T) {
	app, _ := newChartApp(t)

	res := getChart(t, app, "/dashboard/sales-chart?days=10000000")
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body SalesChartResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Len(t, body.Points, maxChartDays)

	res = getChart(t, app, "/dashboard/sales-chart?days=0")
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}
