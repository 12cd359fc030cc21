package inventory

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercado-backend/internal/database"
	"mercado-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newHandlerApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One :memory: connection per pool; a second one would see an empty db.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.AuditLog{}))

	// The audit service writes through the package-level handle.
	database.DB = db

	store := NewStore(db)
	app := fiber.New()
	app.Post("/products", CreateProductHandler(store))
	app.Put("/products/:id", UpdateProductHandler(store))
	app.Delete("/products/:id", DeleteProductHandler(store))
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestProductMutationsWriteAuditRows(t *testing.T) {
	app, db := newHandlerApp(t)

	res := doJSON(t, app, http.MethodPost, "/products", `{"name":"Rice","price":10.5,"stock":20}`)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	var created ProductResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))

	res = doJSON(t, app, http.MethodPut, fmt.Sprintf("/products/%d", created.ID), `{"name":"Rice 5kg","price":12,"stock":18}`)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	res = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/products/%d", created.ID), "")
	require.Equal(t, fiber.StatusNoContent, res.StatusCode)

	// A rejected mutation must not leave a trace.
	res = doJSON(t, app, http.MethodPost, "/products", `{"name":"","price":1,"stock":1}`)
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var logs []models.AuditLog
	require.NoError(t, db.Order("id asc").Find(&logs).Error)
	require.Len(t, logs, 3)

	assert.Equal(t, "product", logs[0].EntityType)
	assert.Equal(t, created.ID, logs[0].EntityID)
	assert.Equal(t, models.AuditActionCreate, logs[0].Action)
	assert.Equal(t, "null", logs[0].BeforeData)
	assert.Contains(t, logs[0].AfterData, `"name":"Rice"`)

	assert.Equal(t, models.AuditActionUpdate, logs[1].Action)
	assert.Equal(t, created.ID, logs[1].EntityID)
	assert.Contains(t, logs[1].BeforeData, `"name":"Rice"`)
	assert.Contains(t, logs[1].AfterData, `"name":"Rice 5kg"`)

	assert.Equal(t, models.AuditActionDelete, logs[2].Action)
	assert.Equal(t, created.ID, logs[2].EntityID)
	assert.Contains(t, logs[2].BeforeData, `"name":"Rice 5kg"`)
	assert.Equal(t, "null", logs[2].AfterData)
}
