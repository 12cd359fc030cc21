package inventory

import (
	"testing"

	"mercado-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One :memory: connection per pool; a second one would see an empty db.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Sale{}, &models.SaleItem{}))
	return NewStore(db)
}

func TestRegisterAndList(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Register("Rice", 10.50, 20)
	require.NoError(t, err)
	assert.NotZero(t, id)

	products, err := store.List()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, id, products[0].ID)
	assert.Equal(t, "Rice", products[0].Name)
	assert.Equal(t, 10.50, products[0].Price)
	assert.Equal(t, 20, products[0].Stock)
}

func TestRegisterValidation(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		name    string
		product string
		price   float64
		stock   int
	}{
		{"empty name", "   ", 1, 1},
		{"negative price", "Beans", -0.01, 1},
		{"negative stock", "Beans", 1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Register(tc.product, tc.price, tc.stock)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}

	products, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, products, "failed registrations must not persist anything")
}

func TestRegisterTrimsName(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Register("  Coffee  ", 8, 5)
	require.NoError(t, err)

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", p.Name)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Register("Rice", 10.50, 20)
	require.NoError(t, err)

	require.NoError(t, store.Update(id, "Rice 5kg", 12.00, 18))

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", p.Name)
	assert.Equal(t, 12.00, p.Price)
	assert.Equal(t, 18, p.Stock)
}

func TestUpdateMissingProduct(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.Update(99, "Ghost", 1, 1), ErrProductNotFound)
}

func TestUpdateValidation(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Register("Rice", 10.50, 20)
	require.NoError(t, err)

	var ve *ValidationError
	require.ErrorAs(t, store.Update(id, "", 1, 1), &ve)

	p, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Rice", p.Name, "rejected update must not change the row")
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Register("Rice", 10.50, 20)
	require.NoError(t, err)

	require.NoError(t, store.Remove(id))
	assert.ErrorIs(t, store.Remove(id), ErrProductNotFound)

	_, err = store.Get(id)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetMissingProduct(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListOrderedByName(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"Sugar", "Beans", "Rice"} {
		_, err := store.Register(name, 1, 1)
		require.NoError(t, err)
	}

	products, err := store.List()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Beans", products[0].Name)
	assert.Equal(t, "Rice", products[1].Name)
	assert.Equal(t, "Sugar", products[2].Name)
}
