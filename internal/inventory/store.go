package inventory

import (
	"errors"
	"strings"

	"mercado-backend/internal/models"

	"gorm.io/gorm"
)

// Store owns all product persistence. Handlers go through it instead of
// touching gorm directly, so the HTTP layer stays free of SQL concerns.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func validate(name string, price float64, stock int) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if stock < 0 {
		return &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return nil
}

// Register inserts a new product and returns its id.
func (s *Store) Register(name string, price float64, stock int) (uint, error) {
	if err := validate(name, price, stock); err != nil {
		return 0, err
	}
	p := models.Product{Name: strings.TrimSpace(name), Price: price, Stock: stock}
	if err := s.db.Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

// Update overwrites all fields of an existing product. There is no partial
// update: the registration screen always submits the full form.
func (s *Store) Update(id uint, name string, price float64, stock int) error {
	if err := validate(name, price, stock); err != nil {
		return err
	}
	var p models.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Price = price
	p.Stock = stock
	return s.db.Save(&p).Error
}

// Remove deletes a product. Past SaleItem rows keep their product_id; sales
// are history and are not rewritten when the catalog shrinks.
func (s *Store) Remove(id uint) error {
	res := s.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *Store) Get(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns every product ordered by name.
func (s *Store) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
