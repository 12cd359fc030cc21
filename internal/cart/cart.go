package cart

import (
	"fmt"
	"sort"

	"mercado-backend/internal/models"
)

// ProductGetter is the one slice of the inventory store the cart needs.
type ProductGetter interface {
	Get(id uint) (*models.Product, error)
}

// InsufficientStockError carries what the operator needs to adjust the sale.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d unit(s) available", e.ProductName, e.Available)
}

// Line is one cart row. Name and Price are snapshots taken when the product
// is first added: a price edited mid-session does not reprice lines already
// in the cart, so a sale's prices stay fixed once items are picked. That is
// intentional, not an oversight.
type Line struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the current sale session. The terminal is single-user and every
// cart operation runs to completion on the request path, so no locking.
type Cart struct {
	lines map[uint]*Line
}

func New() *Cart {
	return &Cart{lines: make(map[uint]*Line)}
}

// Add puts one more unit of the product in the cart, checking the live
// persisted stock against what the cart already holds.
func (c *Cart) Add(products ProductGetter, id uint) (Line, error) {
	p, err := products.Get(id)
	if err != nil {
		return Line{}, err
	}

	inCart := 0
	if l, ok := c.lines[id]; ok {
		inCart = l.Quantity
	}
	if p.Stock <= inCart {
		return Line{}, &InsufficientStockError{ProductName: p.Name, Available: p.Stock - inCart}
	}

	l, ok := c.lines[id]
	if !ok {
		l = &Line{ProductID: id, Name: p.Name, Price: p.Price}
		c.lines[id] = l
	}
	l.Quantity++
	return *l, nil
}

// RemoveOne takes one unit out of a line, dropping the line at zero. A false
// return means the product was not in the cart; callers surface that as a
// warning, not an error.
func (c *Cart) RemoveOne(id uint) bool {
	l, ok := c.lines[id]
	if !ok {
		return false
	}
	l.Quantity--
	if l.Quantity <= 0 {
		delete(c.lines, id)
	}
	return true
}

// Subtotal is pure: the snapshot price times quantity over all lines. It
// sums over Lines() rather than the map so the same cart always yields the
// same float, bit for bit, regardless of map iteration order.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, l := range c.Lines() {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

func (c *Cart) Clear() {
	c.lines = make(map[uint]*Line)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns the cart rows in stable product id order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
