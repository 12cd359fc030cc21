package sales

import (
	"errors"
	"fmt"
	"log"
	"time"

	"mercado-backend/internal/cart"
	"mercado-backend/internal/inventory"
	"mercado-backend/internal/models"
	"mercado-backend/internal/printer"

	"gorm.io/gorm"
)

var ErrEmptyCart = errors.New("cart is empty")

// Result is the outcome of a committed checkout. PrintWarning is set when
// the receipt could not be printed; the sale itself is already durable.
type Result struct {
	Sale         *models.Sale
	PrintWarning string
}

type Service struct {
	db      *gorm.DB
	printer printer.Printer
}

func NewService(db *gorm.DB, p printer.Printer) *Service {
	return &Service{db: db, printer: p}
}

// Checkout turns the cart into a committed sale.
//
// Stock is re-read inside the transaction instead of trusting the cart's
// add-time check: time passes between picking an item and finalizing, and
// the decision has to be made on live data. Any shortfall aborts the whole
// transaction, nothing is written and the cart is left as-is so the cashier
// can adjust it. After the commit the receipt is printed; a printer failure
// is only a warning and the cart is cleared either way.
func (s *Service) Checkout(ct *cart.Cart) (*Result, error) {
	if ct.Empty() {
		return nil, ErrEmptyCart
	}

	lines := ct.Lines()
	sale := models.Sale{Timestamp: time.Now()}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, l := range lines {
			var p models.Product
			if err := tx.First(&p, "id = ?", l.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %q no longer exists: %w", l.Name, inventory.ErrProductNotFound)
				}
				return err
			}
			if p.Stock < l.Quantity {
				return &cart.InsufficientStockError{ProductName: p.Name, Available: p.Stock}
			}

			// Guarded decrement: the stock >= ? condition means even a writer
			// this process does not know about cannot push stock negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", l.ProductID, l.Quantity).
				Update("stock", gorm.Expr("stock - ?", l.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &cart.InsufficientStockError{ProductName: p.Name, Available: p.Stock}
			}

			// Total accumulates over the exact subtotals being persisted, in
			// the same order: float addition is order-sensitive, and the
			// total must equal the item sum bit for bit.
			subtotal := l.Price * float64(l.Quantity)
			sale.Items = append(sale.Items, models.SaleItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Subtotal:  subtotal,
			})
			sale.Total += subtotal
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Sale: &sale}

	rcpt := printer.Receipt{Time: sale.Timestamp, Total: sale.Total}
	for _, l := range lines {
		rcpt.Items = append(rcpt.Items, printer.Item{Name: l.Name, Quantity: l.Quantity, UnitPrice: l.Price})
	}
	if err := s.printer.Print(rcpt); err != nil {
		log.Printf("Receipt printing failed (sale #%d is kept): %v", sale.ID, err)
		result.PrintWarning = fmt.Sprintf("sale committed, but the receipt could not be printed: %v", err)
	}

	ct.Clear()
	return result, nil
}
