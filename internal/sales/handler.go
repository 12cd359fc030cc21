package sales

import (
	"errors"
	"fmt"
	"log"
	"time"

	"mercado-backend/internal/audit"
	"mercado-backend/internal/cart"
	"mercado-backend/internal/database"
	"mercado-backend/internal/inventory"
	"mercado-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SaleItemResponse struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type SaleResponse struct {
	ID        uint               `json:"id"`
	Timestamp string             `json:"timestamp"`
	Total     float64            `json:"total"`
	Items     []SaleItemResponse `json:"items"`
}

type CheckoutResponse struct {
	Sale    SaleResponse `json:"sale"`
	Warning string       `json:"warning,omitempty"`
}

func toSaleResponse(s *models.Sale) SaleResponse {
	res := SaleResponse{
		ID:        s.ID,
		Timestamp: s.Timestamp.Format(time.RFC3339),
		Total:     s.Total,
	}
	for _, it := range s.Items {
		res.Items = append(res.Items, SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return res
}

// POST /api/sales/checkout
func CheckoutHandler(svc *Service, ct *cart.Cart) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := svc.Checkout(ct)
		if err != nil {
			var ise *cart.InsufficientStockError
			switch {
			case errors.Is(err, ErrEmptyCart):
				return fiber.NewError(fiber.StatusBadRequest, "Add items to the cart before finalizing the sale")
			case errors.As(err, &ise):
				return fiber.NewError(fiber.StatusConflict, ise.Error())
			case errors.Is(err, inventory.ErrProductNotFound):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Sale could not be finalized")
			}
		}

		if err := audit.WriteLog(audit.LogOptions{
			EntityType:  "sale",
			EntityID:    result.Sale.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Sale finalized, total R$ %.2f", result.Sale.Total),
			After:       toSaleResponse(result.Sale),
		}); err != nil {
			log.Println("Audit log failed:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(CheckoutResponse{
			Sale:    toSaleResponse(result.Sale),
			Warning: result.PrintWarning,
		})
	}
}

// GET /api/sales?limit=50
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 50
		if limitStr := c.Query("limit"); limitStr != "" {
			if _, err := fmt.Sscan(limitStr, &limit); err != nil || limit <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive number")
			}
		}

		var sales []models.Sale
		if err := database.DB.
			Preload("Items").
			Order("timestamp desc").
			Limit(limit).
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sales could not be listed")
		}

		res := make([]SaleResponse, 0, len(sales))
		for i := range sales {
			res = append(res, toSaleResponse(&sales[i]))
		}
		return c.JSON(res)
	}
}
