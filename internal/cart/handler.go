package cart

import (
	"errors"
	"fmt"

	"mercado-backend/internal/inventory"

	"github.com/gofiber/fiber/v2"
)

type CartResponse struct {
	Lines    []Line  `json:"lines"`
	Subtotal float64 `json:"subtotal"`
}

func toResponse(ct *Cart) CartResponse {
	return CartResponse{Lines: ct.Lines(), Subtotal: ct.Subtotal()}
}

func parseCartProductID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("productId"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
	}
	return id, nil
}

// GET /api/cart
func GetCartHandler(ct *Cart) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(toResponse(ct))
	}
}

// POST /api/cart/items/:productId
func AddItemHandler(ct *Cart, products ProductGetter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCartProductID(c)
		if err != nil {
			return err
		}

		if _, err := ct.Add(products, id); err != nil {
			var ise *InsufficientStockError
			switch {
			case errors.As(err, &ise):
				return fiber.NewError(fiber.StatusConflict, ise.Error())
			case errors.Is(err, inventory.ErrProductNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Item could not be added")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(ct))
	}
}

// DELETE /api/cart/items/:productId
func RemoveItemHandler(ct *Cart) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCartProductID(c)
		if err != nil {
			return err
		}

		if !ct.RemoveOne(id) {
			return c.JSON(fiber.Map{
				"warning": "product is not in the cart",
				"cart":    toResponse(ct),
			})
		}
		return c.JSON(toResponse(ct))
	}
}

// DELETE /api/cart
func ClearCartHandler(ct *Cart) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ct.Clear()
		return c.SendStatus(fiber.StatusNoContent)
	}
}
