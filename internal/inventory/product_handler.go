package inventory

import (
	"errors"
	"fmt"
	"log"

	"mercado-backend/internal/audit"
	"mercado-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type ProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

func toResponse(p *models.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}

func parseProductID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
	}
	return id, nil
}

func mapStoreError(err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.NewError(fiber.StatusBadRequest, ve.Error())
	case errors.Is(err, ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Product operation failed")
	}
}

// GET /api/products
func ListProductsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := store.List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Products could not be listed")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseProductID(c)
		if err != nil {
			return err
		}
		p, err := store.Get(id)
		if err != nil {
			return mapStoreError(err)
		}
		return c.JSON(toResponse(p))
	}
}

// POST /api/products
func CreateProductHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		id, err := store.Register(body.Name, body.Price, body.Stock)
		if err != nil {
			return mapStoreError(err)
		}

		p, err := store.Get(id)
		if err != nil {
			return mapStoreError(err)
		}

		if err := audit.WriteLog(audit.LogOptions{
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Product registered: %s", p.Name),
			After:       toResponse(p),
		}); err != nil {
			log.Println("Audit log failed:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseProductID(c)
		if err != nil {
			return err
		}

		before, err := store.Get(id)
		if err != nil {
			return mapStoreError(err)
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := store.Update(id, body.Name, body.Price, body.Stock); err != nil {
			return mapStoreError(err)
		}

		after, err := store.Get(id)
		if err != nil {
			return mapStoreError(err)
		}

		if err := audit.WriteLog(audit.LogOptions{
			EntityType:  "product",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Product updated: %s", after.Name),
			Before:      toResponse(before),
			After:       toResponse(after),
		}); err != nil {
			log.Println("Audit log failed:", err)
		}

		return c.JSON(toResponse(after))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseProductID(c)
		if err != nil {
			return err
		}

		before, err := store.Get(id)
		if err != nil {
			return mapStoreError(err)
		}

		if err := store.Remove(id); err != nil {
			return mapStoreError(err)
		}

		if err := audit.WriteLog(audit.LogOptions{
			EntityType:  "product",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Product removed: %s", before.Name),
			Before:      toResponse(before),
		}); err != nil {
			log.Println("Audit log failed:", err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
