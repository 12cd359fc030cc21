package scale

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type WeightResponse struct {
	Present   bool    `json:"present"`
	Grams     float64 `json:"grams"`
	UpdatedAt string  `json:"updated_at,omitempty"`
	Low       bool    `json:"low"`
}

// GET /api/scale/weight
// The UI polls this to show the low physical stock warning.
func WeightHandler(cell *Cell, lowThreshold float64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, ok := cell.Latest()
		if !ok {
			return c.JSON(WeightResponse{Present: false})
		}
		return c.JSON(WeightResponse{
			Present:   true,
			Grams:     r.Grams,
			UpdatedAt: r.At.Format(time.RFC3339),
			Low:       r.Grams < lowThreshold,
		})
	}
}
