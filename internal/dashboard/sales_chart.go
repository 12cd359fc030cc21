package dashboard

import (
	"fmt"
	"time"

	"mercado-backend/internal/database"
	"mercado-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// maxChartDays bounds the zero-filled points slice a request can ask for.
const maxChartDays = 366

type SalesChartPoint struct {
	Label string  `json:"label"` // day, "2006-01-02"
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type SalesChartResponse struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Points     []SalesChartPoint `json:"points"`
	GrandTotal float64           `json:"grand_total"`
	SaleCount  int               `json:"sale_count"`
}

// GET /api/dashboard/sales-chart?days=7
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := 7
		if daysStr := c.Query("days"); daysStr != "" {
			if _, err := fmt.Sscan(daysStr, &days); err != nil || days <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "days must be a positive number")
			}
			if days > maxChartDays {
				days = maxChartDays
			}
		}

		now := time.Now()
		loc := now.Location()
		// tomorrow 00:00, so today is included
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		start := end.AddDate(0, 0, -days)

		var sales []models.Sale
		if err := database.DB.
			Where("timestamp >= ? AND timestamp < ?", start, end).
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sales could not be loaded")
		}

		points := make([]SalesChartPoint, days)
		index := make(map[string]int, days)
		for i := 0; i < days; i++ {
			label := start.AddDate(0, 0, i).Format("2006-01-02")
			points[i] = SalesChartPoint{Label: label}
			index[label] = i
		}

		res := SalesChartResponse{
			From: start.Format("2006-01-02"),
			To:   end.AddDate(0, 0, -1).Format("2006-01-02"),
		}
		for _, s := range sales {
			if i, ok := index[s.Timestamp.In(loc).Format("2006-01-02")]; ok {
				points[i].Total += s.Total
				points[i].Count++
			}
			res.GrandTotal += s.Total
			res.SaleCount++
		}
		res.Points = points

		return c.JSON(res)
	}
}
