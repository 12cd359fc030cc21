package main

import (
	"log"
	"strings"
	"time"

	"mercado-backend/internal/audit"
	"mercado-backend/internal/cart"
	"mercado-backend/internal/config"
	"mercado-backend/internal/dashboard"
	"mercado-backend/internal/database"
	"mercado-backend/internal/inventory"
	"mercado-backend/internal/printer"
	"mercado-backend/internal/sales"
	"mercado-backend/internal/scale"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	store := inventory.NewStore(database.DB)

	// One cart per process: the terminal serves a single cashier session.
	sessionCart := cart.New()

	var receiptPrinter printer.Printer = printer.Disabled{}
	if cfg.PrinterAddr != "" {
		receiptPrinter = &printer.Device{Addr: cfg.PrinterAddr}
	}
	checkout := sales.NewService(database.DB, receiptPrinter)

	// The weight poller lives next to the HTTP server but never touches the
	// store or the cart; it only feeds this cell.
	weightCell := &scale.Cell{}
	if cfg.ScalePort != "" {
		go func() {
			stream, err := scale.Open(cfg.ScalePort, cfg.ScaleBaud)
			if err != nil {
				log.Println("Scale unavailable:", err)
				return
			}
			log.Println("Scale connected on", cfg.ScalePort)
			poller := &scale.Poller{Cell: weightCell, Interval: 100 * time.Millisecond}
			poller.Run(stream)
		}()
	} else {
		log.Println("SCALE_PORT not set, weight poller disabled")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Product registration screen
	api.Get("/products", inventory.ListProductsHandler(store))
	api.Post("/products", inventory.CreateProductHandler(store))
	api.Get("/products/:id", inventory.GetProductHandler(store))
	api.Put("/products/:id", inventory.UpdateProductHandler(store))
	api.Delete("/products/:id", inventory.DeleteProductHandler(store))

	// Sales screen: cart
	api.Get("/cart", cart.GetCartHandler(sessionCart))
	api.Post("/cart/items/:productId", cart.AddItemHandler(sessionCart, store))
	api.Delete("/cart/items/:productId", cart.RemoveItemHandler(sessionCart))
	api.Delete("/cart", cart.ClearCartHandler(sessionCart))

	// Sales screen: finalize + history
	api.Post("/sales/checkout", sales.CheckoutHandler(checkout, sessionCart))
	api.Get("/sales", sales.ListSalesHandler())

	// Scale weight for the low stock warning
	api.Get("/scale/weight", scale.WeightHandler(weightCell, cfg.LowWeightGrams))

	// Dashboard
	api.Get("/dashboard/sales-chart", dashboard.SalesChartHandler())

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
