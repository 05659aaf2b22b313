package server

import (
	"crypto/subtle"

	"codeshop/internal/config"
	"codeshop/internal/handler"
	"codeshop/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	catalogHandler *handler.CatalogHandler
	orderHandler   *handler.OrderHandler
	licenseHandler *handler.LicenseHandler
	adminHandler   *handler.AdminHandler
}

func NewServer(
	cfg *config.Config,
	catalogService service.CatalogService,
	paymentService service.PaymentService,
	activationService service.ActivationService,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		catalogHandler: handler.NewCatalogHandler(catalogService),
		orderHandler:   handler.NewOrderHandler(paymentService),
		licenseHandler: handler.NewLicenseHandler(activationService),
		adminHandler:   handler.NewAdminHandler(catalogService, paymentService, activationService),
	}

	s.setupRoutes(cfg)
	return s
}

func (s *Server) setupRoutes(cfg *config.Config) {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public storefront --------
	api.GET("/items", s.catalogHandler.ListItems)
	api.GET("/items/:id", s.catalogHandler.GetItem)
	api.POST("/orders", s.orderHandler.CreateOrder)

	// -------- licensing, called by the purchased software --------
	api.POST("/activate", s.licenseHandler.Activate)
	api.POST("/validate", s.licenseHandler.Validate)

	apiAdmin := api.Group("/admin", middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:x-admin-secret",
		Validator: func(key string, c echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(cfg.Admin.APISecret)) == 1, nil
		},
	}))
	apiAdmin.POST("/reset-activation", s.licenseHandler.ResetActivation)

	// -------- provider return-trip callbacks --------
	s.echo.GET("/order/:id/success", s.orderHandler.HandleSuccess)
	s.echo.GET("/order/:id/cancel", s.orderHandler.HandleCancel)

	// -------- back office --------
	admin := s.echo.Group("/admin", middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Admin.Password)) == 1
		return userOK && passOK, nil
	}))
	admin.GET("/items", s.adminHandler.ListItems)
	admin.POST("/items", s.adminHandler.CreateItem)
	admin.PUT("/items/:id", s.adminHandler.UpdateItem)
	admin.DELETE("/items/:id", s.adminHandler.DeleteItem)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.POST("/orders/:id/mark-paid", s.adminHandler.MarkOrderPaid)
	admin.POST("/activations/:id/reset", s.adminHandler.ResetActivation)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
