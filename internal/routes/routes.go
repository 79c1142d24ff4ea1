package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/tanksmart/internal/config"
	"github.com/example/tanksmart/internal/handlers"
	"github.com/example/tanksmart/internal/middleware"
	"github.com/example/tanksmart/internal/pricing"
	"github.com/example/tanksmart/internal/services"
	"github.com/example/tanksmart/internal/wizard"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	orderService := services.NewOrderService(db)
	settingsService := services.NewSettingsService(db)
	templateService := services.NewTemplateService(db)
	mailService := services.NewMailService(cfg)
	sevenService := services.NewSevenService(cfg)
	addressService := services.NewAddressService(cfg)
	dispatchService := services.NewDispatchService(db, orderService, templateService,
		settingsService, mailService, sevenService, cfg.CountryCallingCode)
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	sessions := wizard.NewRegistry(wizard.DefaultSessionTTL)
	roster := pricing.DefaultProviders()

	authHandler := handlers.NewAuthHandler(db, cfg)
	passwordResetHandler := handlers.NewPasswordResetHandler(db, mailService)
	checkoutHandler := handlers.NewCheckoutHandler(sessions, orderService, settingsService,
		dispatchService, telegramService, roster)
	orderHandler := handlers.NewOrderHandler(orderService, settingsService, dispatchService, telegramService)
	quoteHandler := handlers.NewQuoteHandler(settingsService, roster)
	addressHandler := handlers.NewAddressHandler(addressService)
	adminHandler := handlers.NewAdminHandler(orderService, telegramService)
	notificationHandler := handlers.NewNotificationHandler(dispatchService, sevenService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", passwordResetHandler.ForgotPassword)
	auth.Post("/verify-reset-code", passwordResetHandler.VerifyResetCode)
	auth.Post("/reset-password", passwordResetHandler.ResetPassword)

	// Storefront quote data
	api.Get("/market-price", quoteHandler.MarketPrice)
	api.Get("/providers", quoteHandler.ListProviders)
	api.Get("/delivery-dates", quoteHandler.DeliveryDates)

	// Address autocompletion
	address := api.Group("/address")
	address.Get("/localities", addressHandler.Localities)
	address.Get("/streets", addressHandler.Streets)

	// Checkout wizard sessions
	checkout := api.Group("/checkout")
	checkout.Post("/session", checkoutHandler.CreateSession)
	checkout.Get("/session", checkoutHandler.GetState)
	checkout.Patch("/session", checkoutHandler.UpdateDraft)
	checkout.Post("/session/provider", checkoutHandler.SelectProvider)
	checkout.Post("/session/advance", checkoutHandler.Advance)
	checkout.Post("/session/back", checkoutHandler.Back)
	checkout.Post("/session/submit", checkoutHandler.Submit)

	// Whole-draft order submission
	api.Post("/orders", orderHandler.Create)

	// Protected admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg))

	admin.Get("/me", authHandler.Me)
	admin.Get("/stats", adminHandler.DashboardStats)

	admin.Get("/orders", adminHandler.ListOrders)
	admin.Get("/orders/:id", adminHandler.GetOrder)
	admin.Get("/orders/:id/communications", adminHandler.ListCommunications)
	admin.Put("/orders/:id/status", adminHandler.UpdateStatus)
	admin.Post("/orders/bulk-delete", adminHandler.BulkDelete)

	admin.Post("/orders/:id/email", notificationHandler.SendEmail)
	admin.Post("/orders/:id/sms", notificationHandler.SendSMS)
	admin.Post("/orders/:id/sms-status", notificationHandler.RefreshSMSStatus)
	admin.Post("/orders/:id/hlr", notificationHandler.CheckHLR)
	admin.Post("/orders/:id/cnam", notificationHandler.CheckCNAM)
	admin.Get("/sms-balance", notificationHandler.Balance)

	admin.Get("/templates", templateHandler.List)
	admin.Post("/templates", templateHandler.Save)
	admin.Delete("/templates/:id", templateHandler.Delete)

	admin.Get("/settings", settingsHandler.List)
	admin.Put("/settings", settingsHandler.Update)
}
