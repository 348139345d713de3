package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/academy-api/internal/application/admin"
	"github.com/jhoicas/academy-api/internal/application/auth"
	"github.com/jhoicas/academy-api/internal/application/billing"
	"github.com/jhoicas/academy-api/internal/application/reading"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	OAuthUC       *auth.OAuthUseCase
	CreateOrderUC *billing.CreateOrderUseCase
	ReceiptUC     *billing.ReceiptUseCase
	CheckoutUC    *billing.CheckoutUseCase
	ConfirmUC     *billing.ConfirmPaymentUseCase
	ReadingUC     *reading.UseCase
	MemberUC      *admin.MemberUseCase
	ProfileRepo   repository.ProfileRepository
	OrderRepo     repository.OrderRepository
	Config        *config.Config
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.Config, deps.OrderRepo)
	app.Get("/health", healthHandler.Liveness)

	api := app.Group("/api")
	api.Get("/health/env", healthHandler.Env)
	api.Get("/health/orders", healthHandler.Orders)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.OAuthUC, deps.Config.App.BaseURL)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/kakao/login", authHandler.KakaoLogin)
	authGroup.Get("/callback", authHandler.Callback)

	// Payments Toss (público: el success-callback de Toss llega sin sesión)
	payments := api.Group("/payments/toss")
	paymentHandler := NewPaymentHandler(deps.CheckoutUC, deps.ConfirmUC)
	payments.Post("/create", paymentHandler.Create)
	payments.Post("/create-direct", paymentHandler.CreateDirect)
	payments.Post("/confirm", paymentHandler.Confirm)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Config.JWT.Secret))

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrderUC, deps.ReceiptUC)
	orders.Post("/init", orderHandler.Init)
	orders.Get("/:orderId/receipt", orderHandler.Receipt)

	// Readings y sesiones (protegido)
	readingHandler := NewReadingHandler(deps.ReadingUC)
	protected.Post("/reading", readingHandler.Create)
	sessions := protected.Group("/sessions")
	sessions.Get("/", readingHandler.List)
	sessions.Get("/:id", readingHandler.Get)

	// Admin (protegido + rol ADMIN verificado contra la base)
	adminGroup := protected.Group("/admin", RequireAdmin(deps.ProfileRepo))
	adminHandler := NewAdminHandler(deps.MemberUC)
	adminGroup.Get("/members", adminHandler.ListMembers)
	adminGroup.Get("/members/export", adminHandler.ExportMembers)
	adminGroup.Put("/members/:id", adminHandler.UpdateMember)
	adminGroup.Delete("/members/:id", adminHandler.DeleteMember)
}
