package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/academy-api/internal/application/admin"
	"github.com/jhoicas/academy-api/internal/application/auth"
	"github.com/jhoicas/academy-api/internal/application/billing"
	"github.com/jhoicas/academy-api/internal/application/reading"
	"github.com/jhoicas/academy-api/internal/application/tenant"
	infraai "github.com/jhoicas/academy-api/internal/infrastructure/ai"
	"github.com/jhoicas/academy-api/internal/infrastructure/kakao"
	infrapdf "github.com/jhoicas/academy-api/internal/infrastructure/pdf"
	"github.com/jhoicas/academy-api/internal/infrastructure/postgres"
	"github.com/jhoicas/academy-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/academy-api/internal/infrastructure/toss"
	"github.com/jhoicas/academy-api/internal/infrastructure/webhook"
	"github.com/jhoicas/academy-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/academy-api/internal/interfaces/http"
	"github.com/jhoicas/academy-api/pkg/config"
	"github.com/jhoicas/academy-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	cfg.Toss.ResolveCallbackURLs(cfg.App.BaseURL)

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	lectureRepo := postgres.NewLectureRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	accessRepo := postgres.NewCourseAccessRepository(pool)
	readingRepo := postgres.NewReadingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}

	rdb := redisstore.NewClient(cfg.Redis)
	defer rdb.Close()

	bootstrapUC := tenant.NewBootstrapUseCase(tenantRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, profileRepo, txRunner, jwtCfg)
	oauthUC := auth.NewOAuthUseCase(
		kakao.NewClient(cfg.Kakao, log),
		redisstore.NewStateStore(rdb),
		webhook.NewFunnelNotifier(cfg.Webhook.FunnelURL, log),
		userRepo, accountRepo, profileRepo,
		bootstrapUC, jwtCfg, log,
	)

	tossClient := toss.NewClient(cfg.Toss.BaseURL, cfg.Toss.SecretKey, log)
	createOrderUC := billing.NewCreateOrderUseCase(lectureRepo, orderRepo, cfg.Orders.TenantID, log)
	checkoutUC := billing.NewCheckoutUseCase(orderRepo, tossClient, billing.CheckoutConfig{
		SuccessURL: cfg.Toss.SuccessURL,
		FailURL:    cfg.Toss.FailURL,
	})
	confirmUC := billing.NewConfirmPaymentUseCase(orderRepo, paymentRepo, accessRepo, tossClient, log)
	receiptUC := billing.NewReceiptUseCase(orderRepo, lectureRepo, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))

	openaiSvc := infraai.NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	readingUC := reading.NewUseCase(readingRepo, tenantRepo, userRepo, bootstrapUC, openaiSvc, log)

	memberUC := admin.NewMemberUseCase(profileRepo, xlsx.NewMemberExporter(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Academy API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		OAuthUC:       oauthUC,
		CreateOrderUC: createOrderUC,
		ReceiptUC:     receiptUC,
		CheckoutUC:    checkoutUC,
		ConfirmUC:     confirmUC,
		ReadingUC:     readingUC,
		MemberUC:      memberUC,
		ProfileRepo:   profileRepo,
		OrderRepo:     orderRepo,
		Config:        cfg,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
