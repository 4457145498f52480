package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/config"
	"github.com/sangkips/tailorshop-api/internal/domain/garment"
	"github.com/sangkips/tailorshop-api/internal/domain/receipt"
	"github.com/sangkips/tailorshop-api/internal/infrastructure/database"
	"github.com/sangkips/tailorshop-api/internal/infrastructure/repository"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/handler"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/middleware"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/routes"
	"github.com/sangkips/tailorshop-api/pkg/email"
	"github.com/sangkips/tailorshop-api/pkg/logger"
	"github.com/sangkips/tailorshop-api/pkg/oauth"
	"github.com/sangkips/tailorshop-api/pkg/printer"
	"github.com/sangkips/tailorshop-api/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tailorshop-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.EnvFile {
		log.Info("no .env file found, reading configuration from the environment")
	}
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, log, cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := database.AutoMigrate(db, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if err := database.SeedOwner(db, &cfg.Admin, log); err != nil {
		log.Warn("failed to seed owner account", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
		AppName:      cfg.Branding.AppName,
	})

	googleOAuth := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		StateSecret:        cfg.JWT.Secret,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Timeout: cfg.Printer.Timeout,
	})
	if err != nil {
		log.Warn("failed to initialize printer, receipts will not be printed", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	catalog := garment.Default()
	renderer := receipt.NewRenderer(receipt.Branding{
		ShopName:       cfg.Branding.AppName,
		ShopPhone:      cfg.Branding.ShopPhone,
		CurrencySymbol: cfg.Branding.CurrencySymbol,
		Locale:         cfg.Branding.Locale,
	})

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuth, log.Named("auth"))
	shopService := service.NewShopService(shopRepo, userRepo, emailService, log.Named("shops"))
	workerService := service.NewWorkerService(workerRepo, orderRepo, shopRepo)
	orderService := service.NewOrderService(orderRepo, workerRepo, catalog, renderer.Formatter(), log.Named("orders"))
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, renderer, log.Named("payments"))
	expenseService := service.NewExpenseService(expenseRepo, shopRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, expenseRepo)
	receiptService := service.NewReceiptService(orderRepo, renderer, thermalPrinter, cfg.Printer.Width, log.Named("receipts"))
	systemService := service.NewSystemService(cfg.System, cfg.Branding, catalog)
	cleanupService := service.NewCleanupService(idempotencyRepo, cfg.Worker.CleanupInterval, log.Named("cleanup"))

	if systemService.IsSuspended() {
		log.Warn("system is suspended, protected routes answer 402")
	}

	handlers := &routes.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.OAuthRedirects{
			SuccessURL: googleOAuth.GetFrontendSuccessURL(),
			ErrorURL:   googleOAuth.GetFrontendErrorURL(),
		}),
		Shop:      handler.NewShopHandler(shopService),
		Worker:    handler.NewWorkerHandler(workerService),
		Order:     handler.NewOrderHandler(orderService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		System:    handler.NewSystemHandler(systemService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.NewRateLimiterConfig(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Suspension:      systemService,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server",
			zap.String("name", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return cleanupService.Run(gctx)
	})

	g.Go(func() error {
		return rateLimiter.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
	return nil
}
