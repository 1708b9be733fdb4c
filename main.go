package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/memory/v2"
	"github.com/khanghh/shopdash/internal/audit"
	"github.com/khanghh/shopdash/internal/auth"
	"github.com/khanghh/shopdash/internal/config"
	"github.com/khanghh/shopdash/internal/dashboard"
	"github.com/khanghh/shopdash/internal/handlers/admin"
	"github.com/khanghh/shopdash/internal/handlers/web"
	"github.com/khanghh/shopdash/internal/mail"
	"github.com/khanghh/shopdash/internal/middlewares"
	"github.com/khanghh/shopdash/internal/settings"
	"github.com/khanghh/shopdash/internal/storage"
	"github.com/khanghh/shopdash/internal/users"
	"github.com/khanghh/shopdash/model"
	"github.com/khanghh/shopdash/params"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "shopdash - session and account backend for the shop dashboard"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitDatabase(dbConfig config.DatabaseConfig) *gorm.DB {
	db, err := storage.Open(dbConfig.Path)
	if err != nil {
		slog.Error("Failed to open database", "path", dbConfig.Path, "error", err)
		os.Exit(1)
	}

	if err := model.AutoMigrate(db); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	return db
}

func mustInitMailSender(mailCfg config.MailConfig) mail.MailSender {
	switch mailCfg.Backend {
	case "log":
		return mail.LogSender{}
	case "smtp":
		sender, err := mail.NewSMTPMailSender(mail.SMTPConfig{
			Host:     mailCfg.SMTP.Host,
			Port:     mailCfg.SMTP.Port,
			Username: mailCfg.SMTP.Username,
			Password: mailCfg.SMTP.Password,
			TLS:      mailCfg.SMTP.TLS,
			CertFile: mailCfg.SMTP.CertFile,
			KeyFile:  mailCfg.SMTP.KeyFile,
			CAFile:   mailCfg.SMTP.CAFile,
		}, mailCfg.From)
		if err != nil {
			log.Fatalf("Failed to initialize SMTP mail sender: %v", err)
		}
		return sender
	}
	log.Fatalf("Unsupported mail sender backend %s", mailCfg.Backend)
	return nil
}

func mustInitSettings(db *gorm.DB) *settings.Store {
	ctx := context.Background()
	store, err := settings.NewStore(db)
	if err != nil {
		slog.Error("Failed to load system settings", "error", err)
		os.Exit(1)
	}
	if err := store.SeedDefaults(ctx); err != nil {
		slog.Error("Failed to seed default settings", "error", err)
		os.Exit(1)
	}
	return store
}

// startMaintenanceLoop purges dead sessions and trims the activity log on a
// fixed interval for the whole process lifetime.
func startMaintenanceLoop(authService *auth.AuthService, activity *audit.Reader) {
	ticker := time.NewTicker(params.SessionSweepInterval)
	go func() {
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if count, err := authService.CleanupExpiredSessions(ctx); err != nil {
				slog.Error("Session cleanup failed", "error", err)
			} else if count > 0 {
				slog.Debug("Purged expired sessions", "count", count)
			}
			cutoff := time.Now().Add(-params.ActivityRetention)
			if count, err := activity.PurgeOlderThan(ctx, cutoff); err != nil {
				slog.Error("Activity log purge failed", "error", err)
			} else if count > 0 {
				slog.Debug("Purged old activity events", "count", count)
			}
			cancel()
		}
	}()
}

func setupRoutes(
	router fiber.Router,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.AuthService,
	sysSettings *settings.Store,
	prefRepo users.UserSettingRepository) {

	// handlers
	var (
		authHandler    = web.NewAuthHandler(authService, cfg.TrustProxyHeaders)
		accountHandler = web.NewAccountHandler(authService, prefRepo, cfg.TrustProxyHeaders)
		adminHandler   = admin.NewAdminHandler(db, authService, sysSettings)
	)

	// credential endpoints share one rate limit bucket per client IP
	authLimiter := limiter.New(limiter.Config{
		Max:        params.LoginRateLimitMax,
		Expiration: params.LoginRateLimitWindow,
		Storage:    memory.New(),
	})

	router.Use(dashboard.New(authService, sysSettings, prefRepo))

	router.Post("/register", authLimiter, authHandler.PostRegister)
	router.Post("/login", authLimiter, authHandler.PostLogin)
	router.Post("/logout", authHandler.PostLogout)
	router.Get("/verify-email", authHandler.GetVerifyEmail)
	router.Post("/forgot-password", authLimiter, authHandler.PostForgotPassword)
	router.Post("/reset-password", authLimiter, authHandler.PostResetPassword)

	account := router.Group("/account", middlewares.RequireAuth())
	account.Get("/profile", accountHandler.GetProfile)
	account.Put("/profile", accountHandler.PutProfile)
	account.Put("/preferences", accountHandler.PutPreferences)
	account.Post("/change-password", accountHandler.PostChangePassword)
	account.Post("/logout-all", accountHandler.PostLogoutAll)
	account.Post("/logout-others", accountHandler.PostLogoutOthers)
	account.Get("/sessions", accountHandler.GetSessions)
	account.Delete("/sessions/:id", accountHandler.DeleteSession)
	account.Get("/activity", accountHandler.GetActivity)

	adminGroup := router.Group("/admin", middlewares.RequireAdmin())
	adminGroup.Get("/stats", adminHandler.GetStats)
	adminGroup.Get("/settings", adminHandler.GetSettings)
	adminGroup.Put("/settings/:key", adminHandler.PutSetting)
	adminGroup.Post("/users/:id/toggle-status", adminHandler.PostToggleUserStatus)
	adminGroup.Post("/users/:id/toggle-admin", adminHandler.PostToggleAdminStatus)
	adminGroup.Get("/users/:id/activity", adminHandler.GetUserActivity)
}

func run(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}

	mustInitLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	db := mustInitDatabase(cfg.Database)
	sysSettings := mustInitSettings(db)
	mailSender := mustInitMailSender(cfg.Mail)

	// repositories
	var (
		userRepo    = users.NewUserRepository(db)
		sessionRepo = users.NewSessionRepository(db)
		prefRepo    = users.NewUserSettingRepository(db)
	)

	// audit and services
	var (
		auditLog    = audit.NewLog(audit.NewActivityEventRepository(db))
		activity    = audit.NewReader(db)
		authService = auth.NewAuthService(db, userRepo, sessionRepo, prefRepo, sysSettings, auditLog, activity, mailSender)
	)

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(logger.New())

	setupRoutes(router, cfg, db, authService, sysSettings, prefRepo)

	startMaintenanceLoop(authService, activity)
	go startHealthCheckServer(params.HealthCheckServerAddr, db)

	slog.Info("Starting server", "listenAddr", cfg.ListenAddr)
	return router.Listen(cfg.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
