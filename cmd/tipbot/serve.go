package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tipbot/config"
	httpHandler "tipbot/internal/adapter/http/handler"
	"tipbot/internal/adapter/notify"
	pgStorage "tipbot/internal/adapter/storage/postgres"
	redisStorage "tipbot/internal/adapter/storage/redis"
	"tipbot/internal/adapter/wallet"
	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"
	"tipbot/internal/lexicon"
	"tipbot/internal/service"
	"tipbot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *configPath, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the database schema before serving")
	return cmd
}

func serve(ctx context.Context, configPath string, migrate bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("currency", cfg.Bot.Currency).
		Msg("Starting tip bot")

	settlement, err := settlementConfig(cfg.Bot, cfg.Wallet.Decimals)
	if err != nil {
		return err
	}

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	if migrate {
		if err := pgStorage.Migrate(ctx, pool, log); err != nil {
			return err
		}
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	// Repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	tipRepo := pgStorage.NewTipRepo(pool)
	inboundRepo := pgStorage.NewInboundRepo(pool)
	memberRepo := pgStorage.NewChatMemberRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)

	// Wallet daemon
	rpc := wallet.NewClient(cfg.Wallet.URL(), cfg.Wallet.User, cfg.Wallet.Password,
		&http.Client{Timeout: cfg.Wallet.Timeout})
	gateway := wallet.NewGateway(rpc, cfg.Wallet.Decimals, logger.Component(log, "wallet"))

	// Outbound platform messages
	platformClient := &http.Client{Timeout: 10 * time.Second}
	notifier := notify.NewRouter(notify.DefaultCatalog(), map[domain.Platform]notify.Sender{
		domain.PlatformTelegram: notify.NewTelegramSender(cfg.Telegram.APIBase, cfg.Telegram.Token, platformClient),
		domain.PlatformTwitter:  notify.NewTwitterSender(cfg.Twitter.APIBase, cfg.Twitter.BearerToken, platformClient),
	}, logger.Component(log, "notify"))

	// Settlement
	lx := lexicon.Default()
	mode := service.NewModeSwitch(domain.ParseBotMode(cfg.Bot.Status))
	engine := service.NewSettlementEngine(lx, accountRepo, gateway, tipRepo, notifier, mode, settlement,
		logger.Component(log, "settlement"))
	dispatcher := service.NewDispatcher(engine, cfg.Bot.MaxWorkers, log)
	ingress := service.NewIngressService(redisStorage.NewDedupeStore(rdb), inboundRepo, accountRepo, memberRepo,
		dispatcher, cfg.Redis.DedupTTL, logger.Component(log, "ingress"))

	// Operator services
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.Admin.JWTSecret, cfg.Admin.JWTExpiry, cfg.Admin.JWTIssuer)
	adminSvc := service.NewAdminService(service.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	}, tipRepo, mode, hashSvc, tokenSvc, logger.Component(log, "admin"))
	auditSvc := service.NewAuditService(auditRepo, log)
	if cfg.Admin.PasswordHash == "" {
		log.Warn().Msg("admin.password_hash is empty, operator API disabled")
	}

	// bot.status follows the config file without a restart.
	if err := config.Watch(configPath, func(next *config.Config) {
		want := domain.ParseBotMode(next.Bot.Status)
		if prev := mode.Set(want); prev != want {
			log.Warn().Str("from", string(prev)).Str("to", string(want)).Msg("bot mode changed by config")
		}
	}, log); err != nil {
		if !errors.Is(err, config.ErrNoConfigFile) {
			return err
		}
		log.Info().Msg("no config file, live reload disabled")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Ingress:        ingress,
		Lexicon:        lx,
		SigSvc:         sigSvc,
		TokenSvc:       tokenSvc,
		AdminSvc:       adminSvc,
		LookupSvc:      service.NewLookupService(accountRepo),
		StatsSvc:       service.NewStatsService(tipRepo),
		AuditSvc:       auditSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
			wallet.NewHealthCheck(rpc),
		},
		Telegram: httpHandler.TelegramSettings{
			SecretToken: cfg.Telegram.SecretToken,
			BotID:       cfg.Telegram.BotID,
			BotName:     cfg.Telegram.BotName,
		},
		Twitter: httpHandler.TwitterSettings{
			ConsumerSecret: cfg.Twitter.ConsumerSecret,
			BotID:          cfg.Twitter.BotID,
			BotName:        cfg.Twitter.BotName,
		},
		Logger: log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// No new commands can arrive now; let in-flight settlements finish.
	dispatcher.Wait()
	auditSvc.Wait()

	log.Info().Msg("Server exited")
	return nil
}

func settlementConfig(bot config.BotConfig, decimals int32) (service.SettlementConfig, error) {
	minTip, err := bot.MinTipAmount()
	if err != nil {
		return service.SettlementConfig{}, err
	}
	epsilon, err := bot.Epsilon()
	if err != nil {
		return service.SettlementConfig{}, err
	}
	return service.SettlementConfig{
		CurrencyName:      bot.CurrencyName,
		CurrencySymbol:    bot.CurrencySymbol,
		MinTip:            minTip,
		BotAccount:        bot.BotAccount,
		MinTxConfirmation: bot.MinTxConfirmation,
		DonationEpsilon:   epsilon,
		ExplorerURL:       bot.ExplorerURL,
		HelpURL:           bot.HelpURL,
		DefaultLocale:     bot.DefaultLocale,
		AmountDecimals:    decimals,
	}, nil
}
