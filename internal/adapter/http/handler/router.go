package handler

import (
	"time"

	"tipbot/internal/adapter/http/middleware"
	redisStore "tipbot/internal/adapter/storage/redis"
	"tipbot/internal/core/ports"
	"tipbot/internal/lexicon"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TelegramSettings identifies the bot on Telegram.
type TelegramSettings struct {
	SecretToken string
	BotID       string
	BotName     string
}

// TwitterSettings identifies the bot on Twitter.
type TwitterSettings struct {
	ConsumerSecret string
	BotID          string
	BotName        string
}

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Ingress        ports.CommandIngress
	Lexicon        *lexicon.Lexicon
	SigSvc         ports.SignatureService
	TokenSvc       ports.TokenService
	AdminSvc       ports.AdminService
	LookupSvc      ports.LookupService
	StatsSvc       ports.StatsService
	AuditSvc       ports.AuditService         // nil = audit logging disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Telegram       TelegramSettings
	Twitter        TwitterSettings
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Platform webhooks ---
	telegram := NewTelegramHandler(deps.Ingress, deps.Lexicon, deps.Telegram.BotID, deps.Telegram.BotName, deps.Logger)
	twitter := NewTwitterHandler(deps.Ingress, deps.SigSvc, deps.Lexicon,
		deps.Twitter.ConsumerSecret, deps.Twitter.BotID, deps.Twitter.BotName, deps.Logger)

	hooks := r.Group("/webhooks")
	{
		hooks.POST("/telegram", middleware.TelegramSecret(deps.Telegram.SecretToken, deps.Logger), telegram.Webhook)
		hooks.GET("/twitter", twitter.CRC)
		hooks.POST("/twitter", middleware.TwitterSignature(deps.SigSvc, deps.Twitter.ConsumerSecret, deps.Logger), twitter.Webhook)
	}

	v1 := r.Group("/api/v1")

	// --- Public lookups and stats (any origin, read only) ---
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.MaxAge = 12 * time.Hour
	public := v1.Group("", cors.New(corsConfig))

	lookup := NewLookupHandler(deps.LookupSvc)
	public.GET("/users/:platform", rl("lookup"), lookup.List)
	public.GET("/users/:platform/:name", rl("lookup"), lookup.ByName)
	public.GET("/addresses/:address", rl("lookup"), lookup.ByAddress)

	stats := NewStatsHandler(deps.StatsSvc)
	statsGroup := public.Group("/stats", rl("stats"))
	{
		statsGroup.GET("/tippers", stats.TopTippers)
		statsGroup.GET("/tips", stats.RecentTips)
		statsGroup.GET("/totals", stats.Totals)
	}

	// --- Operator API ---
	admin := NewAdminHandler(deps.AdminSvc)
	v1.POST("/admin/login", rl("admin_login"), admin.Login)

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	adminGroup := v1.Group("/admin", jwtAuth, rl("admin"))
	{
		adminGroup.GET("/mode", admin.GetMode)
		adminGroup.PUT("/mode", admin.SetMode)
		adminGroup.GET("/tips", admin.ListTips)
	}

	return r
}
