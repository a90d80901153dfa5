// Package bootstrap 负责应用装配：配置加载、日志、基础设施初始化、
// 依赖注入、路由与优雅关闭。
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/handler/http"
	wsHandler "github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/handler/websocket"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/hub"
	gormpersistence "github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/infra/persistence/gorm"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/infra/setup"
	redisstate "github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/infra/state/redis"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/middleware"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/worker"
)

// Config 结构体用于存储从环境变量或文件加载的配置
type Config struct {
	DBUser          string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBName          string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	ServerPort      string
	LogLevel        string
	RateLimitMax    int
	RateLimitWindow time.Duration
	JWTExpiryHours  int
	AppEnv          string // development / production
	KeyPrefix       string // Redis key 前缀
	UploadDir       string // 静态文件目录
}

// LoadConfig 从环境变量加载配置
func LoadConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        os.Getenv("DB_NAME"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		AppEnv:        os.Getenv("APP_ENV"),
		KeyPrefix:     os.Getenv("REDIS_KEY_PREFIX"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		// --- 默认值 ---
		RateLimitMax:    100,
		RateLimitWindow: 1 * time.Second,
		JWTExpiryHours:  24,
	}

	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB")) // 解析失败默认为 0

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "sv:"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App 结构体包含应用的所有组件
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	AsynqServer *worker.WorkerServer
	Hub         *hub.Hub
	HttpServer  *http.Server
}

// NewApp 创建并初始化应用的所有组件
func NewApp() (*App, error) {
	// 1. 配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. Logger
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	log.Info("Configuration loaded successfully")

	// 3. 基础设施
	log.Info("Initializing infrastructure...")
	db, err := setup.InitDB(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database initialized and migrated")

	redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	log.Info("Redis client initialized")

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// 4. Repositories
	userRepo := gormpersistence.NewGormUserRepository(db)
	annRepo := gormpersistence.NewGormAnnouncementRepository(db)
	repairRepo := gormpersistence.NewGormRepairRepository(db)
	bookingRepo := gormpersistence.NewGormBookingRepository(db)
	billRepo := gormpersistence.NewGormBillRepository(db)
	paymentRepo := gormpersistence.NewGormPaymentRepository(db)
	calendarRepo := gormpersistence.NewGormCalendarRepository(db)
	docRepo := gormpersistence.NewGormDocumentRepository(db)
	securityRepo := gormpersistence.NewGormSecurityRepository(db)
	votingRepo := gormpersistence.NewGormVotingRepository(db)
	chatRepo := gormpersistence.NewGormChatRepository(db)
	presenceRepo := redisstate.NewRedisPresenceRepository(redisClient, cfg.KeyPrefix)
	log.Info("Repositories initialized")

	// 5. 先装配聊天服务与 Hub (Hub 是其余服务的事件出口)
	chatService := service.NewChatService(chatRepo, userRepo)
	hubInstance := hub.NewHub(hub.NewRegistry(), chatService, presenceRepo)

	// 6. 其余 Services (以 Hub 作为 Publisher)
	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	userService := service.NewUserService(userRepo, presenceRepo)
	annService := service.NewAnnouncementService(annRepo, userRepo, hubInstance)
	repairService := service.NewRepairService(repairRepo, userRepo, hubInstance)
	bookingService := service.NewBookingService(bookingRepo, userRepo, hubInstance)
	billingService := service.NewBillingService(billRepo, paymentRepo, userRepo, hubInstance)
	calendarService := service.NewCalendarService(calendarRepo, hubInstance)
	docService := service.NewDocumentService(docRepo)
	securityService := service.NewSecurityService(securityRepo, userRepo, hubInstance)
	votingService := service.NewVotingService(votingRepo)
	log.Info("Services initialized")

	// 7. Handlers
	authHandler := httpHandler.NewAuthHandler(authService)
	userHandler := httpHandler.NewUserHandler(userService)
	annHandler := httpHandler.NewAnnouncementHandler(annService)
	repairHandler := httpHandler.NewRepairHandler(repairService)
	bookingHandler := httpHandler.NewBookingHandler(bookingService)
	billingHandler := httpHandler.NewBillingHandler(billingService)
	calendarHandler := httpHandler.NewCalendarHandler(calendarService)
	docHandler := httpHandler.NewDocumentHandler(docService)
	securityHandler := httpHandler.NewSecurityHandler(securityService)
	votingHandler := httpHandler.NewVotingHandler(votingService)
	chatHandler := httpHandler.NewChatHandler(chatService)
	websocketHandler := wsHandler.NewWebSocketHandler(hubInstance)
	log.Info("Handlers initialized")

	// 8. Worker Server (含周期调度)
	workerServer := worker.NewWorkerServer(redisClientOpt, billingService, log)
	log.Info("Worker server initialized")

	// 9. Gin 路由
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// 聊天历史是公开回放接口，和 /ws 保持一致的信任边界
	api.GET("/chat-messages", chatHandler.History)

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWTSecret))
	{
		protected.GET("/users", userHandler.List)
		protected.GET("/users/:id", userHandler.Get)
		protected.PUT("/users/:id", userHandler.UpdateProfile)
		protected.PUT("/users/:id/status", middleware.RequireRole("admin"), userHandler.UpdateStatus)
		protected.DELETE("/users/:id", middleware.RequireRole("admin"), userHandler.Delete)
		protected.GET("/presence/online", userHandler.Online)

		protected.GET("/announcements", annHandler.List)
		protected.POST("/announcements", middleware.RequireRole("admin"), annHandler.Create)
		protected.PUT("/announcements/:id", middleware.RequireRole("admin"), annHandler.Update)
		protected.DELETE("/announcements/:id", middleware.RequireRole("admin"), annHandler.Delete)

		protected.GET("/repair-requests", repairHandler.List)
		protected.POST("/repair-requests", repairHandler.Create)
		protected.PUT("/repair-requests/:id/status", middleware.RequireRole("admin"), repairHandler.UpdateStatus)
		protected.DELETE("/repair-requests/:id", repairHandler.Delete)

		protected.GET("/booking-requests", bookingHandler.List)
		protected.POST("/booking-requests", bookingHandler.Create)
		protected.PUT("/booking-requests/:id/status", middleware.RequireRole("admin"), bookingHandler.UpdateStatus)
		protected.DELETE("/booking-requests/:id", bookingHandler.Delete)

		protected.GET("/bills", billingHandler.ListBills)
		protected.POST("/bills", middleware.RequireRole("admin"), billingHandler.CreateBill)
		protected.PUT("/bills/:id", middleware.RequireRole("admin"), billingHandler.UpdateBill)
		protected.DELETE("/bills/:id", middleware.RequireRole("admin"), billingHandler.DeleteBill)

		protected.GET("/payments", billingHandler.ListPayments)
		protected.POST("/payments", billingHandler.SubmitPayment)
		protected.PUT("/payments/:id/approve", middleware.RequireRole("admin"), billingHandler.ReviewPayment)

		protected.GET("/calendar-events", calendarHandler.List)
		protected.POST("/calendar-events", middleware.RequireRole("admin"), calendarHandler.Create)

		protected.GET("/documents", docHandler.List)
		protected.POST("/documents", middleware.RequireRole("admin"), docHandler.Create)
		protected.DELETE("/documents/:id", middleware.RequireRole("admin"), docHandler.Delete)

		protected.GET("/security-visitors", securityHandler.ListVisitors)
		protected.POST("/security-visitors", securityHandler.RegisterVisitor)
		protected.GET("/security-incidents", securityHandler.ListIncidents)
		protected.POST("/security-incidents", securityHandler.ReportIncident)

		protected.GET("/voting-polls", votingHandler.ListPolls)
		protected.POST("/voting-polls", middleware.RequireRole("admin"), votingHandler.CreatePoll)
		protected.POST("/voting-polls/:id/votes", votingHandler.Vote)
		protected.GET("/voting-polls/:id/results", votingHandler.Results)
	}

	// WebSocket 入口不做认证：身份与房间由客户端入会时自行声明
	router.GET("/ws", websocketHandler.HandleConnection)

	router.Static("/uploads", cfg.UploadDir)
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	log.Info("Router setup complete")

	// 10. HTTP Server
	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		AsynqServer: workerServer,
		Hub:         hubInstance,
		HttpServer:  httpServer,
	}, nil
}

// Start 启动应用的所有后台 goroutine 和 HTTP 服务器
func (a *App) Start() {
	a.Log.Info("Starting application background routines...")
	go a.Hub.Run()
	go a.AsynqServer.Start()

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown 优雅地关闭应用
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	// HTTP 停止后不再有新连接进来，安全停掉 Hub 分发循环
	if a.Hub != nil {
		a.Hub.Stop()
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// corsMiddleware 返回 CORS 处理中间件，允许来源从环境变量读取。
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowedOrigin := os.Getenv("CORS_ALLOWED_ORIGIN")
		if allowedOrigin == "" {
			allowedOrigin = "http://localhost:3000"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if errorMessage != "" {
			entry.Error(errorMessage)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}
