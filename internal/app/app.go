package app

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/config"
	"github.com/PriyanshVijay26/quiz-master/internal/controller"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/service"
	"github.com/PriyanshVijay26/quiz-master/internal/util"
	"github.com/PriyanshVijay26/quiz-master/pkg/configwatcher"
	"github.com/PriyanshVijay26/quiz-master/pkg/database"
	"github.com/PriyanshVijay26/quiz-master/pkg/logger"
	"github.com/PriyanshVijay26/quiz-master/pkg/monitoring"
	"github.com/PriyanshVijay26/quiz-master/pkg/security"
	"github.com/PriyanshVijay26/quiz-master/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	stopBackground  context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	tx       *repository.TxManager
	user     *repository.UserRepository
	subject  *repository.SubjectRepository
	chapter  *repository.ChapterRepository
	quiz     *repository.QuizRepository
	question *repository.QuestionRepository
	score    *repository.ScoreRepository
	chat     *repository.ChatRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	cache    *service.CatalogCache
	subject  *service.SubjectService
	chapter  *service.ChapterService
	quiz     *service.QuizService
	question *service.QuestionService
	attempt  *service.AttemptService
	chat     *service.ChatService
	chatHub  *service.ChatHub
}

type controllers struct {
	auth     *controller.AuthController
	subject  *controller.SubjectController
	chapter  *controller.ChapterController
	quiz     *controller.QuizController
	question *controller.QuestionController
	attempt  *controller.AttemptController
	chat     *controller.ChatController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		tx:       repository.NewTxManager(db),
		user:     repository.NewUserRepository(db),
		subject:  repository.NewSubjectRepository(db),
		chapter:  repository.NewChapterRepository(db),
		quiz:     repository.NewQuizRepository(db),
		question: repository.NewQuestionRepository(db),
		score:    repository.NewScoreRepository(db),
		chat:     repository.NewChatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.cache = service.NewCatalogCache(rdb, cfg.CacheTTL())
	s.auth = service.NewAuthService(repos.user, repos.tx, cfg)

	s.subject = service.NewSubjectService(repos.subject, s.cache)
	s.chapter = service.NewChapterService(repos.chapter, repos.subject, s.cache)
	s.quiz = service.NewQuizService(repos.quiz, repos.chapter, s.cache)
	s.question = service.NewQuestionService(repos.question, repos.quiz, repos.tx, s.storage, s.cache)
	s.attempt = service.NewAttemptService(repos.score, repos.quiz, repos.tx, s.storage, cfg)

	s.chatHub = service.NewChatHub(rdb)
	s.chat = service.NewChatService(repos.chat, repos.user, s.chatHub)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		subject:  controller.NewSubjectController(s.subject),
		chapter:  controller.NewChapterController(s.chapter),
		quiz:     controller.NewQuizController(s.quiz),
		question: controller.NewQuestionController(s.question),
		attempt:  controller.NewAttemptController(s.attempt),
		chat:     controller.NewChatController(s.chat, s.chatHub),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimitWindow()))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Seed.Enabled || cfg.SeedOnly {
		raw, err := database.LoadSeedFile(cfg.Seed.File)
		if err != nil {
			logger.Log.Fatal("Failed to read seed data", zap.Error(err))
		}
		if err := database.Seed(db, raw); err != nil {
			logger.Log.Fatal("Failed to seed database", zap.Error(err))
		}
		logger.Log.Info("Seed data applied")
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := newApp(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})

	return app
}

// newApp 在已建立的连接上组装仓储、服务与路由，测试中传入 sqlite 内存库
func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	util.RegisterValidators()
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	ctx, cancel := context.WithCancel(context.Background())
	app.stopBackground = cancel
	go services.chatHub.Run(ctx)

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// Close 停止后台协程并释放连接
func (a *App) Close() {
	if a.stopBackground != nil {
		a.stopBackground()
	}

	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.Config.Server.WatchConfig && a.Config.ConfigPath != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.ConfigPath, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}
