package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/controller"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/configwatcher"
	"quizmaster_backend/pkg/database"
	"quizmaster_backend/pkg/logger"
	"quizmaster_backend/pkg/monitoring"
	"quizmaster_backend/pkg/security"
	"quizmaster_backend/pkg/tracing"
	"syscall"
	"time"

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
	Policy          *service.PolicyStore
	tracer          *sdktrace.TracerProvider
	stopWatcher     context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	quiz       *repository.QuizRepository
	question   *repository.QuestionRepository
	option     *repository.OptionRepository
	attempt    *repository.AttemptRepository
	permission *repository.RetakePermissionRepository
	student    *repository.StudentRepository
	session    *repository.SessionRepository
	emailLog   *repository.EmailLogRepository
}

type services struct {
	quiz     *service.QuizService
	question *service.QuestionService
	attempt  *service.AttemptService
	retake   *service.RetakeService
	storage  *service.StorageService
	report   *service.ReportService
	session  *service.SessionService
	student  *service.StudentService
	email    *service.EmailService
}

type controllers struct {
	quiz       *controller.QuizController
	question   *controller.QuestionController
	attempt    *controller.AttemptController
	permission *controller.RetakePermissionController
	session    *controller.SessionController
	student    *controller.StudentController
	email      *controller.EmailController
	health     *controller.HealthController
}

// RegisterConfigCallback 配置热更新后依次回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		quiz:       repository.NewQuizRepository(db),
		question:   repository.NewQuestionRepository(db),
		option:     repository.NewOptionRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		permission: repository.NewRetakePermissionRepository(db),
		student:    repository.NewStudentRepository(db),
		session:    repository.NewSessionRepository(db),
		emailLog:   repository.NewEmailLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.quiz = service.NewQuizService(db, repos.quiz, repos.question, repos.option, repos.attempt, a.Policy)
	s.question = service.NewQuestionService(db, repos.quiz, repos.question, repos.option, a.Policy)
	s.attempt = service.NewAttemptService(db, repos.attempt, repos.permission)
	s.retake = service.NewRetakeService(repos.permission)

	s.storage = service.NewStorageService(&cfg.Storage)
	s.report = service.NewReportService(repos.quiz, repos.attempt, s.storage)

	var cache service.SessionCache
	if rdb != nil {
		cache = service.NewRedisSessionCache(rdb)
	}
	s.session = service.NewSessionService(repos.session, cache, cfg.Session.TTL())

	s.student = service.NewStudentService(repos.student, cfg.JWT)
	s.email = service.NewEmailService(db, repos.emailLog, repos.student, repos.quiz)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		quiz:       controller.NewQuizController(s.quiz, s.report),
		question:   controller.NewQuestionController(s.question),
		attempt:    controller.NewAttemptController(s.attempt, s.retake),
		permission: controller.NewRetakePermissionController(s.retake),
		session:    controller.NewSessionController(s.session),
		student:    controller.NewStudentController(s.student),
		email:      controller.NewEmailController(s.email),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig 配置文件变更时刷新测验校验策略
func (a *App) watchConfig() {
	if a.Config.ConfigPath == "" {
		return
	}

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		a.Policy.Set(service.PolicyFromConfig(newCfg.Quiz))
		logger.Log.Info("Quiz policy reloaded",
			zap.Int("title_min_length", newCfg.Quiz.TitleMinLength),
			zap.Int("title_max_length", newCfg.Quiz.TitleMaxLength),
			zap.Int("max_time_limit", newCfg.Quiz.MaxTimeLimit),
			zap.Int("min_options", newCfg.Quiz.MinOptions),
		)
	})

	ctx, cancel := context.WithCancel(context.Background())
	err := configwatcher.Watch(ctx, a.Config.ConfigPath, func(newCfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
	if err != nil {
		cancel()
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		return
	}
	a.stopWatcher = cancel
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Policy: service.NewPolicyStore(service.PolicyFromConfig(cfg.Quiz)),
	}

	if cfg.MigrateOnly {
		return app
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, sessions will not be cached", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, app.Redis)
	controllers := app.initControllers(services, db, app.Redis)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("quizmaster-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if a.stopWatcher != nil {
		a.stopWatcher()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
