package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qa_judge_backend/internal/config"
	"qa_judge_backend/internal/controller"
	"qa_judge_backend/internal/repository"
	"qa_judge_backend/internal/service"
	"qa_judge_backend/pkg/configwatcher"
	"qa_judge_backend/pkg/database"
	"qa_judge_backend/pkg/logger"
	"qa_judge_backend/pkg/monitoring"
	"qa_judge_backend/pkg/security"
	"qa_judge_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	submission       *repository.SubmissionRepository
	questionTemplate *repository.QuestionTemplateRepository
	question         *repository.QuestionRepository
	answer           *repository.AnswerRepository
	judge            *repository.JudgeRepository
	judgeAssignment  *repository.JudgeAssignmentRepository
	evaluation       *repository.EvaluationRepository
}

type services struct {
	ai      *service.AIService
	storage *service.StorageService
	queue   *service.QueueService
	importS *service.ImportService
	judge   *service.JudgeService
	judging *service.JudgingService
}

type controllers struct {
	upload     *controller.UploadController
	judge      *controller.JudgeController
	assignment *controller.AssignmentController
	judging    *controller.JudgingController
	queue      *controller.QueueController
	evaluation *controller.EvaluationController
	template   *controller.TemplateController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		submission:       repository.NewSubmissionRepository(db),
		questionTemplate: repository.NewQuestionTemplateRepository(db),
		question:         repository.NewQuestionRepository(db),
		answer:           repository.NewAnswerRepository(db),
		judge:            repository.NewJudgeRepository(db),
		judgeAssignment:  repository.NewJudgeAssignmentRepository(db),
		evaluation:       repository.NewEvaluationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.storage = service.NewStorageService(cfg)
	s.queue = service.NewQueueService(repos.submission, rdb)
	s.importS = service.NewImportService(repos.submission, repos.questionTemplate, repos.question, repos.answer, s.queue)
	s.judge = service.NewJudgeService(repos.judge, repos.judgeAssignment)
	s.judging = service.NewJudgingService(
		cfg.AI,
		s.ai,
		repos.submission,
		repos.question,
		repos.answer,
		repos.judge,
		repos.judgeAssignment,
		repos.evaluation,
	)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		upload:     controller.NewUploadController(s.importS, s.storage),
		judge:      controller.NewJudgeController(s.judge),
		assignment: controller.NewAssignmentController(s.judge),
		judging:    controller.NewJudgingController(s.judging),
		queue:      controller.NewQueueController(s.queue),
		evaluation: controller.NewEvaluationController(repos.evaluation),
		template:   controller.NewTemplateController(repos.questionTemplate),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig AI 配置热更新：凭证/模型改动无需重启即可生效
func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
		a.Config.AI = cfg.AI
		a.services.ai.UpdateConfig(cfg.AI)
		a.services.judging.UpdateConfig(cfg.AI)
		logger.Log.Info("AI config reloaded")
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级为直查，不阻止启动
		logger.Log.Warn("Failed to initialize redis, queue list cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("qa-judge-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
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

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
