package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SilverKain/Orthography/internal/catalog"
	"github.com/SilverKain/Orthography/internal/config"
	"github.com/SilverKain/Orthography/internal/controller"
	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/repository"
	"github.com/SilverKain/Orthography/internal/service"
	"github.com/SilverKain/Orthography/pkg/database"
	"github.com/SilverKain/Orthography/pkg/logger"
	"github.com/SilverKain/Orthography/pkg/monitoring"
	"github.com/SilverKain/Orthography/pkg/security"
	"github.com/SilverKain/Orthography/pkg/tracing"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	repos           *repositories
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	skill      *repository.SkillRepository
	progress   *repository.ProgressRepository
	stats      *repository.StatsRepository
	exercise   *repository.ExerciseRepository
	dictionary *repository.DictionaryRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	skill      *service.SkillService
	progress   *service.ProgressService
	exercise   *service.ExerciseService
	dictionary *service.DictionaryService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	skill      *controller.SkillController
	progress   *controller.ProgressController
	exercise   *controller.ExerciseController
	dictionary *controller.DictionaryController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig подменяет конфигурацию на лету и уведомляет подписчиков;
// фоновый обход и middleware читают a.Config на каждой итерации.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	store := docstore.NewGormStore(db)
	return &repositories{
		user:       repository.NewUserRepository(db),
		skill:      repository.NewSkillRepository(store),
		progress:   repository.NewProgressRepository(store),
		stats:      repository.NewStatsRepository(store),
		exercise:   repository.NewExerciseRepository(store),
		dictionary: repository.NewDictionaryRepository(store),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, rdb, cfg)
	s.skill = service.NewSkillService(repos.skill, catalog.Default())
	s.progress = service.NewProgressService(repos.progress, repos.stats)
	s.exercise = service.NewExerciseService(repos.exercise, repos.stats, cfg.Practice.PassingScore)
	s.dictionary = service.NewDictionaryService(repos.dictionary)

	// Инициализация матрицы навыков при первом входе, чтобы клиенту
	// не приходилось дожидаться ленивого создания.
	s.auth.Events.Subscribe(func(event service.AuthEvent) {
		if event.Type != service.SignedIn || event.User == nil {
			return
		}
		uid := event.User.UID
		go func() {
			if _, err := s.skill.GetAll(context.Background(), uid); err != nil {
				logger.Log.Error("skill matrix init failed",
					zap.String("uid", uid), zap.Error(err))
			}
		}()
	})

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.auth, s.storage, repos.user),
		skill:      controller.NewSkillController(s.skill, cfg.Practice.StaleDays),
		progress:   controller.NewProgressController(s.progress),
		exercise:   controller.NewExerciseController(s.exercise),
		dictionary: controller.NewDictionaryController(s.dictionary),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", a.Config)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks запускает обход заброшенных навыков: раз в
// заданный интервал у недавно активных пользователей пересчитывается
// число навыков, ждущих повторения, и публикуется в метрику.
func (a *App) startBackgroundTasks(s *services, repos *repositories, cfg *config.Config) {
	go func() {
		interval := time.Duration(cfg.Practice.ReminderSweepMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		for range ticker.C {
			a.sweepStaleSkills(s, repos, a.Config)
		}
	}()
}

func (a *App) sweepStaleSkills(s *services, repos *repositories, cfg *config.Config) {
	since := time.Now().Add(-time.Duration(cfg.Practice.StaleDays) * 24 * time.Hour)
	users, err := repos.user.RecentlySeen(since)
	if err != nil {
		logger.Log.Error("stale skill sweep failed", zap.Error(err))
		return
	}

	total := 0
	for _, user := range users {
		skills, err := s.skill.NeedingPractice(context.Background(), user.ID, cfg.Practice.StaleDays)
		if err != nil {
			logger.Log.Warn("needing practice lookup failed",
				zap.String("uid", user.ID), zap.Error(err))
			continue
		}
		total += len(skills)
	}

	monitoring.StaleSkills.Set(float64(total))
	logger.Log.Info("stale skill sweep finished",
		zap.Int("users", len(users)), zap.Int("staleSkills", total))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	app.repos = repos
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db, rdb, cfg)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("orthography-course", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.Log.Info("Configuration reloaded",
			zap.Int("staleDays", c.Practice.StaleDays),
			zap.Int("passingScore", c.Practice.PassingScore))
	})

	app.registerRoutes(router, controllers, repos, services)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, repos, cfg)

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
