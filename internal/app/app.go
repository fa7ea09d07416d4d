package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms_admin_backend/internal/config"
	"lms_admin_backend/internal/controller"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/pkg/cache"
	"lms_admin_backend/pkg/configwatcher"
	"lms_admin_backend/pkg/database"
	"lms_admin_backend/pkg/logger"
	"lms_admin_backend/pkg/monitoring"
	"lms_admin_backend/pkg/security"
	"lms_admin_backend/pkg/tracing"

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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	section     *repository.SectionRepository
	lesson      *repository.LessonRepository
	media       *repository.MediaRepository
	mediaFolder *repository.MediaFolderRepository
	role        *repository.RoleRepository
	permission  *repository.PermissionRepository
	setting     *repository.SettingRepository
	backup      *repository.BackupRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	curriculum  *service.CurriculumService
	media       *service.MediaService
	mediaFolder *service.MediaFolderService
	rbac        *service.RBACService
	user        *service.UserService
	setting     *service.SettingService
	backup      *service.BackupService
}

type controllers struct {
	auth        *controller.AuthController
	course      *controller.CourseController
	section     *controller.SectionController
	lesson      *controller.LessonController
	media       *controller.MediaController
	mediaFolder *controller.MediaFolderController
	role        *controller.RoleController
	permission  *controller.PermissionController
	user        *controller.UserController
	setting     *controller.SettingController
	backup      *controller.BackupController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		section:     repository.NewSectionRepository(db),
		lesson:      repository.NewLessonRepository(db),
		media:       repository.NewMediaRepository(db),
		mediaFolder: repository.NewMediaFolderRepository(db),
		role:        repository.NewRoleRepository(db),
		permission:  repository.NewPermissionRepository(db),
		setting:     repository.NewSettingRepository(db),
		backup:      repository.NewBackupRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	store := cache.NewStore(rdb, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.curriculum = service.NewCurriculumService(repos.course, repos.section, repos.lesson, store, db)
	s.mediaFolder = service.NewMediaFolderService(repos.mediaFolder, repos.media, store, db)
	s.media = service.NewMediaService(repos.media, repos.mediaFolder, s.storage, store, db)
	s.rbac = service.NewRBACService(repos.role, repos.permission, repos.user, store, db)
	s.user = service.NewUserService(repos.user, repos.role)
	s.setting = service.NewSettingService(repos.setting, store)
	s.backup = service.NewBackupService(repos.backup, repos.setting, store, cfg, db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		course:      controller.NewCourseController(s.curriculum),
		section:     controller.NewSectionController(s.curriculum),
		lesson:      controller.NewLessonController(s.curriculum),
		media:       controller.NewMediaController(s.media),
		mediaFolder: controller.NewMediaFolderController(s.mediaFolder),
		role:        controller.NewRoleController(s.rbac),
		permission:  controller.NewPermissionController(s.rbac),
		user:        controller.NewUserController(s.user),
		setting:     controller.NewSettingController(s.setting, s.backup),
		backup:      controller.NewBackupController(s.backup),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	cors := security.NewCORSPolicy(cfg.CORS.AllowedOrigins)
	limiter := security.NewIPRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)

	// CORS白名单与限流参数支持热加载
	a.RegisterConfigCallback(func(c *config.Config) {
		cors.SetOrigins(c.CORS.AllowedOrigins)
		limiter.SetLimits(c.RateLimit.MaxRequests, time.Duration(c.RateLimit.WindowMinutes)*time.Minute)
	})

	router.Use(cors.Middleware())
	router.Use(security.Secure())
	router.Use(limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// InitDB 已执行迁移与种子数据
	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时所有读写直达数据库
		logger.Log.Warn("Redis unavailable, cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lms-admin", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	// 定时备份任务
	services.backup.Start()

	// 配置热加载：回调方各自决定哪些字段可在运行中生效
	go configwatcher.WatchConfig("configs/config.yaml", func(reloaded *config.Config) {
		logger.Log.Info("Config reloaded")
		for _, callback := range app.configCallbacks {
			callback(reloaded)
		}
	})

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
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

	// 停掉定时备份
	if a.services != nil && a.services.backup != nil {
		a.services.backup.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
