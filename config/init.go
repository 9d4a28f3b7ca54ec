package config

import (
	"context"
	"fmt"
	"log"

	"hotelbooking/jobs"
	middlewares "hotelbooking/middleware"
	"hotelbooking/routes"
	"hotelbooking/services"
	"hotelbooking/services/hotelapi"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
	"hotelbooking/utils"
	"hotelbooking/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// App các thành phần đã khởi tạo, Close giải phóng theo thứ tự ngược
type App struct {
	Settings Settings
	Router   *gin.Engine
	Melody   *melody.Melody
	Cron     *cron.Cron
	Logger   logger.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	closers  []func()
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func InitApp(ctx context.Context) (*App, error) {
	LoadEnv()
	s := LoadSettings()
	app := &App{Settings: s}

	w, closeLog, err := utils.LogWriter(s.LogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open log dir: %v", err)
	}
	app.closers = append(app.closers, func() { _ = closeLog() })
	app.Logger = logger.NewLoggerTo(w, logger.ParseLevel(s.LogLevel))

	if err := validator.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %v", err)
	}

	if err := initComponents(ctx, app); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	loc := s.Location()
	m := melody.New()
	notification.BindSession(m)
	app.Melody = m
	app.closers = append(app.closers, func() { _ = m.Close() })

	journal := services.NewSubmissionJournal(app.DB, app.Logger)
	if err := journal.Migrate(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate journal: %v", err)
	}

	opts := services.BookingFacadeOptions{
		API: hotelapi.NewClient(s.HotelAPIURL, s.HotelAPITimeout,
			hotelapi.WithLocation(loc),
			hotelapi.WithLogger(app.Logger)),
		Redis:    app.Redis,
		LockTTL:  services.LockTTLFor(s.HotelAPITimeout),
		Journal:  journal,
		Notifier: notification.NewMelodyService(m),
		Logger:   app.Logger,
		Location: loc,
	}
	if s.RabbitMQURL != "" {
		publisher, err := notification.NewAMQPPublisher(s.RabbitMQURL, app.Logger)
		if err != nil {
			app.Logger.Warn("RabbitMQ không khả dụng, bỏ qua sự kiện đặt phòng: %v", err)
		} else {
			opts.Publisher = publisher
			app.closers = append(app.closers, publisher.Close)
		}
	}
	facade := services.NewBookingFacade(opts)

	app.Router = newRouter(s, app.Logger)
	routes.SetupRoutes(app.Router, routes.Dependencies{
		Facade:   facade,
		Journal:  journal,
		Uploader: services.NewCloudinaryUploader(ConnectCloudinary(s.CloudinaryURL)),
		Notifier: opts.Notifier,
		Melody:   m,
		Logger:   app.Logger,
	})

	app.Cron = cron.New(cron.WithLocation(loc))
	if app.Redis != nil {
		jobs.SetCachePurger(services.NewRedisPurger(app.Redis))
	}
	return app, nil
}

func newRouter(s Settings, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middlewares.HeaderSessionID, middlewares.HeaderRequestID)
	configCors.AddExposeHeaders(middlewares.HeaderSessionID, middlewares.HeaderRequestID)
	configCors.AllowCredentials = true
	if len(s.CORSOrigins) > 0 {
		configCors.AllowOrigins = s.CORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)
	router.Use(
		middlewares.RequestID(),
		middlewares.SessionMiddleware(),
		middlewares.AccessLog(log),
		middlewares.ErrorHandler(),
	)
	return router
}

func initComponents(ctx context.Context, app *App) error {
	db, err := ConnectDB(app.Settings)
	if err != nil {
		return err
	}
	if db != nil {
		app.DB = db
		app.closers = append(app.closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
	}

	rdb, err := ConnectRedis(ctx, app.Settings)
	if err != nil {
		app.Logger.Warn("Redis không khả dụng, chạy không có cache: %v", err)
	} else if rdb != nil {
		app.Redis = rdb
		app.closers = append(app.closers, func() { _ = rdb.Close() })
	}

	log.Println("All components initialized successfully")
	return nil
}

// InitCronJobs khởi động job nửa đêm
func InitCronJobs(app *App) error {
	if err := jobs.InitCronJobs(app.Cron, app.Logger); err != nil {
		return fmt.Errorf("failed to initialize cron jobs: %v", err)
	}
	app.closers = append(app.closers, func() { app.Cron.Stop() })
	return nil
}
