package main

import (
	"context"
	"sync"

	"ClinicAdmin/cache"
	"ClinicAdmin/config"
	"ClinicAdmin/controllers"
	"ClinicAdmin/jobs"
	"ClinicAdmin/middleware"
	"ClinicAdmin/migrations"
	"ClinicAdmin/notification"
	"ClinicAdmin/repository"
	"ClinicAdmin/routes"
	"ClinicAdmin/services"

	db "github.com/KanapuramVaishnavi/Core/config/db"
	server "github.com/KanapuramVaishnavi/Core/server"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	startServer = server.Start
	isTest      = false
)

func main() {
	run()
}

// application is built on first use, once the server has connected to Mongo.
type application struct {
	cfg      *config.Config
	database func() *mongo.Database

	once sync.Once
	hub  *notification.Hub
	svc  *services.AdminService
}

func (a *application) service() *services.AdminService {
	a.once.Do(func() {
		a.hub = notification.NewHub()
		a.svc = services.NewAdminService(repository.NewMongoStore(a.database()), a.hub, newCache(a.cfg))
	})
	return a.svc
}

func (a *application) dependencies() routes.Dependencies {
	svc := a.service()
	return routes.Dependencies{
		Admin:     controllers.NewAdminController(svc),
		WebSocket: notification.NewHandler(a.hub, a.cfg.WSBuffer, a.cfg.CORSOrigins, roomAccess(svc)),
	}
}

// roomAccess reads the caller set by JWTAuth: "code" holds the user id.
func roomAccess(svc *services.AdminService) notification.Access {
	return func(c *gin.Context) (notification.RoomPolicy, error) {
		return svc.RoomPolicy(c, c.GetString("code"), c.GetBool("isSuperAdmin"))
	}
}

// The cache shares the Redis connection the server opens for CacheEnabled.
func newCache(cfg *config.Config) cache.Cache {
	if !cfg.CacheEnabled {
		return cache.NoopCache{}
	}
	return cache.NewCoreCache()
}

func run() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Msg("Error in loading the ENV")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error from config.Load")
	}
	zerolog.SetGlobalLevel(cfg.ZerologLevel())

	app := &application{
		cfg:      cfg,
		database: func() *mongo.Database { return db.DB },
	}
	defaultopts := server.GetDefaultOptions()

	options := server.Options{
		CacheEnabled:     cfg.CacheEnabled,
		MongoEnabled:     defaultopts.MongoEnabled,
		WebServerEnabled: defaultopts.WebServerEnabled,
		WebServerPort:    defaultopts.WebServerPort,

		MigrationEnabled: !isTest,
		MigrationHandler: func() {
			if isTest {
				return
			}
			if err := migrations.Run(context.Background(), db.DB); err != nil {
				log.Fatal().Err(err).Msg("Error from migrations.Run")
			}
		},

		JobsEnabled: !isTest,
		JobsHandler: func() {
			if isTest || !cfg.CacheEnabled {
				return
			}
			if _, err := jobs.StartCacheRefresher(cfg.CacheRefreshSpec, app.service()); err != nil {
				log.Error().Err(err).Msg("Error from StartCacheRefresher")
			}
		},

		WebServerPreHandler: func(r *gin.Engine) {
			if isTest {
				return
			}
			r.Use(middleware.Recovery(log.Logger), middleware.Logger(log.Logger))
			r.Use(cors.New(cors.Config{
				AllowOrigins:     cfg.CORSOrigins,
				AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
				ExposeHeaders:    []string{"Content-Disposition"},
				AllowCredentials: true,
			}))
			routes.Routes(r, app.dependencies())
		},
	}
	startServer(options)
}
