package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/cache"
	"github.com/schedulum-app/schedulum/internal/config"
	"github.com/schedulum-app/schedulum/internal/db"
	"github.com/schedulum-app/schedulum/internal/events"
	"github.com/schedulum-app/schedulum/internal/jobs"
)

func main() {
	env := LoadEnvironment()

	if env.Environment == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}
	store := db.NewStore(db.DB)

	term, err := config.LoadTerm(env.TermConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", env.TermConfigPath).Msg("failed to load term config")
	}

	// digest cache is optional, handlers fall back to the database
	cache.Init(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	var publisher *events.Publisher
	if env.MQTTBrokerURL != "" {
		publisher, err = events.Connect(env.MQTTBrokerURL)
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt connect failed")
		}
		defer publisher.Close()
	}

	runner := jobs.NewRunner()
	if err := runner.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start background jobs")
	}
	defer runner.Stop()

	// set up gin router
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	RegisterRoutes(r, env, store, term, publisher)

	log.Info().Str("address", env.ServerAddress).Msg("server listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
