package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/schedulum-app/schedulum/internal/calendar"
	"github.com/schedulum-app/schedulum/internal/db"
	"github.com/schedulum-app/schedulum/internal/events"
	"github.com/schedulum-app/schedulum/internal/http/api"
	"github.com/schedulum-app/schedulum/internal/http/api/admin/endpoints"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, term calendar.Term, publisher *events.Publisher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		endpoints.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		// session endpoints that require auth
		endpoints.AuthSessionModule(env.SecretKey, store),
		// calendar and schedule modules
		endpoints.CalendarModule(store, term, publisher),
		endpoints.ScheduleModule(store, term, publisher),
		endpoints.ProfileModule(store, term),
	)
}
