package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schedulum-app/schedulum/internal/http/middleware"
	"github.com/schedulum-app/schedulum/internal/model"
)

type APIError struct {
	Code    int
	Message string
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiError := h(ctx, user)
		if apiError != nil {
			ctx.JSON(apiError.Code, gin.H{"error": apiError.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiError := h(ctx)
		if apiError != nil {
			ctx.JSON(apiError.Code, gin.H{"error": apiError.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

// Controller wraps a gin group so modules can register resolved endpoints.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFuncWithAuth) {
	c.Group.GET(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) POST(path string, h HandlerFuncWithAuth) {
	c.Group.POST(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) PUT(path string, h HandlerFuncWithAuth) {
	c.Group.PUT(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) DELETE(path string, h HandlerFuncWithAuth) {
	c.Group.DELETE(path, ResolveEndpointWithAuth(h))
}

// PUBLIC_POST registers an endpoint that skips the current-user lookup.
func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.Group.POST(path, ResolveEndpoint(h))
}

// RAW_GET registers a plain gin handler, for responses that are not JSON.
func (c *Controller) RAW_GET(path string, h gin.HandlerFunc) {
	c.Group.GET(path, h)
}
