package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/appointly/internal/handlers"
	"github.com/thereayou/appointly/internal/middleware"
	"github.com/thereayou/appointly/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	apptH *handlers.AppointmentHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", middleware.AuthMiddleware(jwtMgr, rdb), authH.Logout)
	}

	// API endpoints
	api := r.Group("/", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/users/me", userH.GetMe)
		api.PATCH("/users/me", userH.UpdateMe)
		api.PATCH("/users/me/password", userH.ChangePassword)
		api.PATCH("/users/me/email", userH.ChangeEmail)

		api.POST("/appointments", apptH.CreateAppointment)
		api.GET("/appointments", apptH.GetMyAppointments)
		api.GET("/appointments/:id", apptH.GetAppointment)
		api.PATCH("/appointments/:id", apptH.UpdateAppointment)
		api.POST("/appointments/:id/cancel", apptH.CancelAppointment)
		api.DELETE("/appointments/:id", apptH.DeleteAppointment)
	}

	// Real-time: токен проверяется при handshake
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
