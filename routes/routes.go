package routes

import (
	"net/http"
	"time"

	userRepo "roomly/database/repository/user"
	"roomly/handlers"
	"roomly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Bundle collects the handlers and repositories the route tree needs.
type Bundle struct {
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Rooms       *handlers.RoomHandler
	Bookings    *handlers.BookingHandler
	Suggestions *handlers.SuggestionHandler
	UserRepo    userRepo.UserRepository
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, b *Bundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, b.Auth)
	RegisterUserRoutes(r, b.Users, b.UserRepo)
	RegisterRoomRoutes(r, b.Rooms, b.Bookings, b.UserRepo)
	RegisterBookingRoutes(r, b.Bookings, b.UserRepo)
	RegisterSuggestionRoutes(r, b.Suggestions, b.UserRepo)
}

func RegisterHealthRoute(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterAuthRoutes wires the public auth surface.
func RegisterAuthRoutes(router *gin.Engine, h *handlers.AuthHandler) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

// RegisterUserRoutes wires the authenticated profile surface.
func RegisterUserRoutes(router *gin.Engine, h *handlers.UserHandler, users userRepo.UserRepository) {
	grp := router.Group("/api/users")
	grp.Use(middleware.JWTAuthMiddleware(users))
	{
		grp.GET("/me", h.Me)
		grp.PUT("/me", h.UpdateMe)
		grp.GET("", middleware.ManagerOnly(), h.ListUsers)
	}
}

// RegisterRoomRoutes wires the room catalog, including per-room schedules
// and the slot availability probe.
func RegisterRoomRoutes(router *gin.Engine, h *handlers.RoomHandler, bh *handlers.BookingHandler, users userRepo.UserRepository) {
	grp := router.Group("/api/rooms")
	grp.Use(middleware.JWTAuthMiddleware(users))
	{
		grp.GET("", h.ListRooms)
		grp.GET("/:id", h.GetRoom)
		grp.GET("/:id/bookings", bh.RoomBookings)
		grp.GET("/:id/availability", bh.CheckAvailability)

		admin := grp.Group("")
		admin.Use(middleware.ManagerOnly())
		{
			admin.POST("", h.CreateRoom)
			admin.PUT("/:id", h.UpdateRoom)
			admin.DELETE("/:id", h.DeleteRoom)
		}
	}
}

// RegisterBookingRoutes wires the booking lifecycle plus the manager
// approval queue.
func RegisterBookingRoutes(router *gin.Engine, h *handlers.BookingHandler, users userRepo.UserRepository) {
	grp := router.Group("/api/bookings")
	grp.Use(middleware.JWTAuthMiddleware(users))
	{
		grp.POST("", h.Create)
		grp.GET("/mine", h.MyBookings)
		grp.GET("/:id", h.Get)
		grp.PUT("/:id", h.Update)
		grp.POST("/:id/cancel", h.Cancel)
		grp.DELETE("/:id", h.Delete)

		manager := grp.Group("")
		manager.Use(middleware.ManagerOnly())
		{
			manager.GET("/pending", h.Pending)
			manager.GET("/pending/count", h.PendingCount)
			manager.POST("/:id/approve", h.Approve)
			manager.POST("/:id/reject", h.Reject)
		}
	}
}

// RegisterSuggestionRoutes wires the AI-assisted planning surface.
func RegisterSuggestionRoutes(router *gin.Engine, h *handlers.SuggestionHandler, users userRepo.UserRepository) {
	grp := router.Group("/api/suggestions")
	grp.Use(middleware.JWTAuthMiddleware(users))
	{
		grp.POST("", h.Suggest)
		grp.POST("/confirm", h.ConfirmBulk)
	}
}
