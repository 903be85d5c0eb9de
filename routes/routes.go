package routes

import (
	"chucks-kitchen-api/handlers"
	"chucks-kitchen-api/middleware"
	"chucks-kitchen-api/session"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, store *session.Store) {
	withSession := middleware.WithSession(store)

	// ── Public routes (session for the cart, no login needed) ──────
	public := r.Group("/api")
	public.Use(withSession)
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/verify", handlers.VerifyAccount)
		public.POST("/auth/resend-otp", handlers.ResendOTP)
		public.POST("/auth/login", handlers.Login)
		public.POST("/auth/logout", handlers.Logout)

		// Menu browsing
		public.GET("/foods", handlers.ListFoods)
		public.GET("/foods/:id", handlers.GetFood)
		public.GET("/categories", handlers.ListCategories)

		// Cart
		public.GET("/cart", handlers.ViewCart)
		public.POST("/cart/add", handlers.AddToCart)
		public.DELETE("/cart/remove/:food_id", handlers.RemoveFromCart)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(withSession, middleware.AuthRequired())
	{
		auth.GET("/auth/profile", handlers.GetProfile)
		auth.POST("/cart/checkout", handlers.Checkout)
		auth.GET("/orders/my-orders", handlers.GetMyOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.POST("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(withSession, middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/foods", handlers.CreateFood)
		admin.PATCH("/foods/:id", handlers.UpdateFood)
		admin.POST("/categories", handlers.CreateCategory)
		admin.GET("/orders", handlers.AdminListOrders)
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus)
	}
}
