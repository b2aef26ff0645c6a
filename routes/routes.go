package routes

import (
	"os"
	"strings"

	"cleanbook-backend/config"
	"cleanbook-backend/controllers"
	"cleanbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Public booking form endpoints
	public := r.Group("/public")
	{
		public.GET("/services", controllers.GetPublicServices)
		public.GET("/service-area", controllers.CheckServiceArea)
		public.POST("/quote", controllers.QuoteBooking)
		public.POST("/bookings", controllers.CreateBooking)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.POST("/:id/recalculate", controllers.RecalculateClientStats)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Sub-service routes
		subServices := api.Group("/sub-services")
		{
			subServices.POST("", controllers.CreateSubService)
			subServices.GET("", controllers.GetSubServices)
			subServices.GET("/:id", controllers.GetSubService)
			subServices.PUT("/:id", controllers.UpdateSubService)
			subServices.DELETE("/:id", controllers.DeleteSubService)
		}

		// Location routes
		locations := api.Group("/locations")
		{
			locations.POST("", controllers.CreateLocation)
			locations.GET("", controllers.GetLocations)
			locations.GET("/:id", controllers.GetLocation)
			locations.PUT("/:id", controllers.UpdateLocation)
			locations.DELETE("/:id", controllers.DeleteLocation)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PUT("/:id", controllers.UpdateBooking)
			bookings.DELETE("/:id", controllers.DeleteBooking)
			bookings.POST("/bulk", controllers.BulkBookingAction)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Business profile routes (owner only)
		profile := api.Group("/profile", utils.OwnerOnly())
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/working-hours", controllers.UpdateWorkingHours)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}

		// Employee routes (owner only)
		employees := api.Group("/employees", utils.OwnerOnly())
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}
	}

	return r
}
