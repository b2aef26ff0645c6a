package main

import (
	"fmt"
	"log"
	"os"

	"cleanbook-backend/config"
	"cleanbook-backend/controllers"
	"cleanbook-backend/models"
	"cleanbook-backend/routes"
	"cleanbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.SubService{},
		&models.OptionVariant{},
		&models.ServiceSubService{},
		&models.Location{},
		&models.Booking{},
		&models.BookingOption{},
		&models.NotificationLog{},
	)

	controllers.InitServices(config.DB)
}

func main() {
	reconciler := services.NewReconciler(controllers.StatsService(), controllers.Notifier())
	reconciler.Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
