package main

import (
	"fmt"
	"log"
	"os"

	"naragroomer-backend/config"
	"naragroomer-backend/controllers"
	"naragroomer-backend/models"
	"naragroomer-backend/routes"
	"naragroomer-backend/services"

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
		&models.User{},
		&models.Profile{},
		&models.Pet{},
		&models.Appointment{},
		&models.NotificationLog{},
	)

	// The slot-exclusivity index is partial and created outside AutoMigrate
	if err := config.EnsureSlotIndex(config.DB); err != nil {
		log.Fatalf("Failed to create appointment slot index: %v", err)
	}
}

func main() {
	store := services.NewGormAppointmentStore(config.DB)
	notifier := services.NewNotifier(config.DB, services.NewResendSender())
	appointmentService := services.NewAppointmentService(store, notifier)

	reminderService := services.NewReminderService(store, notifier)
	reminderService.StartScheduler()

	ctrl := routes.Controllers{
		Auth:        &controllers.AuthController{Notifier: notifier},
		Client:      &controllers.ClientController{Notifier: notifier},
		Appointment: &controllers.AppointmentController{Service: appointmentService},
		Reminder:    &controllers.ReminderController{Service: reminderService},
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(ctrl)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
