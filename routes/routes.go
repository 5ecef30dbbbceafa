package routes

import (
	"os"
	"strings"

	"naragroomer-backend/config"
	"naragroomer-backend/controllers"
	"naragroomer-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Client      *controllers.ClientController
	Appointment *controllers.AppointmentController
	Reminder    *controllers.ReminderController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Pet photos are served back from the same path stored on the pet row
	r.Static("/uploads", uploadDir())

	auth := r.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/reset-password", ctrl.Auth.ResetPassword)
		auth.POST("/change-password", ctrl.Auth.ChangePassword)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", ctrl.Auth.Me)
	}

	// Public confirmation deep link; the signed token is the credential
	r.GET("/confirm-appointment", ctrl.Appointment.ConfirmAppointment)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client profile routes
		clients := api.Group("/clients")
		{
			clients.POST("", ctrl.Client.CreateClient)
			clients.GET("", utils.AdminOnly(), ctrl.Client.GetClients)
			clients.GET("/:id", ctrl.Client.GetClient)
			clients.PUT("/:id", ctrl.Client.UpdateClient)
			clients.DELETE("/:id", utils.AdminOnly(), ctrl.Client.DeleteClient)
		}

		// Pet routes
		pets := api.Group("/pets")
		{
			pets.POST("", controllers.CreatePet)
			pets.GET("", controllers.GetPets)
			pets.GET("/:id", controllers.GetPet)
			pets.PUT("/:id", controllers.UpdatePet)
			pets.DELETE("/:id", controllers.DeletePet)
			pets.POST("/:id/photo", controllers.UploadPetPhoto)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", ctrl.Appointment.CreateAppointment)
			appointments.GET("", ctrl.Appointment.GetAppointments)
			appointments.GET("/:id", ctrl.Appointment.GetAppointment)
			appointments.PUT("/:id/reschedule", ctrl.Appointment.RescheduleAppointment)
			appointments.POST("/:id/start", ctrl.Appointment.StartAppointment)
			appointments.POST("/:id/complete", ctrl.Appointment.CompleteAppointment)
			appointments.POST("/:id/cancel", ctrl.Appointment.CancelAppointment)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Reminder sweep trigger
		api.POST("/reminders/run", utils.AdminOnly(), ctrl.Reminder.RunReminderSweep)
	}

	return r
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}
