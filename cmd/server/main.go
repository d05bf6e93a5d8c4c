package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hospital-management-backend/internal/config"
	"hospital-management-backend/internal/database"
	"hospital-management-backend/internal/handler"
	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// 3. Initialize the entity stores
	var (
		hospitalRepo      repository.HospitalRepository
		userRepo          repository.UserRepository
		appointmentRepo   repository.AppointmentRepository
		medicalRecordRepo repository.MedicalRecordRepository
		auditRepo         repository.AuditRepository
	)
	switch cfg.Storage.Driver {
	case "mysql":
		db := database.Connect(cfg)
		database.Migrate(db)
		hospitalRepo = repository.NewHospitalRepo(db)
		userRepo = repository.NewUserRepo(db)
		appointmentRepo = repository.NewAppointmentRepo(db)
		medicalRecordRepo = repository.NewMedicalRecordRepo(db)
		auditRepo = repository.NewAuditRepo(db)
	default:
		log.Println("Using in-memory storage; data will not survive a restart")
		hospitalRepo = repository.NewMemoryHospitalRepo()
		userRepo = repository.NewMemoryUserRepo()
		appointmentRepo = repository.NewMemoryAppointmentRepo()
		medicalRecordRepo = repository.NewMemoryMedicalRecordRepo()
		auditRepo = repository.NewMemoryAuditRepo()
	}

	// 4. Initialize services
	accessService := service.NewAccessService(userRepo)
	availabilityService := service.NewAvailabilityService(appointmentRepo, cfg.Clinic)
	hospitalService := service.NewHospitalService(hospitalRepo, auditRepo)
	userService := service.NewUserService(userRepo, hospitalRepo, auditRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo, hospitalRepo, medicalRecordRepo, auditRepo, availabilityService)
	medicalRecordService := service.NewMedicalRecordService(medicalRecordRepo, appointmentRepo, userRepo, hospitalRepo, auditRepo)
	auditService := service.NewAuditService(auditRepo)

	// 5. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 6. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 7. Register handlers
	hospitalHandler := handler.NewHospitalHandler(hospitalService, accessService)
	userHandler := handler.NewUserHandler(userService, accessService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, accessService)
	medicalRecordHandler := handler.NewMedicalRecordHandler(medicalRecordService, accessService)
	auditHandler := handler.NewAuditHandler(auditService, accessService)

	// 8. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-management-backend",
		})
	})

	// Public hospital directory (the registration form needs it)
	r.GET("/hospitals", hospitalHandler.GetAllHospitals)
	r.GET("/hospitals/:id", hospitalHandler.GetHospital)

	// Authenticated routes
	api := r.Group("/")
	api.Use(middleware.AuthMiddleware())
	{
		hospitals := api.Group("/hospitals")
		{
			hospitals.POST("", hospitalHandler.CreateHospital)
			hospitals.PUT("/:id", hospitalHandler.UpdateHospital)
			hospitals.GET("/:id/specializations", userHandler.GetSpecializations)
			hospitals.GET("/:id/doctors", userHandler.GetDoctors)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.GET("/registered", userHandler.IsRegistered)
			users.GET("/me", userHandler.GetProfile)
			users.PUT("/me/schedules", userHandler.UpdateSchedules)
			users.GET("", userHandler.GetAllUsers)
			users.GET("/unverified", userHandler.GetUnverifiedUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("/:id/review", userHandler.ReviewUser)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentHandler.CreateAppointment)
			appointments.GET("", appointmentHandler.GetAllAppointments)
			appointments.GET("/me/upcoming", appointmentHandler.GetUpcomingCallerAppointments)
			appointments.GET("/me/past", appointmentHandler.GetPastCallerAppointments)
			appointments.GET("/doctor/:id", appointmentHandler.GetUpcomingDoctorAppointments)
			appointments.GET("/:id", appointmentHandler.GetAppointment)
			appointments.DELETE("/:id", appointmentHandler.DeleteAppointment)
			appointments.POST("/:id/review", appointmentHandler.ReviewAppointment)
		}

		records := api.Group("/medical-records")
		{
			records.GET("", medicalRecordHandler.GetAllMedicalRecords)
			records.GET("/me", medicalRecordHandler.GetCallerMedicalRecords)
			records.GET("/patient/:id", medicalRecordHandler.GetPatientMedicalRecords)
			records.GET("/queue/doctor", medicalRecordHandler.GetUncompletedByDoctor)
			records.GET("/queue/nurse", medicalRecordHandler.GetUncompletedByNurse)
			records.GET("/:id", medicalRecordHandler.GetMedicalRecord)
			records.PUT("/:id", medicalRecordHandler.UpdateMedicalRecord)
		}

		api.GET("/audit-logs", auditHandler.GetAuditLogs)
	}

	// 9. Start server with graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
