package http

import (
	"net/http"

	"medicore/internal/delivery/http/handler"
	"medicore/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router              *mux.Router
	log                 *logrus.Logger
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	userHandler         *handler.UserHandler
	settingsHandler     *handler.SettingsHandler
	notificationHandler *handler.NotificationHandler
	dashboardHandler    *handler.DashboardHandler
	backupHandler       *handler.BackupHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	userHandler *handler.UserHandler,
	settingsHandler *handler.SettingsHandler,
	notificationHandler *handler.NotificationHandler,
	dashboardHandler *handler.DashboardHandler,
	backupHandler *handler.BackupHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		log:                 log,
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		userHandler:         userHandler,
		settingsHandler:     settingsHandler,
		notificationHandler: notificationHandler,
		dashboardHandler:    dashboardHandler,
		backupHandler:       backupHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func gate(mw func(http.Handler) http.Handler, h http.HandlerFunc) http.Handler {
	return mw(h)
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.backupHandler.Health).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/auth/login", r.authHandler.Login).Methods(http.MethodPost)

	// Everything below needs a valid access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Dashboard and finance
	protected.Handle("/dashboard", gate(middleware.RequireClinical, r.dashboardHandler.GetDashboard)).Methods(http.MethodGet)
	protected.Handle("/finance/summary", gate(middleware.RequireBilling, r.dashboardHandler.GetFinanceSummary)).Methods(http.MethodGet)

	// Appointments; doctor accounts only ever see their own
	protected.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/slots", r.appointmentHandler.AvailableSlots).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.Handle("/appointments", gate(middleware.RequireFrontDesk, r.appointmentHandler.CreateAppointment)).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}", gate(middleware.RequireFrontDesk, r.appointmentHandler.UpdateAppointment)).Methods(http.MethodPut)
	protected.Handle("/appointments/{id}", gate(middleware.RequireFrontDesk, r.appointmentHandler.DeleteAppointment)).Methods(http.MethodDelete)
	protected.Handle("/appointments/{id}/status", gate(middleware.RequireClinical, r.appointmentHandler.ChangeStatus)).Methods(http.MethodPatch)
	protected.Handle("/appointments/{id}/payment", gate(middleware.RequireBilling, r.appointmentHandler.RecordPayment)).Methods(http.MethodPost)

	// Doctors
	protected.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	protected.Handle("/doctors", gate(middleware.RequireAdmin, r.doctorHandler.CreateDoctor)).Methods(http.MethodPost)
	protected.Handle("/doctors/{id}", gate(middleware.RequireAdmin, r.doctorHandler.UpdateDoctor)).Methods(http.MethodPut)
	protected.Handle("/doctors/{id}", gate(middleware.RequireAdmin, r.doctorHandler.DeleteDoctor)).Methods(http.MethodDelete)

	// Patients
	protected.Handle("/patients", gate(middleware.RequireClinical, r.patientHandler.GetAllPatients)).Methods(http.MethodGet)
	protected.Handle("/patients/{id}", gate(middleware.RequireClinical, r.patientHandler.GetPatient)).Methods(http.MethodGet)
	protected.Handle("/patients/{id}/records", gate(middleware.RequireClinical, r.patientHandler.AddMedicalRecord)).Methods(http.MethodPost)
	protected.Handle("/patients", gate(middleware.RequireFrontDesk, r.patientHandler.CreatePatient)).Methods(http.MethodPost)
	protected.Handle("/patients/{id}", gate(middleware.RequireFrontDesk, r.patientHandler.UpdatePatient)).Methods(http.MethodPut)
	protected.Handle("/patients/{id}", gate(middleware.RequireFrontDesk, r.patientHandler.DeletePatient)).Methods(http.MethodDelete)

	// Notifications
	protected.Handle("/notifications", gate(middleware.RequireFrontDesk, r.notificationHandler.GetAllNotifications)).Methods(http.MethodGet)
	protected.Handle("/notifications", gate(middleware.RequireFrontDesk, r.notificationHandler.SendNotification)).Methods(http.MethodPost)

	// Settings
	protected.HandleFunc("/settings", r.settingsHandler.GetSettings).Methods(http.MethodGet)
	protected.Handle("/settings", gate(middleware.RequireAdmin, r.settingsHandler.UpdateSettings)).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// User management (admin)
	admin.HandleFunc("/users", r.userHandler.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)

	// Backup and restore (admin)
	admin.HandleFunc("/backup", r.backupHandler.ExportBackup).Methods(http.MethodGet)
	admin.HandleFunc("/backup", r.backupHandler.ImportBackup).Methods(http.MethodPost)
	admin.HandleFunc("/reset", r.backupHandler.ResetStore).Methods(http.MethodPost)

	// Add logging and CORS middleware
	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
