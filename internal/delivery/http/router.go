package http

import (
	"net/http"

	"github.com/azzbr/handyman-backend/internal/delivery/http/handler"
	"github.com/azzbr/handyman-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	bookingHandler    *handler.BookingHandler
	reviewHandler     *handler.ReviewHandler
	serviceHandler    *handler.ServiceHandler
	technicianHandler *handler.TechnicianHandler
	auditLogHandler   *handler.AuditLogHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	reviewHandler *handler.ReviewHandler,
	serviceHandler *handler.ServiceHandler,
	technicianHandler *handler.TechnicianHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		bookingHandler:    bookingHandler,
		reviewHandler:     reviewHandler,
		serviceHandler:    serviceHandler,
		technicianHandler: technicianHandler,
		auditLogHandler:   auditLogHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/client", r.authHandler.RegisterClient).Methods(http.MethodPost)
	auth.HandleFunc("/register/technician", r.authHandler.RegisterTechnician).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public catalog and directory
	api.HandleFunc("/services", r.serviceHandler.GetActiveServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", r.serviceHandler.GetService).Methods(http.MethodGet)
	api.HandleFunc("/technicians", r.technicianHandler.GetAllTechnicians).Methods(http.MethodGet)
	api.HandleFunc("/technicians/{id}", r.technicianHandler.GetTechnician).Methods(http.MethodGet)

	// Public reviews (read, plus unauthenticated submission held for moderation)
	api.HandleFunc("/reviews", r.reviewHandler.ListPublished).Methods(http.MethodGet)
	api.HandleFunc("/reviews", r.reviewHandler.SubmitPublicReview).Methods(http.MethodPost)

	// Booking routes (protected)
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.Handle("", middleware.RequireClient(http.HandlerFunc(r.bookingHandler.GetMyBookings))).Methods(http.MethodGet)
	bookings.Handle("/assigned", middleware.RequireTechnician(http.HandlerFunc(r.bookingHandler.GetAssignedBookings))).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPatch)
	bookings.Handle("/{id}/complete", middleware.RequireAdminOrTechnician(http.HandlerFunc(r.bookingHandler.CompleteBooking))).Methods(http.MethodPatch)
	bookings.HandleFunc("/{id}/review", r.reviewHandler.SubmitReview).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Booking oversight (admin)
	admin.HandleFunc("/bookings", r.bookingHandler.AdminListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", r.bookingHandler.AdminUpdateStatus).Methods(http.MethodPatch)

	// Review moderation (admin)
	admin.HandleFunc("/reviews/moderate", r.reviewHandler.ModerateReview).Methods(http.MethodPost)

	// Service catalog management (admin)
	admin.HandleFunc("/services", r.serviceHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services", r.serviceHandler.GetAllServices).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.DeleteService).Methods(http.MethodDelete)
	admin.HandleFunc("/services/{id}/pricing-options", r.serviceHandler.AddPricingOption).Methods(http.MethodPost)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
