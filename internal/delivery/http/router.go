package http

import (
	"net/http"

	"garage-booking-service/internal/delivery/http/handler"
	"garage-booking-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	availabilityHandler *handler.AvailabilityHandler
	holdHandler         *handler.HoldHandler
	bookingHandler      *handler.BookingHandler
	documentHandler     *handler.DocumentHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	availabilityHandler *handler.AvailabilityHandler,
	holdHandler *handler.HoldHandler,
	bookingHandler *handler.BookingHandler,
	documentHandler *handler.DocumentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		availabilityHandler: availabilityHandler,
		holdHandler:         holdHandler,
		bookingHandler:      bookingHandler,
		documentHandler:     documentHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Self-service booking flow (public)
	api.HandleFunc("/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/holds", r.holdHandler.CreateHold).Methods(http.MethodPost)
	api.HandleFunc("/holds/{holdId}", r.holdHandler.ReleaseHold).Methods(http.MethodDelete)
	api.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/confirm", r.bookingHandler.ConfirmBooking).Methods(http.MethodPatch)

	// Admin routes (protected - staff and admin)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireStaff)

	// Booking management (admin)
	admin.HandleFunc("/bookings", r.bookingHandler.CreateManualBooking).Methods(http.MethodPost)
	admin.HandleFunc("/bookings", r.bookingHandler.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/history", r.bookingHandler.GetBookingHistory).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", r.bookingHandler.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}/payment-status", r.bookingHandler.UpdatePaymentStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}", r.bookingHandler.DeleteBooking).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{id}/restore", r.bookingHandler.RestoreBooking).Methods(http.MethodPost)

	// Document management (admin)
	admin.HandleFunc("/documents", r.documentHandler.CreateDraft).Methods(http.MethodPost)
	admin.HandleFunc("/documents", r.documentHandler.ListDocuments).Methods(http.MethodGet)
	admin.HandleFunc("/documents/{id}", r.documentHandler.GetDocument).Methods(http.MethodGet)
	admin.HandleFunc("/documents/{id}", r.documentHandler.UpdateDraft).Methods(http.MethodPatch)
	admin.HandleFunc("/documents/{id}", r.documentHandler.DeleteDraft).Methods(http.MethodDelete)
	admin.HandleFunc("/documents/{id}/issue", r.documentHandler.IssueDocument).Methods(http.MethodPost)
	admin.HandleFunc("/documents/{id}/status", r.documentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
