package http

import (
	"net/http"

	"medimitra-backend/internal/delivery/http/handler"
	"medimitra-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	appointmentHandler *handler.AppointmentHandler
	slotHandler        *handler.AvailabilitySlotHandler
	icuBedHandler      *handler.ICUBedHandler
	ambulanceHandler   *handler.AmbulanceHandler
	auditLogHandler    *handler.AuditLogHandler
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	slotHandler *handler.AvailabilitySlotHandler,
	icuBedHandler *handler.ICUBedHandler,
	ambulanceHandler *handler.AmbulanceHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		appointmentHandler: appointmentHandler,
		slotHandler:        slotHandler,
		icuBedHandler:      icuBedHandler,
		ambulanceHandler:   ambulanceHandler,
		auditLogHandler:    auditLogHandler,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Appointment routes
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.HandleFunc("/book", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/available-slots/{doctorId}", r.appointmentHandler.GetAvailableTimes).Methods(http.MethodGet)
	appointments.HandleFunc("/patient/{patientId}", r.appointmentHandler.GetPatientAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/doctor/{doctorId}", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/upcoming/{role}/{userId}", r.appointmentHandler.GetUpcomingAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)

	// Doctor portal availability slot routes
	slots := api.PathPrefix("/doctor-portal/availability").Subrouter()
	slots.HandleFunc("/slots", r.slotHandler.AddSlot).Methods(http.MethodPost)
	slots.HandleFunc("/slots/{id}", r.slotHandler.UpdateSlot).Methods(http.MethodPut)
	slots.HandleFunc("/slots/{id}", r.slotHandler.DeleteSlot).Methods(http.MethodDelete)
	slots.HandleFunc("/doctors/{doctorId}/slots", r.slotHandler.GetDoctorSlots).Methods(http.MethodGet)
	slots.HandleFunc("/doctors/{doctorId}/open-slots", r.slotHandler.GetOpenSlots).Methods(http.MethodGet)

	// ICU bed routes
	icuBeds := api.PathPrefix("/icu-beds").Subrouter()
	icuBeds.HandleFunc("/reserve", r.icuBedHandler.ReserveBed).Methods(http.MethodPost)
	icuBeds.HandleFunc("/occupy", r.icuBedHandler.OccupyBed).Methods(http.MethodPost)
	icuBeds.HandleFunc("/available", r.icuBedHandler.GetAvailableBeds).Methods(http.MethodGet)
	icuBeds.HandleFunc("/hospitals", r.icuBedHandler.GetHospitals).Methods(http.MethodGet)
	icuBeds.HandleFunc("/types", r.icuBedHandler.GetICUTypes).Methods(http.MethodGet)
	icuBeds.HandleFunc("/stats", r.icuBedHandler.GetStats).Methods(http.MethodGet)
	icuBeds.HandleFunc("/patient/{patientId}", r.icuBedHandler.GetPatientBeds).Methods(http.MethodGet)
	icuBeds.HandleFunc("/{id}", r.icuBedHandler.GetBed).Methods(http.MethodGet)
	icuBeds.HandleFunc("/{id}/release", r.icuBedHandler.ReleaseBed).Methods(http.MethodPost)
	icuBeds.HandleFunc("/{id}/maintenance", r.icuBedHandler.SetMaintenance).Methods(http.MethodPost)

	// Ambulance routes
	ambulance := api.PathPrefix("/ambulance").Subrouter()
	ambulance.HandleFunc("/book", r.ambulanceHandler.RequestBooking).Methods(http.MethodPost)
	ambulance.HandleFunc("/active", r.ambulanceHandler.GetActiveBookings).Methods(http.MethodGet)
	ambulance.HandleFunc("/stats", r.ambulanceHandler.GetStats).Methods(http.MethodGet)
	ambulance.HandleFunc("/patient/{patientId}", r.ambulanceHandler.GetPatientBookings).Methods(http.MethodGet)
	ambulance.HandleFunc("/{id}", r.ambulanceHandler.GetBooking).Methods(http.MethodGet)
	ambulance.HandleFunc("/{id}/dispatch", r.ambulanceHandler.Dispatch).Methods(http.MethodPost)
	ambulance.HandleFunc("/{id}/en-route", r.ambulanceHandler.MarkEnRoute).Methods(http.MethodPost)
	ambulance.HandleFunc("/{id}/arrived", r.ambulanceHandler.MarkArrived).Methods(http.MethodPost)
	ambulance.HandleFunc("/{id}/complete", r.ambulanceHandler.Complete).Methods(http.MethodPost)
	ambulance.HandleFunc("/{id}/cancel", r.ambulanceHandler.Cancel).Methods(http.MethodPost)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetRecentAuditLogs).Methods(http.MethodGet)

	// Global middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
