package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/smarthealth/scheduling/internal/scheduling"
)

type RouterConfig struct {
	Service *scheduling.Service
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health and metrics
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Appointments
	r.Post("/appointments", createAppointmentHandler(cfg.Service))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Service))
	r.Post("/appointments/{id}/transition", transitionAppointmentHandler(cfg.Service))
	r.Post("/appointments/{id}/reschedule", rescheduleAppointmentHandler(cfg.Service))

	// Shortcut endpoints; same transition coordinator as /transition.
	r.Post("/appointments/{id}/accept", actionHandler(cfg.Service, scheduling.ActionAccept))
	r.Post("/appointments/{id}/reject", actionHandler(cfg.Service, scheduling.ActionReject))
	r.Post("/appointments/{id}/cancel", actionHandler(cfg.Service, scheduling.ActionCancel))
	r.Post("/appointments/{id}/complete", actionHandler(cfg.Service, scheduling.ActionComplete))
	r.Post("/appointments/{id}/start", actionHandler(cfg.Service, scheduling.ActionStart))

	// Listings
	r.Get("/patients/{id}/appointments", listPatientAppointmentsHandler(cfg.Service))
	r.Get("/doctors/{id}/appointments", listDoctorAppointmentsHandler(cfg.Service))

	// Doctor availability and slot ledger
	r.Get("/doctors/{id}/availability", doctorAvailabilityHandler(cfg.Service))
	r.Put("/doctors/{id}/status", setDoctorStatusHandler(cfg.Service))
	r.Get("/doctors/{id}/slots", listDoctorSlotsHandler(cfg.Service))
	r.Post("/doctors/{id}/slots", addDoctorSlotHandler(cfg.Service))
	r.Delete("/doctors/{id}/slots", removeDoctorSlotHandler(cfg.Service))

	return r
}
