package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/device"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/handler/http/middleware"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService        jwt.Service
	DeviceRepo        device.DeviceRepository
	ScheduleHandler   ScheduleHandler
	AttendanceHandler AttendanceHandler
	EmployeeHandler   EmployeeHandler
	ShiftHandler      ShiftHandler
	AllowedOrigins    []string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftcore"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-Serial", "X-Device-Key"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Punch terminals authenticate with their device key, not JWT.
		r.Route("/punches", func(r chi.Router) {
			r.Use(middleware.DeviceKeyRequired(deps.DeviceRepo))
			r.Post("/", deps.AttendanceHandler.IngestPunches)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", deps.EmployeeHandler.ListEmployees)
				r.Get("/by-schedule-state", deps.ScheduleHandler.ListEmployeesByScheduleState)

				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", deps.EmployeeHandler.GetEmployee)
					r.Get("/schedule", deps.ScheduleHandler.ResolveSchedule)
					r.Get("/schedule/history", deps.ScheduleHandler.GetScheduleHistory)
					r.Get("/attendance", deps.AttendanceHandler.GetAttendanceReport)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", deps.ShiftHandler.ListShifts)
				r.Get("/{id}", deps.ShiftHandler.GetShift)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Post("/assign", deps.ScheduleHandler.AssignSchedules)
			})
		})
	})
	return r
}
