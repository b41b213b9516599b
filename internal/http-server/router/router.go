package router

import (
	actionCreate "booking-calendar/internal/http-server/handlers/actions/create"
	actionDelete "booking-calendar/internal/http-server/handlers/actions/delete"
	actionGet "booking-calendar/internal/http-server/handlers/actions/get"
	actionToggle "booking-calendar/internal/http-server/handlers/actions/toggle"
	billingTagCreate "booking-calendar/internal/http-server/handlers/billing_tags/create"
	billingTagDelete "booking-calendar/internal/http-server/handlers/billing_tags/delete"
	billingTagGet "booking-calendar/internal/http-server/handlers/billing_tags/get"
	billingTagUpdate "booking-calendar/internal/http-server/handlers/billing_tags/update"
	bookingCreate "booking-calendar/internal/http-server/handlers/bookings/create"
	bookingDelete "booking-calendar/internal/http-server/handlers/bookings/delete"
	bookingGet "booking-calendar/internal/http-server/handlers/bookings/get"
	bookingHistory "booking-calendar/internal/http-server/handlers/bookings/history"
	bookingUpdate "booking-calendar/internal/http-server/handlers/bookings/update"
	calendarCell "booking-calendar/internal/http-server/handlers/calendar/cell"
	calendarICS "booking-calendar/internal/http-server/handlers/calendar/ics"
	calendarMonth "booking-calendar/internal/http-server/handlers/calendar/month"
	calendarWeek "booking-calendar/internal/http-server/handlers/calendar/week"
	courseTypeCreate "booking-calendar/internal/http-server/handlers/course_types/create"
	courseTypeDelete "booking-calendar/internal/http-server/handlers/course_types/delete"
	courseTypeGet "booking-calendar/internal/http-server/handlers/course_types/get"
	courseTypeUpdate "booking-calendar/internal/http-server/handlers/course_types/update"
	lineCreate "booking-calendar/internal/http-server/handlers/lines/create"
	lineDelete "booking-calendar/internal/http-server/handlers/lines/delete"
	lineGet "booking-calendar/internal/http-server/handlers/lines/get"
	lineImpact "booking-calendar/internal/http-server/handlers/lines/impact"
	lineUpdate "booking-calendar/internal/http-server/handlers/lines/update"
	studentCreate "booking-calendar/internal/http-server/handlers/students/create"
	studentDelete "booking-calendar/internal/http-server/handlers/students/delete"
	studentGet "booking-calendar/internal/http-server/handlers/students/get"
	studentUpdate "booking-calendar/internal/http-server/handlers/students/update"
	"booking-calendar/pkg/middleware/cors"
	"booking-calendar/pkg/middleware/mwLogger"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

// Service is everything the HTTP API needs. *service.Service implements it.
type Service interface {
	lineCreate.LineCreator
	lineGet.LineGetter
	lineUpdate.LineUpdater
	lineDelete.LineDeleter
	lineImpact.ImpactChecker

	studentCreate.StudentCreator
	studentGet.StudentGetter
	studentUpdate.StudentUpdater
	studentDelete.StudentDeleter

	billingTagCreate.BillingTagCreator
	billingTagGet.BillingTagGetter
	billingTagUpdate.BillingTagUpdater
	billingTagDelete.BillingTagDeleter

	courseTypeCreate.CourseTypeCreator
	courseTypeGet.CourseTypeGetter
	courseTypeUpdate.CourseTypeUpdater
	courseTypeDelete.CourseTypeDeleter

	bookingCreate.BookingCreator
	bookingGet.BookingGetter
	bookingUpdate.BookingUpdater
	bookingDelete.BookingDeleter
	bookingHistory.HistoryLister

	actionCreate.ActionCreator
	actionGet.ActionLister
	actionToggle.ActionCompleter
	actionDelete.ActionDeleter

	calendarWeek.WeekViewer
	calendarMonth.MonthViewer
	calendarCell.CellResolver
	calendarICS.FeedRenderer
}

func New(log *slog.Logger, service Service) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.New)

	router.Route("/lines", func(r chi.Router) {
		r.Post("/", lineCreate.New(log, service))
		r.Get("/", lineGet.New(log, service))
		r.Get("/{id}", lineGet.New(log, service))
		r.Put("/{id}", lineUpdate.New(log, service))
		r.Delete("/{id}", lineDelete.New(log, service))
		r.Get("/{id}/impact", lineImpact.New(log, service))
	})

	router.Route("/students", func(r chi.Router) {
		r.Post("/", studentCreate.New(log, service))
		r.Get("/", studentGet.New(log, service))
		r.Get("/{id}", studentGet.New(log, service))
		r.Put("/{id}", studentUpdate.New(log, service))
		r.Delete("/{id}", studentDelete.New(log, service))
	})

	router.Route("/billing_tags", func(r chi.Router) {
		r.Post("/", billingTagCreate.New(log, service))
		r.Get("/", billingTagGet.New(log, service))
		r.Get("/{id}", billingTagGet.New(log, service))
		r.Put("/{id}", billingTagUpdate.New(log, service))
		r.Delete("/{id}", billingTagDelete.New(log, service))
	})

	router.Route("/course_types", func(r chi.Router) {
		r.Post("/", courseTypeCreate.New(log, service))
		r.Get("/", courseTypeGet.New(log, service))
		r.Get("/{id}", courseTypeGet.New(log, service))
		r.Put("/{id}", courseTypeUpdate.New(log, service))
		r.Delete("/{id}", courseTypeDelete.New(log, service))
	})

	router.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingCreate.New(log, service))
		r.Get("/", bookingGet.New(log, service))
		r.Get("/{id}", bookingGet.New(log, service))
		r.Put("/{id}", bookingUpdate.New(log, service))
		r.Delete("/{id}", bookingDelete.New(log, service))
		r.Get("/{id}/history", bookingHistory.New(log, service))
		r.Post("/{id}/actions", actionCreate.New(log, service))
		r.Get("/{id}/actions", actionGet.New(log, service))
	})

	router.Route("/actions", func(r chi.Router) {
		r.Get("/", actionGet.New(log, service))
		r.Put("/{id}/completed", actionToggle.New(log, service))
		r.Delete("/{id}", actionDelete.New(log, service))
	})

	router.Route("/calendar", func(r chi.Router) {
		r.Get("/week", calendarWeek.New(log, service))
		r.Get("/month", calendarMonth.New(log, service))
		r.Get("/cell", calendarCell.New(log, service))
		r.Get("/lines/{id}.ics", calendarICS.New(log, service))
	})

	return router
}
