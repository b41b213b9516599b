// Package ics renders line bookings as an iCalendar feed.
package ics

import (
	"fmt"
	"time"

	"booking-calendar/internal/calendar"
	"booking-calendar/internal/models"

	ical "github.com/arran4/golang-ical"
)

const productID = "-//booking-calendar//lines//EN"

// Export writes one all-day VEVENT per booking. Bookings are closed date
// ranges while DTEND is exclusive, so DTEND is the day after end_date.
// Bookings with an absent or malformed date are left out.
func Export(line models.Line, bookings []models.Booking, stamp time.Time) ([]byte, error) {
	const op = "ics.Export"

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(line.Name)

	for _, b := range bookings {
		iv, ok := calendar.BookingInterval(b)
		if !ok || !iv.Valid() {
			continue
		}

		start, err := iv.Start.Time()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		end, err := iv.End.AddDays(1).Time()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		event := cal.AddEvent(UID(b.ID))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end)
		event.SetSummary(summary(b))
		if b.Note != nil && *b.Note != "" {
			event.SetDescription(*b.Note)
		}
		if tag := b.BillingTagValue(); tag != "" {
			event.SetProperty(ical.ComponentPropertyCategories, tag)
		}
		if !b.UpdatedAt.IsZero() {
			event.SetLastModifiedAt(b.UpdatedAt.UTC())
		}
	}

	return []byte(cal.Serialize()), nil
}

func UID(bookingID string) string {
	return bookingID + "@booking-calendar"
}

func summary(b models.Booking) string {
	courseType := b.CourseType
	if courseType == "" {
		courseType = calendar.DefaultCourseLabel
	}
	return fmt.Sprintf("%s: %s", courseType, b.StudentID)
}
