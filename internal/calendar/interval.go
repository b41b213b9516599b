package calendar

import "booking-calendar/internal/models"

// Interval is a closed range of calendar days: both ends are included.
type Interval struct {
	Start Date
	End   Date
}

func (i Interval) Valid() bool {
	return i.Start != "" && i.End != "" && i.Start <= i.End
}

func (i Interval) Contains(day Date) bool {
	return Contains(day, i.Start, i.End)
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.Start, i.End, o.Start, o.End)
}

// Contains reports start <= day <= end.
func Contains(day, start, end Date) bool {
	return start <= day && day <= end
}

// Overlaps is the only overlap test used anywhere in the service. Touching
// ends count as overlap.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart <= bEnd && aEnd >= bStart
}

// BookingInterval normalises a booking's dates. ok is false when either date
// is absent or malformed; such bookings are left out of every derivation.
func BookingInterval(b models.Booking) (Interval, bool) {
	start, ok := Normalize(b.StartDate)
	if !ok {
		return Interval{}, false
	}
	end, ok := Normalize(b.EndDate)
	if !ok {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// OverlappingBookings returns the bookings whose interval overlaps window,
// keeping input order.
func OverlappingBookings(bookings []models.Booking, window Interval) []models.Booking {
	var out []models.Booking
	for _, b := range bookings {
		iv, ok := BookingInterval(b)
		if !ok {
			continue
		}
		if iv.Overlaps(window) {
			out = append(out, b)
		}
	}
	return out
}
