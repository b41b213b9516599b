package calendar

import "booking-calendar/internal/models"

// Policy decides which booking is surfaced when several bookings of one
// line contain the same day.
type Policy string

// FirstMatch surfaces the earliest booking in input order. Input order is
// the store's fetch order (start_date ascending). Extra candidates are not
// an error; they are counted in Occupancy.Conflicts.
const FirstMatch Policy = "first_match"

// CellConflict records a cell that had more than one candidate booking.
type CellConflict struct {
	LineID     string
	Day        Date
	BookingIDs []string
}

// Occupancy is the per-(line, day) lookup table for a week grid.
type Occupancy struct {
	Policy    Policy
	DayKeys   []Date
	Cells     map[string]map[Date]*models.Booking
	Conflicts []CellConflict
}

// Resolve maps every (line, day) cell onto the booking occupying it. It is a
// pure function of its inputs. bookings are expected to be already filtered.
func Resolve(lines []models.Line, dayKeys []Date, bookings []models.Booking) Occupancy {
	occ := Occupancy{
		Policy:  FirstMatch,
		DayKeys: append([]Date(nil), dayKeys...),
		Cells:   make(map[string]map[Date]*models.Booking, len(lines)),
	}

	byLine := make(map[string][]int)
	intervals := make([]Interval, len(bookings))
	for i, b := range bookings {
		iv, ok := BookingInterval(b)
		if !ok {
			continue
		}
		intervals[i] = iv
		byLine[b.LineID] = append(byLine[b.LineID], i)
	}

	for _, line := range lines {
		row := make(map[Date]*models.Booking, len(dayKeys))
		for _, day := range dayKeys {
			var candidates []string
			for _, idx := range byLine[line.ID] {
				if !intervals[idx].Contains(day) {
					continue
				}
				if row[day] == nil {
					b := bookings[idx]
					row[day] = &b
				}
				candidates = append(candidates, bookings[idx].ID)
			}
			if len(candidates) > 1 {
				occ.Conflicts = append(occ.Conflicts, CellConflict{
					LineID:     line.ID,
					Day:        day,
					BookingIDs: candidates,
				})
			}
		}
		occ.Cells[line.ID] = row
	}

	return occ
}

// Lookup returns the booking occupying (lineID, day).
func (o Occupancy) Lookup(lineID string, day Date) (models.Booking, bool) {
	row, ok := o.Cells[lineID]
	if !ok {
		return models.Booking{}, false
	}
	b := row[day]
	if b == nil {
		return models.Booking{}, false
	}
	return *b, true
}

// ConflictCount is the number of cells with more than one candidate.
func (o Occupancy) ConflictCount() int {
	return len(o.Conflicts)
}

type CellActionKind string

const (
	CellCreate CellActionKind = "create"
	CellEdit   CellActionKind = "edit"
)

// CellAction is what a click on a grid cell should open.
type CellAction struct {
	Kind    CellActionKind
	LineID  string
	Day     Date
	Booking *models.Booking
}

// ResolveCell turns cell coordinates into a create form seeded with the
// line and day, or an edit form seeded with the occupying booking.
func (o Occupancy) ResolveCell(lineID string, day Date) CellAction {
	if b, ok := o.Lookup(lineID, day); ok {
		return CellAction{Kind: CellEdit, LineID: lineID, Day: day, Booking: &b}
	}
	return CellAction{Kind: CellCreate, LineID: lineID, Day: day}
}

// DayCounts is the month-view badge data for a single day.
type DayCounts struct {
	Total    int
	ByCourse map[string]int
}

// CountByDay aggregates, for each day key, how many of the filtered bookings
// contain that day, split by course-type label.
func CountByDay(dayKeys []Date, bookings []models.Booking) map[Date]DayCounts {
	counts := make(map[Date]DayCounts, len(dayKeys))
	for _, day := range dayKeys {
		counts[day] = DayCounts{ByCourse: map[string]int{}}
	}

	for _, b := range bookings {
		iv, ok := BookingInterval(b)
		if !ok {
			continue
		}
		label := courseLabel(b.CourseType)
		for _, day := range dayKeys {
			if !iv.Contains(day) {
				continue
			}
			c := counts[day]
			c.Total++
			c.ByCourse[label]++
			counts[day] = c
		}
	}

	return counts
}
