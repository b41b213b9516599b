package calendar

import (
	"testing"
	"time"

	"booking-calendar/internal/models"
)

func strPtr(s string) *string { return &s }

func TestViewStateNavigation(t *testing.T) {
	now := mustParse(t, "2024-01-03")
	s := NewViewState(now)

	if s.Mode != ViewWeek {
		t.Errorf("Mode = %s, want %s", s.Mode, ViewWeek)
	}
	if got := ToDate(s.WeekStart()); got != "2024-01-01" {
		t.Errorf("WeekStart() = %s, want 2024-01-01", got)
	}
	if got := ToDate(s.WeekEnd()); got != "2024-01-07" {
		t.Errorf("WeekEnd() = %s, want 2024-01-07", got)
	}

	s.GoToNextWeek()
	if got := ToDate(s.WeekStart()); got != "2024-01-08" {
		t.Errorf("after GoToNextWeek WeekStart() = %s, want 2024-01-08", got)
	}
	s.GoToPrevWeek()
	s.GoToPrevWeek()
	if got := ToDate(s.WeekStart()); got != "2023-12-25" {
		t.Errorf("after GoToPrevWeek x2 WeekStart() = %s, want 2023-12-25", got)
	}
	if got := s.DayKeys(); len(got) != 7 || got[0] != "2023-12-25" || got[6] != "2023-12-31" {
		t.Errorf("DayKeys() = %v", got)
	}

	s.GoToToday(now)
	if got := ToDate(s.WeekStart()); got != "2024-01-01" {
		t.Errorf("after GoToToday WeekStart() = %s, want 2024-01-01", got)
	}
}

func TestViewStateMonthCursorIsIndependent(t *testing.T) {
	now := mustParse(t, "2024-01-31")
	s := NewViewState(now)

	s.GoToNextMonth()
	if got := ToDate(s.MonthStart()); got != "2024-02-01" {
		t.Errorf("MonthStart() = %s, want 2024-02-01", got)
	}
	if got := ToDate(s.WeekStart()); got != "2024-01-29" {
		t.Errorf("week cursor moved with month: WeekStart() = %s", got)
	}

	s.GoToPrevMonth()
	s.GoToPrevMonth()
	if got := ToDate(s.MonthStart()); got != "2023-12-01" {
		t.Errorf("MonthStart() = %s, want 2023-12-01", got)
	}
	if got := s.MonthDayKeys(); len(got) != MonthGridSize || got[0] != "2023-11-27" {
		t.Errorf("MonthDayKeys() starts at %v, len %d", got[0], len(got))
	}

	s.GoToCurrentMonth(now)
	if got := ToDate(s.MonthStart()); got != "2024-01-01" {
		t.Errorf("after GoToCurrentMonth MonthStart() = %s, want 2024-01-01", got)
	}
}

func TestViewStateJumpToWeek(t *testing.T) {
	s := NewViewState(mustParse(t, "2024-01-03"))
	s.SetViewMode(ViewMonth)

	s.JumpToWeek(mustParse(t, "2024-02-15"))

	if s.Mode != ViewWeek {
		t.Errorf("Mode = %s, want %s", s.Mode, ViewWeek)
	}
	if got := ToDate(s.WeekStart()); got != "2024-02-12" {
		t.Errorf("WeekStart() = %s, want 2024-02-12", got)
	}
	if got := ToDate(s.MonthStart()); got != "2024-01-01" {
		t.Errorf("JumpToWeek moved the month cursor: %s", got)
	}
}

func TestFiltersMatch(t *testing.T) {
	b := models.Booking{LineID: "L", CourseType: "CFI", BillingTag: strPtr("VA")}
	untagged := models.Booking{LineID: "L", CourseType: "CFI"}

	tests := []struct {
		name    string
		filters Filters
		booking models.Booking
		want    bool
	}{
		{name: "defaults match", filters: DefaultFilters(), booking: b, want: true},
		{name: "line match", filters: Filters{LineID: "L"}, booking: b, want: true},
		{name: "line mismatch", filters: Filters{LineID: "M"}, booking: b, want: false},
		{name: "course mismatch", filters: Filters{LineID: AllLines, CourseType: "CFII"}, booking: b, want: false},
		{name: "billing match", filters: Filters{LineID: AllLines, BillingTag: "VA"}, booking: b, want: true},
		{name: "billing against null", filters: Filters{LineID: AllLines, BillingTag: "VA"}, booking: untagged, want: false},
		{name: "all filters", filters: Filters{LineID: "L", CourseType: "CFI", BillingTag: "VA"}, booking: b, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Match(tt.booking); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewStateFilterSetters(t *testing.T) {
	s := NewViewState(time.Now())
	s.SetFilterLineID("L")
	s.SetFilterCourseType("CFI")
	s.SetFilterBillingTag("VA")
	if s.Filters != (Filters{LineID: "L", CourseType: "CFI", BillingTag: "VA"}) {
		t.Errorf("Filters = %+v", s.Filters)
	}

	s.SetFilterLineID("")
	if s.Filters.LineID != AllLines {
		t.Errorf("SetFilterLineID(\"\") LineID = %q, want %q", s.Filters.LineID, AllLines)
	}

	s.ClearFilters()
	if s.Filters != DefaultFilters() {
		t.Errorf("ClearFilters() left %+v", s.Filters)
	}
}

func TestSnapshotCapacityIgnoresFilters(t *testing.T) {
	s := NewViewState(mustParse(t, "2024-01-03"))
	s.SetFilterLineID("L")

	data := Dataset{
		Lines: []models.Line{{ID: "L", Name: "One"}, {ID: "M", Name: "Two"}},
		CourseTypes: []models.CourseType{
			{Name: "CFI", WeeklyCapacity: intPtr(2)},
		},
		Bookings: []models.Booking{
			{ID: "a", LineID: "L", CourseType: "CFI", StartDate: "2024-01-01", EndDate: "2024-01-02"},
			{ID: "b", LineID: "M", CourseType: "CFI", StartDate: "2024-01-04", EndDate: "2024-01-05", BillingTag: strPtr("VA")},
		},
	}

	v := s.Snapshot(data)

	if len(v.VisibleLines) != 1 || v.VisibleLines[0].ID != "L" {
		t.Errorf("VisibleLines = %+v, want [L]", v.VisibleLines)
	}
	if len(v.Filtered) != 1 || v.Filtered[0].ID != "a" {
		t.Errorf("Filtered = %+v, want [a]", v.Filtered)
	}
	if len(v.Capacity) != 1 || v.Capacity[0].Booked != 2 {
		t.Errorf("Capacity = %+v, want CFI booked=2 across all lines", v.Capacity)
	}
	if _, ok := v.Occupancy.Lookup("L", "2024-01-02"); !ok {
		t.Error("Occupancy missing booking a on 2024-01-02")
	}
	if _, ok := v.Occupancy.Lookup("M", "2024-01-04"); ok {
		t.Error("Occupancy includes a filtered-out line")
	}
	if v.WeekStart != "2024-01-01" || v.WeekEnd != "2024-01-07" {
		t.Errorf("week = %s..%s", v.WeekStart, v.WeekEnd)
	}
	if len(v.BillingTagOptions) != 1 || v.BillingTagOptions[0] != "VA" {
		t.Errorf("BillingTagOptions = %v", v.BillingTagOptions)
	}
	if len(v.CourseTypeOptions) != 1 || v.CourseTypeOptions[0] != "CFI" {
		t.Errorf("CourseTypeOptions = %v", v.CourseTypeOptions)
	}
}

func TestSnapshotMonth(t *testing.T) {
	s := NewViewState(mustParse(t, "2024-03-15"))
	data := Dataset{
		Bookings: []models.Booking{
			{ID: "a", LineID: "L", CourseType: "CFI", StartDate: "2024-02-28", EndDate: "2024-03-01"},
		},
	}

	v := s.Snapshot(data)

	if v.MonthStart != "2024-03-01" {
		t.Errorf("MonthStart = %s, want 2024-03-01", v.MonthStart)
	}
	if len(v.Month) != MonthGridSize {
		t.Fatalf("len(Month) = %d, want %d", len(v.Month), MonthGridSize)
	}
	// 2024-03-01 is a Friday, so the grid opens on Monday 2024-02-26.
	if v.Month[0].Day != "2024-02-26" || v.Month[0].InMonth {
		t.Errorf("Month[0] = %+v", v.Month[0])
	}
	if v.Month[2].Counts.Total != 1 || v.Month[2].Counts.ByCourse["CFI"] != 1 {
		t.Errorf("Month[2] (2024-02-28) = %+v", v.Month[2])
	}
	if !v.Month[4].InMonth || v.Month[4].Counts.Total != 1 {
		t.Errorf("Month[4] (2024-03-01) = %+v", v.Month[4])
	}
	if v.Month[5].Counts.Total != 0 {
		t.Errorf("Month[5] (2024-03-02) = %+v", v.Month[5])
	}
}

func TestCourseChips(t *testing.T) {
	if got := CourseChips(nil); len(got) != len(DefaultCourseChips) {
		t.Errorf("CourseChips(nil) = %v", got)
	}
	got := CourseChips([]models.CourseType{{Name: "A"}, {Name: "B"}})
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("CourseChips() = %v", got)
	}
}
