package calendar

import (
	"sort"
	"time"

	"booking-calendar/internal/models"
)

type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// AllLines is the line filter value that matches every line.
const AllLines = "all"

// DefaultCourseChips are offered when no course types have been configured.
var DefaultCourseChips = []string{
	"CFI Initial – 10 Day",
	"CFII – 7 Day",
	"Instrument Finish-Up",
	"Commercial Finish-Up",
	"10-Day",
}

type Filters struct {
	LineID     string
	CourseType string
	BillingTag string
}

func DefaultFilters() Filters {
	return Filters{LineID: AllLines}
}

// Match reports whether b passes every active filter. An empty course type or
// billing tag filter matches anything; a null billing tag compares as "".
func (f Filters) Match(b models.Booking) bool {
	if f.LineID != "" && f.LineID != AllLines && b.LineID != f.LineID {
		return false
	}
	if f.CourseType != "" && b.CourseType != f.CourseType {
		return false
	}
	if f.BillingTag != "" && b.BillingTagValue() != f.BillingTag {
		return false
	}
	return true
}

func (f Filters) MatchLine(l models.Line) bool {
	return f.LineID == "" || f.LineID == AllLines || l.ID == f.LineID
}

func (f Filters) Apply(bookings []models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// ViewState is the navigation cursor and filter set of one calendar view.
// The week and month cursors move independently. Every derived value is
// computed from the cursors on demand.
type ViewState struct {
	Mode          ViewMode
	WeekBaseDate  time.Time
	MonthBaseDate time.Time
	Filters       Filters
}

func NewViewState(now time.Time) *ViewState {
	return &ViewState{
		Mode:          ViewWeek,
		WeekBaseDate:  now,
		MonthBaseDate: now,
		Filters:       DefaultFilters(),
	}
}

func (s *ViewState) SetViewMode(mode ViewMode) {
	s.Mode = mode
}

func (s *ViewState) GoToPrevWeek() {
	s.WeekBaseDate = AddDays(s.WeekBaseDate, -WeekLength)
}

func (s *ViewState) GoToNextWeek() {
	s.WeekBaseDate = AddDays(s.WeekBaseDate, WeekLength)
}

func (s *ViewState) GoToToday(now time.Time) {
	s.WeekBaseDate = now
}

func (s *ViewState) GoToPrevMonth() {
	s.MonthBaseDate = AddMonths(s.MonthBaseDate, -1)
}

func (s *ViewState) GoToNextMonth() {
	s.MonthBaseDate = AddMonths(s.MonthBaseDate, 1)
}

func (s *ViewState) GoToCurrentMonth(now time.Time) {
	s.MonthBaseDate = now
}

// JumpToWeek is the only transition that crosses modes: it moves the week
// cursor to t and switches to the week view.
func (s *ViewState) JumpToWeek(t time.Time) {
	s.WeekBaseDate = t
	s.Mode = ViewWeek
}

func (s *ViewState) SetFilterLineID(id string) {
	if id == "" {
		id = AllLines
	}
	s.Filters.LineID = id
}

func (s *ViewState) SetFilterCourseType(courseType string) {
	s.Filters.CourseType = courseType
}

func (s *ViewState) SetFilterBillingTag(tag string) {
	s.Filters.BillingTag = tag
}

func (s *ViewState) ClearFilters() {
	s.Filters = DefaultFilters()
}

func (s *ViewState) WeekStart() time.Time {
	return StartOfWeek(s.WeekBaseDate)
}

func (s *ViewState) WeekEnd() time.Time {
	return AddDays(s.WeekStart(), WeekLength-1)
}

func (s *ViewState) Days() []time.Time {
	return WeekDays(s.WeekStart())
}

func (s *ViewState) DayKeys() []Date {
	return Keys(s.Days())
}

func (s *ViewState) MonthStart() time.Time {
	return StartOfMonth(s.MonthBaseDate)
}

func (s *ViewState) MonthDays() []time.Time {
	return MonthGridDays(s.MonthStart())
}

func (s *ViewState) MonthDayKeys() []Date {
	return Keys(s.MonthDays())
}

// Dataset is everything fetched from the store for one render.
type Dataset struct {
	Bookings    []models.Booking
	Lines       []models.Line
	CourseTypes []models.CourseType
}

type MonthDay struct {
	Day     Date
	InMonth bool
	Counts  DayCounts
}

// View is the read-only data handed to the presentation layer.
type View struct {
	Mode              ViewMode
	WeekStart         Date
	WeekEnd           Date
	DayKeys           []Date
	MonthStart        Date
	Month             []MonthDay
	VisibleLines      []models.Line
	Filtered          []models.Booking
	Occupancy         Occupancy
	Capacity          []CapacityItem
	CourseTypeOptions []string
	BillingTagOptions []string
	CourseChips       []string
}

// Snapshot derives the full view from data. Occupancy and month counts use
// the filtered bookings. Capacity deliberately uses all bookings, so badges
// reflect true occupancy whatever the user is filtering on.
func (s *ViewState) Snapshot(data Dataset) View {
	filtered := s.Filters.Apply(data.Bookings)

	visible := make([]models.Line, 0, len(data.Lines))
	for _, l := range data.Lines {
		if s.Filters.MatchLine(l) {
			visible = append(visible, l)
		}
	}

	dayKeys := s.DayKeys()
	weekStart := ToDate(s.WeekStart())
	weekEnd := ToDate(s.WeekEnd())

	monthStart := s.MonthStart()
	monthDays := s.MonthDays()
	monthKeys := Keys(monthDays)
	counts := CountByDay(monthKeys, filtered)
	month := make([]MonthDay, len(monthDays))
	for i, d := range monthDays {
		month[i] = MonthDay{
			Day:     monthKeys[i],
			InMonth: d.Month() == monthStart.Month() && d.Year() == monthStart.Year(),
			Counts:  counts[monthKeys[i]],
		}
	}

	return View{
		Mode:              s.Mode,
		WeekStart:         weekStart,
		WeekEnd:           weekEnd,
		DayKeys:           dayKeys,
		MonthStart:        ToDate(monthStart),
		Month:             month,
		VisibleLines:      visible,
		Filtered:          filtered,
		Occupancy:         Resolve(visible, dayKeys, filtered),
		Capacity:          Summarize(data.CourseTypes, data.Bookings, weekStart, weekEnd),
		CourseTypeOptions: CourseTypeOptions(data.Bookings),
		BillingTagOptions: BillingTagOptions(data.Bookings),
		CourseChips:       CourseChips(data.CourseTypes),
	}
}

// CourseTypeOptions lists the distinct course types found on bookings.
func CourseTypeOptions(bookings []models.Booking) []string {
	return distinctSorted(bookings, func(b models.Booking) string { return b.CourseType })
}

// BillingTagOptions lists the distinct non-empty billing tags found on bookings.
func BillingTagOptions(bookings []models.Booking) []string {
	return distinctSorted(bookings, models.Booking.BillingTagValue)
}

func CourseChips(courseTypes []models.CourseType) []string {
	if len(courseTypes) == 0 {
		return append([]string(nil), DefaultCourseChips...)
	}
	chips := make([]string, len(courseTypes))
	for i, ct := range courseTypes {
		chips[i] = ct.Name
	}
	return chips
}

func distinctSorted(bookings []models.Booking, key func(models.Booking) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, b := range bookings {
		k := key(b)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
