package calendar

import (
	"sort"

	"booking-calendar/internal/models"
)

// DefaultCourseLabel is used for bookings with no course type.
const DefaultCourseLabel = "Course"

type CapacityState string

const (
	CapacityUnder CapacityState = "under"
	CapacityAt    CapacityState = "at"
	CapacityOver  CapacityState = "over"
)

// Classify keeps "at capacity" as its own state; it is never folded into over.
func Classify(booked, capacity int) CapacityState {
	switch {
	case booked > capacity:
		return CapacityOver
	case booked == capacity:
		return CapacityAt
	default:
		return CapacityUnder
	}
}

type CapacityItem struct {
	Name     string
	Capacity int
	Booked   int
}

func (c CapacityItem) State() CapacityState {
	return Classify(c.Booked, c.Capacity)
}

// Summarize counts bookings overlapping [weekStart, weekEnd] per course-type
// label and reports them against every course type with a positive weekly
// capacity, sorted by name.
//
// The count is keyed by the free-text label stored on the booking, not by
// CourseType.ID. Two course types sharing a name share a count.
func Summarize(courseTypes []models.CourseType, bookings []models.Booking, weekStart, weekEnd Date) []CapacityItem {
	counts := make(map[string]int)
	for _, b := range bookings {
		iv, ok := BookingInterval(b)
		if !ok {
			continue
		}
		if !Overlaps(iv.Start, iv.End, weekStart, weekEnd) {
			continue
		}
		counts[courseLabel(b.CourseType)]++
	}

	items := make([]CapacityItem, 0, len(courseTypes))
	for _, ct := range courseTypes {
		if ct.WeeklyCapacity == nil || *ct.WeeklyCapacity <= 0 {
			continue
		}
		items = append(items, CapacityItem{
			Name:     ct.Name,
			Capacity: *ct.WeeklyCapacity,
			Booked:   counts[ct.Name],
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return items
}

func courseLabel(courseType string) string {
	if courseType == "" {
		return DefaultCourseLabel
	}
	return courseType
}
