package service

import (
	"booking-calendar/api"
	"booking-calendar/internal/calendar"
	"booking-calendar/internal/models"
)

func toLineResponse(line models.Line) *api.LineResponse {
	return &api.LineResponse{ID: line.ID, Name: line.Name}
}

func toCourseTypeResponse(ct models.CourseType) *api.CourseTypeResponse {
	return &api.CourseTypeResponse{
		ID:             ct.ID,
		Name:           ct.Name,
		Description:    ct.Description,
		WeeklyCapacity: ct.WeeklyCapacity,
	}
}

func toBookingResponse(b models.Booking) *api.BookingResponse {
	return &api.BookingResponse{
		ID:         b.ID,
		LineID:     b.LineID,
		StudentID:  b.StudentID,
		CourseType: b.CourseType,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		BillingTag: b.BillingTag,
		Note:       b.Note,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toCapacityItems(items []calendar.CapacityItem) []api.CapacityItem {
	out := make([]api.CapacityItem, 0, len(items))
	for _, item := range items {
		out = append(out, api.CapacityItem{
			Name:     item.Name,
			Capacity: item.Capacity,
			Booked:   item.Booked,
			State:    string(item.State()),
		})
	}
	return out
}

func toCellConflicts(conflicts []calendar.CellConflict) []api.CellConflict {
	out := make([]api.CellConflict, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, api.CellConflict{
			LineID:     c.LineID,
			Day:        c.Day.String(),
			BookingIDs: c.BookingIDs,
		})
	}
	return out
}

func dateStrings(days []calendar.Date) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toStudentResponse(st models.Student) *api.StudentResponse {
	return &api.StudentResponse{
		ID:       st.ID,
		FullName: st.FullName,
		Email:    st.Email,
		Phone:    st.Phone,
		Notes:    st.Notes,
	}
}

func toBillingTagResponse(tag models.BillingTag) *api.BillingTagResponse {
	return &api.BillingTagResponse{ID: tag.ID, Name: tag.Name, Description: tag.Description}
}

// toActionResponse marks an open action overdue once its due date is
// strictly before today.
func toActionResponse(a models.Action, today calendar.Date) api.ActionResponse {
	res := api.ActionResponse{
		ID:        a.ID,
		BookingID: a.BookingID,
		Title:     a.Title,
		DueDate:   a.DueDate,
		Completed: a.Completed,
	}

	if due, ok := calendar.NormalizePtr(a.DueDate); ok {
		d := due.String()
		res.DueDate = &d
		res.Overdue = !a.Completed && due < today
	}

	return res
}
