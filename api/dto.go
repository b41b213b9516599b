package api

import "time"

// Bookings

type BookingRequest struct {
	LineID     string  `json:"line_id" validate:"required"`
	StudentID  string  `json:"student_id" validate:"required"`
	CourseType string  `json:"course_type" validate:"max=255"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    string  `json:"end_date" validate:"required"`
	BillingTag *string `json:"billing_tag,omitempty" validate:"omitempty,max=255"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=2000"`
	// AllowOverlap saves the booking even if it overlaps another one on the same line.
	AllowOverlap bool `json:"allow_overlap,omitempty"`
}

type BookingUpdateRequest struct {
	BookingRequest
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

type BookingResponse struct {
	ID         string    `json:"id"`
	LineID     string    `json:"line_id"`
	StudentID  string    `json:"student_id"`
	CourseType string    `json:"course_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	BillingTag *string   `json:"billing_tag"`
	Note       *string   `json:"note"`
	UpdatedAt  time.Time `json:"updated_at"`
	// StudentName is filled in calendar views.
	StudentName string `json:"student_name,omitempty"`
}

type HistoryEntryResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Actions

type ActionRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=500"`
	DueDate string `json:"due_date,omitempty"`
}

type ActionCompletedRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type ActionResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Title     string  `json:"title"`
	DueDate   *string `json:"due_date"`
	Completed bool    `json:"completed"`
	Overdue   bool    `json:"overdue"`
}

// TodoItem is an action with enough of its booking to be listed on its own.
type TodoItem struct {
	ActionResponse
	LineID      string `json:"line_id"`
	LineName    string `json:"line_name"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	CourseType  string `json:"course_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Students

type StudentRequest struct {
	FullName string  `json:"full_name" validate:"required,min=1,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type StudentResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
}

// Billing tags

type BillingTagRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type BillingTagResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Lines

type LineRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type LineResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LineImpactResponse struct {
	LineID   string            `json:"line_id"`
	From     string            `json:"from,omitempty"`
	To       string            `json:"to,omitempty"`
	Bookings []BookingResponse `json:"bookings"`
}

type LineDeleteResponse struct {
	LineID          string `json:"line_id"`
	DeletedBookings int64  `json:"deleted_bookings"`
}

// Course types

type CourseTypeRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	WeeklyCapacity *int    `json:"weekly_capacity,omitempty" validate:"omitempty,min=0"`
}

type CourseTypeResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	WeeklyCapacity *int    `json:"weekly_capacity"`
}

// Calendar

type CalendarQuery struct {
	Date       string
	LineID     string
	CourseType string
	BillingTag string
}

type CapacityItem struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Booked   int    `json:"booked"`
	State    string `json:"state"`
}

type CellConflict struct {
	LineID     string   `json:"line_id"`
	Day        string   `json:"day"`
	BookingIDs []string `json:"booking_ids"`
}

type WeekLine struct {
	LineID string                      `json:"line_id"`
	Name   string                      `json:"name"`
	Cells  map[string]*BookingResponse `json:"cells"`
}

type WeekViewResponse struct {
	WeekStart         string         `json:"week_start"`
	WeekEnd           string         `json:"week_end"`
	DayKeys           []string       `json:"day_keys"`
	Policy            string         `json:"policy"`
	Lines             []WeekLine     `json:"lines"`
	Capacity          []CapacityItem `json:"capacity"`
	Conflicts         []CellConflict `json:"conflicts"`
	CourseTypeOptions []string       `json:"course_type_options"`
	BillingTagOptions []string       `json:"billing_tag_options"`
	CourseChips       []string       `json:"course_chips"`
}

type MonthDay struct {
	Day      string         `json:"day"`
	InMonth  bool           `json:"in_month"`
	Total    int            `json:"total"`
	ByCourse map[string]int `json:"by_course"`
}

type MonthViewResponse struct {
	MonthStart string     `json:"month_start"`
	Days       []MonthDay `json:"days"`
}

type CellResponse struct {
	Action  string           `json:"action"`
	LineID  string           `json:"line_id"`
	Day     string           `json:"day"`
	Booking *BookingResponse `json:"booking,omitempty"`
}
