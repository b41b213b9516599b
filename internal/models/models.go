package models

import "time"

// Booking dates are kept exactly as the store returns them. Only the
// calendar package normalises them, right before comparing.
type Booking struct {
	ID         string    `db:"id"`
	LineID     string    `db:"line_id"`
	StudentID  string    `db:"student_id"`
	CourseType string    `db:"course_type"`
	StartDate  string    `db:"start_date"`
	EndDate    string    `db:"end_date"`
	BillingTag *string   `db:"billing_tag"`
	Note       *string   `db:"note"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (b Booking) BillingTagValue() string {
	if b.BillingTag == nil {
		return ""
	}
	return *b.BillingTag
}

type Line struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type CourseType struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	Description    *string `db:"description"`
	WeeklyCapacity *int    `db:"weekly_capacity"`
}

type HistoryEntry struct {
	ID          string    `db:"id"`
	BookingID   string    `db:"booking_id"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Student struct {
	ID       string  `db:"id"`
	FullName string  `db:"full_name"`
	Email    *string `db:"email"`
	Phone    *string `db:"phone"`
	Notes    *string `db:"notes"`
}

// BillingTag is a catalogue entry. Bookings carry the tag name as a label,
// not a reference, so renaming a tag does not rewrite existing bookings.
type BillingTag struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

// Action is a to-do item attached to a booking.
type Action struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Title     string    `db:"title"`
	DueDate   *string   `db:"due_date"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at"`
}
