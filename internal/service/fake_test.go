package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"booking-calendar/internal/models"
	"booking-calendar/internal/storage"
	"booking-calendar/pkg/response"
)

// memStore is an in-memory storage.Store. RunInTx snapshots the maps and
// restores them when fn fails.
type memStore struct {
	lines       map[string]models.Line
	students    map[string]models.Student
	billingTags map[string]models.BillingTag
	courseTypes map[string]models.CourseType
	bookings    map[string]models.Booking
	actions     map[string]models.Action
	history     []models.HistoryEntry
	clock       time.Time

	// deleteBookingErr makes DeleteBooking fail after it has already removed
	// the booking's history and actions.
	deleteBookingErr error
}

func newMemStore() *memStore {
	return &memStore{
		lines:       map[string]models.Line{},
		students:    map[string]models.Student{},
		billingTags: map[string]models.BillingTag{},
		courseTypes: map[string]models.CourseType{},
		bookings:    map[string]models.Booking{},
		actions:     map[string]models.Action{},
		clock:       time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) RunInTx(ctx context.Context, fn func(repo storage.Repository) error) error {
	lines := cloneMap(m.lines)
	students := cloneMap(m.students)
	billingTags := cloneMap(m.billingTags)
	courseTypes := cloneMap(m.courseTypes)
	bookings := cloneMap(m.bookings)
	actions := cloneMap(m.actions)
	history := append([]models.HistoryEntry(nil), m.history...)

	if err := fn(m); err != nil {
		m.lines, m.students, m.billingTags = lines, students, billingTags
		m.courseTypes, m.bookings, m.actions, m.history = courseTypes, bookings, actions, history
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memStore) CreateLine(ctx context.Context, line *models.Line) error {
	if _, ok := m.lines[line.ID]; ok {
		return response.ErrConflict
	}
	m.lines[line.ID] = *line
	return nil
}

func (m *memStore) GetLine(ctx context.Context, id string) (*models.Line, error) {
	line, ok := m.lines[id]
	if !ok {
		return nil, fmt.Errorf("line %s: %w", id, response.ErrNotFound)
	}
	return &line, nil
}

func (m *memStore) ListLines(ctx context.Context) ([]models.Line, error) {
	out := make([]models.Line, 0, len(m.lines))
	for _, l := range m.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) UpdateLine(ctx context.Context, line *models.Line) error {
	if _, ok := m.lines[line.ID]; !ok {
		return response.ErrNotFound
	}
	m.lines[line.ID] = *line
	return nil
}

func (m *memStore) DeleteLine(ctx context.Context, id string) error {
	if _, ok := m.lines[id]; !ok {
		return response.ErrNotFound
	}
	for _, b := range m.bookings {
		if b.LineID == id {
			return response.ErrConflict
		}
	}
	delete(m.lines, id)
	return nil
}

func (m *memStore) CreateStudent(ctx context.Context, st *models.Student) error {
	m.students[st.ID] = *st
	return nil
}

func (m *memStore) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	st, ok := m.students[id]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", id, response.ErrNotFound)
	}
	return &st, nil
}

func (m *memStore) ListStudents(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(m.students))
	for _, st := range m.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *memStore) UpdateStudent(ctx context.Context, st *models.Student) error {
	if _, ok := m.students[st.ID]; !ok {
		return response.ErrNotFound
	}
	m.students[st.ID] = *st
	return nil
}

func (m *memStore) DeleteStudent(ctx context.Context, id string) error {
	if _, ok := m.students[id]; !ok {
		return response.ErrNotFound
	}
	for _, b := range m.bookings {
		if b.StudentID == id {
			return response.ErrConflict
		}
	}
	delete(m.students, id)
	return nil
}

func (m *memStore) CreateBillingTag(ctx context.Context, tag *models.BillingTag) error {
	for _, t := range m.billingTags {
		if t.Name == tag.Name {
			return response.ErrConflict
		}
	}
	m.billingTags[tag.ID] = *tag
	return nil
}

func (m *memStore) GetBillingTag(ctx context.Context, id string) (*models.BillingTag, error) {
	tag, ok := m.billingTags[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return &tag, nil
}

func (m *memStore) ListBillingTags(ctx context.Context) ([]models.BillingTag, error) {
	out := make([]models.BillingTag, 0, len(m.billingTags))
	for _, t := range m.billingTags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) UpdateBillingTag(ctx context.Context, tag *models.BillingTag) error {
	if _, ok := m.billingTags[tag.ID]; !ok {
		return response.ErrNotFound
	}
	m.billingTags[tag.ID] = *tag
	return nil
}

func (m *memStore) DeleteBillingTag(ctx context.Context, id string) error {
	if _, ok := m.billingTags[id]; !ok {
		return response.ErrNotFound
	}
	delete(m.billingTags, id)
	return nil
}

func (m *memStore) CreateCourseType(ctx context.Context, ct *models.CourseType) error {
	m.courseTypes[ct.ID] = *ct
	return nil
}

func (m *memStore) GetCourseType(ctx context.Context, id string) (*models.CourseType, error) {
	ct, ok := m.courseTypes[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return &ct, nil
}

func (m *memStore) ListCourseTypes(ctx context.Context) ([]models.CourseType, error) {
	out := make([]models.CourseType, 0, len(m.courseTypes))
	for _, ct := range m.courseTypes {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) UpdateCourseType(ctx context.Context, ct *models.CourseType) error {
	if _, ok := m.courseTypes[ct.ID]; !ok {
		return response.ErrNotFound
	}
	m.courseTypes[ct.ID] = *ct
	return nil
}

func (m *memStore) DeleteCourseType(ctx context.Context, id string) error {
	if _, ok := m.courseTypes[id]; !ok {
		return response.ErrNotFound
	}
	delete(m.courseTypes, id)
	return nil
}

func (m *memStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	if _, ok := m.lines[b.LineID]; !ok {
		return response.ErrNotFound
	}
	b.UpdatedAt = m.tick()
	m.bookings[b.ID] = *b
	return nil
}

func (m *memStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, response.ErrNotFound)
	}
	return &b, nil
}

func (m *memStore) ListBookings(ctx context.Context, filter storage.BookingFilter) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range m.bookings {
		if filter.LineID != nil && b.LineID != *filter.LineID {
			continue
		}
		if filter.StudentID != nil && b.StudentID != *filter.StudentID {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memStore) UpdateBooking(ctx context.Context, b *models.Booking, expectedUpdatedAt *time.Time) error {
	current, ok := m.bookings[b.ID]
	if !ok {
		if expectedUpdatedAt != nil {
			return response.ErrStale
		}
		return response.ErrNotFound
	}
	if expectedUpdatedAt != nil && !current.UpdatedAt.Equal(*expectedUpdatedAt) {
		return response.ErrStale
	}
	b.UpdatedAt = m.tick()
	m.bookings[b.ID] = *b
	return nil
}

func (m *memStore) DeleteBooking(ctx context.Context, id string) error {
	if _, ok := m.bookings[id]; !ok {
		return response.ErrNotFound
	}
	m.dropHistory(func(e models.HistoryEntry) bool { return e.BookingID == id })
	m.dropActions(map[string]bool{id: true})
	if m.deleteBookingErr != nil {
		return m.deleteBookingErr
	}
	delete(m.bookings, id)
	return nil
}

func (m *memStore) DeleteBookingsByLine(ctx context.Context, lineID string) (int64, error) {
	var n int64
	removed := map[string]bool{}
	for id, b := range m.bookings {
		if b.LineID == lineID {
			delete(m.bookings, id)
			removed[id] = true
			n++
		}
	}
	m.dropHistory(func(e models.HistoryEntry) bool { return removed[e.BookingID] })
	m.dropActions(removed)
	return n, nil
}

func (m *memStore) dropActions(bookingIDs map[string]bool) {
	for id, a := range m.actions {
		if bookingIDs[a.BookingID] {
			delete(m.actions, id)
		}
	}
}

func (m *memStore) dropHistory(match func(models.HistoryEntry) bool) {
	kept := m.history[:0]
	for _, e := range m.history {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	m.history = kept
}

func (m *memStore) AddHistory(ctx context.Context, entry *models.HistoryEntry) error {
	if _, ok := m.bookings[entry.BookingID]; !ok {
		return response.ErrNotFound
	}
	entry.CreatedAt = m.tick()
	m.history = append(m.history, *entry)
	return nil
}

func (m *memStore) ListHistory(ctx context.Context, bookingID string) ([]models.HistoryEntry, error) {
	out := []models.HistoryEntry{}
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].BookingID == bookingID {
			out = append(out, m.history[i])
		}
	}
	return out, nil
}

func (m *memStore) CreateAction(ctx context.Context, a *models.Action) error {
	if _, ok := m.bookings[a.BookingID]; !ok {
		return response.ErrNotFound
	}
	a.CreatedAt = m.tick()
	m.actions[a.ID] = *a
	return nil
}

func (m *memStore) GetAction(ctx context.Context, id string) (*models.Action, error) {
	a, ok := m.actions[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) ListActions(ctx context.Context, filter storage.ActionFilter) ([]models.Action, error) {
	out := []models.Action{}
	for _, a := range m.actions {
		if filter.BookingID != nil && a.BookingID != *filter.BookingID {
			continue
		}
		if filter.Completed != nil && a.Completed != *filter.Completed {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].DueDate, out[j].DueDate
		switch {
		case di != nil && dj != nil && *di != *dj:
			return *di < *dj
		case di == nil && dj != nil:
			return false
		case di != nil && dj == nil:
			return true
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) SetActionCompleted(ctx context.Context, id string, completed bool) (*models.Action, error) {
	a, ok := m.actions[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	a.Completed = completed
	m.actions[id] = a
	return &a, nil
}

func (m *memStore) DeleteAction(ctx context.Context, id string) error {
	if _, ok := m.actions[id]; !ok {
		return response.ErrNotFound
	}
	delete(m.actions, id)
	return nil
}

type fakeLocker struct {
	held   map[string]string
	locked []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]string{}}
}

func (l *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if _, ok := l.held[key]; ok {
		return "", false, nil
	}
	token := fmt.Sprintf("token-%d", len(l.locked)+1)
	l.held[key] = token
	l.locked = append(l.locked, key)
	return token, true, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, token string) error {
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}
