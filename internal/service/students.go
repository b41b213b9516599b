package service

import (
	"context"
	"fmt"

	"booking-calendar/api"
	"booking-calendar/internal/models"
	"booking-calendar/internal/storage"
	"booking-calendar/pkg/response"
)

func studentFromRequest(id string, req *api.StudentRequest) *models.Student {
	return &models.Student{
		ID:       id,
		FullName: req.FullName,
		Email:    emptyToNil(req.Email),
		Phone:    emptyToNil(req.Phone),
		Notes:    emptyToNil(req.Notes),
	}
}

func (s *Service) CreateStudent(ctx context.Context, req *api.StudentRequest) (*api.StudentResponse, error) {
	const op = "service.CreateStudent"

	st := studentFromRequest(s.newID(), req)

	if err := s.store.CreateStudent(ctx, st); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toStudentResponse(*st), nil
}

func (s *Service) GetStudent(ctx context.Context, id string) (*api.StudentResponse, error) {
	const op = "service.GetStudent"

	st, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toStudentResponse(*st), nil
}

func (s *Service) ListStudents(ctx context.Context) ([]*api.StudentResponse, error) {
	const op = "service.ListStudents"

	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.StudentResponse, 0, len(students))
	for _, st := range students {
		result = append(result, toStudentResponse(st))
	}

	return result, nil
}

func (s *Service) UpdateStudent(ctx context.Context, id string, req *api.StudentRequest) (*api.StudentResponse, error) {
	const op = "service.UpdateStudent"

	st := studentFromRequest(id, req)

	if err := s.store.UpdateStudent(ctx, st); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toStudentResponse(*st), nil
}

// DeleteStudent refuses with response.ErrConflict while the student still
// has bookings.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	const op = "service.DeleteStudent"

	err := s.store.RunInTx(ctx, func(repo storage.Repository) error {
		if _, err := repo.GetStudent(ctx, id); err != nil {
			return err
		}

		bookings, err := repo.ListBookings(ctx, storage.BookingFilter{StudentID: &id, Limit: 1})
		if err != nil {
			return err
		}
		if len(bookings) > 0 {
			return fmt.Errorf("student %s has bookings: %w", id, response.ErrConflict)
		}

		return repo.DeleteStudent(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
