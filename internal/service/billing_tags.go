package service

import (
	"context"
	"fmt"

	"booking-calendar/api"
	"booking-calendar/internal/models"
)

func (s *Service) CreateBillingTag(ctx context.Context, req *api.BillingTagRequest) (*api.BillingTagResponse, error) {
	const op = "service.CreateBillingTag"

	tag := &models.BillingTag{ID: s.newID(), Name: req.Name, Description: emptyToNil(req.Description)}

	if err := s.store.CreateBillingTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBillingTagResponse(*tag), nil
}

func (s *Service) GetBillingTag(ctx context.Context, id string) (*api.BillingTagResponse, error) {
	const op = "service.GetBillingTag"

	tag, err := s.store.GetBillingTag(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBillingTagResponse(*tag), nil
}

func (s *Service) ListBillingTags(ctx context.Context) ([]*api.BillingTagResponse, error) {
	const op = "service.ListBillingTags"

	tags, err := s.store.ListBillingTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.BillingTagResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, toBillingTagResponse(tag))
	}

	return result, nil
}

// UpdateBillingTag renames the catalogue entry only. Bookings keep the label
// they were saved with.
func (s *Service) UpdateBillingTag(ctx context.Context, id string, req *api.BillingTagRequest) (*api.BillingTagResponse, error) {
	const op = "service.UpdateBillingTag"

	tag := &models.BillingTag{ID: id, Name: req.Name, Description: emptyToNil(req.Description)}

	if err := s.store.UpdateBillingTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBillingTagResponse(*tag), nil
}

func (s *Service) DeleteBillingTag(ctx context.Context, id string) error {
	const op = "service.DeleteBillingTag"

	if err := s.store.DeleteBillingTag(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
