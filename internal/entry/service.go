// AngelaMos | 2026
// service.go

package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/policy"
)

// Service applies the ownership rules to entry storage. Callers see
// core.ErrForbidden for denials and core.ErrNotFound for absent entries.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	subject policy.Subject,
	req CreateEntryRequest,
) (*Entry, error) {
	ctx, span := core.StartSpan(ctx, "entry.Create")
	defer span.End()

	owner := policy.Resource{OwnerID: subject.ID}
	if !policy.Authorize(subject, policy.CreateEntry, owner).Allowed() {
		return nil, fmt.Errorf("create entry: %w", core.ErrForbidden)
	}

	entry := &Entry{
		ID:       uuid.New(),
		UserID:   subject.ID,
		Mood:     req.Mood,
		Entry:    req.Entry,
		Location: *req.Location,
		Weather:  req.Weather,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) Get(
	ctx context.Context,
	subject policy.Subject,
	id uuid.UUID,
) (*Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner := policy.Resource{OwnerID: entry.UserID}
	if !policy.Authorize(subject, policy.ReadEntry, owner).Allowed() {
		return nil, fmt.Errorf("get entry: %w", core.ErrForbidden)
	}

	return entry, nil
}

// List returns only the caller's own entries, admins included.
func (s *Service) List(
	ctx context.Context,
	subject policy.Subject,
) ([]Entry, error) {
	owner := policy.Resource{OwnerID: subject.ID}
	if !policy.Authorize(subject, policy.ListEntries, owner).Allowed() {
		return nil, fmt.Errorf("list entries: %w", core.ErrForbidden)
	}

	return s.repo.ListByUser(ctx, subject.ID)
}

// Editable returns the entry when the subject may replace it.
func (s *Service) Editable(
	ctx context.Context,
	subject policy.Subject,
	id uuid.UUID,
) (*Entry, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner := policy.Resource{OwnerID: existing.UserID}
	if !policy.Authorize(subject, policy.UpdateEntry, owner).Allowed() {
		return nil, fmt.Errorf("update entry: %w", core.ErrForbidden)
	}

	return existing, nil
}

func (s *Service) Update(
	ctx context.Context,
	subject policy.Subject,
	id uuid.UUID,
	req UpdateEntryRequest,
) (*Entry, error) {
	ctx, span := core.StartSpan(ctx, "entry.Update",
		attribute.String("entry.id", id.String()))
	defer span.End()

	existing, err := s.Editable(ctx, subject, id)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:       id,
		UserID:   existing.UserID,
		Mood:     req.Mood,
		Entry:    req.Entry,
		Location: *req.Location,
		Weather:  req.Weather,
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) Delete(
	ctx context.Context,
	subject policy.Subject,
	id uuid.UUID,
) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	owner := policy.Resource{OwnerID: existing.UserID}
	if !policy.Authorize(subject, policy.DeleteEntry, owner).Allowed() {
		return fmt.Errorf("delete entry: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id, existing.UserID)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
