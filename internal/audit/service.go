package audit

import (
	"context"
	"errors"
	"time"

	"loadboard/internal/loads"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
// It MUST be append-only; no Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Event) error
	List(ctx context.Context) ([]Event, error)
}

// Service records load mutations. It satisfies loads.Recorder so the load
// service can notify it without depending on this package.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

var _ loads.Recorder = (*Service)(nil)

// RecordMutation appends an event for a load mutation. Errors are swallowed:
// audit is best-effort and must never block the write path.
func (s *Service) RecordMutation(ctx context.Context, action string, l loads.Load, ch loads.Channel) {
	_ = s.Append(ctx, Event{
		Action:     action,
		Channel:    string(ch),
		ShipmentID: l.ID,
		LoadID:     l.LoadID,
	})
}

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Action == "" || e.ShipmentID == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	return s.repo.List(ctx)
}
