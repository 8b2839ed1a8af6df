package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"loadboard/internal/loads"
)

func TestService_AppendRequiresActionAndShipment(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.Append(context.Background(), Event{ShipmentID: "s1"}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent without action, got %v", err)
	}
	if err := svc.Append(context.Background(), Event{Action: loads.ActionCreated}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent without shipment id, got %v", err)
	}
}

func TestService_AppendFillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	now := time.Unix(1700000000, 0).UTC()
	svc.clock = func() time.Time { return now }

	if err := svc.Append(context.Background(), Event{Action: loads.ActionCreated, ShipmentID: "s1", LoadID: "LD-1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	if evs[0].ID == "" {
		t.Fatalf("expected generated id")
	}
	if !evs[0].CreatedAt.Equal(now) {
		t.Fatalf("expected clock timestamp, got %v", evs[0].CreatedAt)
	}
}

func TestService_RecordMutationSwallowsInvalid(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	// Missing shipment id makes the event invalid; the recorder must not panic
	// or surface the failure.
	svc.RecordMutation(context.Background(), loads.ActionUpdated, loads.Load{}, loads.ChannelManual)

	evs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(evs) != 0 {
		t.Fatalf("expected invalid event dropped, got %d", len(evs))
	}
}

func TestService_RecordMutationCapturesChannel(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	l := loads.Load{ID: "s1", LoadID: "LD-1"}

	svc.RecordMutation(context.Background(), loads.ActionCreated, l, loads.ChannelURLAPI)
	svc.RecordMutation(context.Background(), loads.ActionDeleted, l, "")

	evs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].Channel != string(loads.ChannelURLAPI) {
		t.Fatalf("expected url_api channel, got %q", evs[0].Channel)
	}
	if evs[1].Channel != "" {
		t.Fatalf("expected empty channel on delete, got %q", evs[1].Channel)
	}
}

func TestMemoryRepo_ListReturnsCopy(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Append(context.Background(), Event{ID: "e1", Action: loads.ActionCreated, ShipmentID: "s1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs, _ := repo.List(context.Background())
	evs[0].Action = "tampered"

	again, _ := repo.List(context.Background())
	if again[0].Action != loads.ActionCreated {
		t.Fatalf("expected stored event untouched, got %q", again[0].Action)
	}
}
