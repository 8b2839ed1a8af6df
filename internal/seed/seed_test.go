package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"loadboard/internal/loads"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loads.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadCSV_ImportsRows(t *testing.T) {
	csv := `load_id,origin,destination,pickup_datetime,delivery_datetime,equipment_type,loadboard_rate,miles
LD-1,Chicago IL,Denver CO,2026-03-01T08:00:00,2026-03-02 14:00:00,Dry Van,450,996
LD-2,Dallas TX,Atlanta GA,2026-03-03T06:00:00Z,2026-03-04T18:00:00Z,Reefer,900,781
`
	repo := loads.NewMemoryRepo()
	svc := loads.NewService(repo, nil)

	n, err := LoadCSV(context.Background(), discard(), svc, writeCSV(t, csv))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}

	l, err := svc.Get(context.Background(), "LD-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if l.Status != loads.StatusPending || l.AssignedViaURL {
		t.Fatalf("seeded rows must be pending manual-channel records: %+v", l)
	}
	if l.LoadboardRate == nil || *l.LoadboardRate != 450 {
		t.Fatalf("expected rate parsed, got %+v", l.LoadboardRate)
	}
	if l.EquipmentType == nil || *l.EquipmentType != "Dry Van" {
		t.Fatalf("expected equipment parsed, got %+v", l.EquipmentType)
	}
}

func TestLoadCSV_RenamesDuplicates(t *testing.T) {
	csv := `load_id,origin,destination,pickup_datetime,delivery_datetime
LD-1,Chicago IL,Denver CO,2026-03-01T08:00:00Z,2026-03-02T14:00:00Z
LD-1,Dallas TX,Atlanta GA,2026-03-03T06:00:00Z,2026-03-04T18:00:00Z
`
	repo := loads.NewMemoryRepo()
	svc := loads.NewService(repo, nil)

	n, err := LoadCSV(context.Background(), discard(), svc, writeCSV(t, csv))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected both rows kept via rename, got %d", n)
	}
	if _, err := svc.Get(context.Background(), "LD-1-DUP1"); err != nil {
		t.Fatalf("expected renamed duplicate present: %v", err)
	}
}

func TestLoadCSV_SkipsBadRows(t *testing.T) {
	csv := `load_id,origin,destination,pickup_datetime,delivery_datetime
LD-1,Chicago IL,Denver CO,not-a-date,2026-03-02T14:00:00Z
,Dallas TX,Atlanta GA,2026-03-03T06:00:00Z,2026-03-04T18:00:00Z
LD-3,Dallas TX,Atlanta GA,2026-03-05T06:00:00Z,2026-03-04T18:00:00Z
LD-4,Seattle WA,Boise ID,2026-03-03T06:00:00Z,2026-03-04T18:00:00Z
`
	repo := loads.NewMemoryRepo()
	svc := loads.NewService(repo, nil)

	// Bad timestamp, missing load_id and delivery-before-pickup all skip;
	// the one clean row still lands.
	n, err := LoadCSV(context.Background(), discard(), svc, writeCSV(t, csv))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 imported, got %d", n)
	}
	if _, err := svc.Get(context.Background(), "LD-4"); err != nil {
		t.Fatalf("expected LD-4 present: %v", err)
	}
}

func TestLoadCSV_AgreedRowsNeedPriceAndCarrier(t *testing.T) {
	csv := `load_id,origin,destination,pickup_datetime,delivery_datetime,status,agreed_price,carrier_description
LD-1,Chicago IL,Denver CO,2026-03-01T08:00:00Z,2026-03-02T14:00:00Z,agreed,500,ACME Trucking
LD-2,Dallas TX,Atlanta GA,2026-03-03T06:00:00Z,2026-03-04T18:00:00Z,agreed,,
LD-3,Seattle WA,Boise ID,2026-03-03T06:00:00Z,2026-03-04T18:00:00Z,booked,,
`
	repo := loads.NewMemoryRepo()
	svc := loads.NewService(repo, nil)

	n, err := LoadCSV(context.Background(), discard(), svc, writeCSV(t, csv))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// LD-2 claims agreed without the required fields and is skipped; LD-3's
	// unknown status falls back to pending.
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}

	agreed, err := svc.Get(context.Background(), "LD-1")
	if err != nil || agreed.Status != loads.StatusAgreed {
		t.Fatalf("expected LD-1 agreed, got %+v err %v", agreed, err)
	}
	pending, err := svc.Get(context.Background(), "LD-3")
	if err != nil || pending.Status != loads.StatusPending {
		t.Fatalf("expected LD-3 pending, got %+v err %v", pending, err)
	}
}

func TestLoadCSV_MissingRequiredColumn(t *testing.T) {
	csv := `load_id,origin,pickup_datetime,delivery_datetime
LD-1,Chicago IL,2026-03-01T08:00:00Z,2026-03-02T14:00:00Z
`
	repo := loads.NewMemoryRepo()
	svc := loads.NewService(repo, nil)

	if _, err := LoadCSV(context.Background(), discard(), svc, writeCSV(t, csv)); err == nil {
		t.Fatalf("expected error for missing destination column")
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	repo := loads.NewMemoryRepo()
	svc := loads.NewService(repo, nil)

	if _, err := LoadCSV(context.Background(), discard(), svc, filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
