package report

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"labequip/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lab_equipment.db")
	db, err := database.Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return NewService(db)
}

func TestEquipmentSummary(t *testing.T) {
	svc := newTestService(t)

	rows, err := svc.EquipmentSummary(context.Background())
	if err != nil {
		t.Fatalf("equipment summary: %v", err)
	}
	want := []Row{
		{Status: "available", Count: 4},
		{Status: "in_use", Count: 1},
		{Status: "maintenance", Count: 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, row := range rows {
		if row != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, row, want[i])
		}
	}
}

func TestRequestSummary(t *testing.T) {
	svc := newTestService(t)

	rows, err := svc.RequestSummary(context.Background())
	if err != nil {
		t.Fatalf("request summary: %v", err)
	}
	// Seed has one each of pending, approved and rejected, no completed.
	want := []Row{
		{Status: "pending", Count: 1},
		{Status: "approved", Count: 1},
		{Status: "rejected", Count: 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, row := range rows {
		if row != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, row, want[i])
		}
	}
}
