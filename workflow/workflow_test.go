package workflow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"labequip/auth"
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
	return NewService(db, zap.NewNop())
}

func teacherSession() *auth.Session {
	return &auth.Session{
		ID:        "test",
		UserID:    2,
		FullName:  "Петров Иван Сергеевич",
		Role:      auth.RoleTeacher,
		StartedAt: time.Now(),
	}
}

func TestSubmit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req, err := svc.Submit(ctx, teacherSession(), 1, "Био-21", "повторная работа", "2025-02-01", "9:00-11:00")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.Status != database.RequestPending {
		t.Fatalf("status = %q, want pending", req.Status)
	}
	if req.ID == 0 {
		t.Fatal("no id assigned")
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	session := teacherSession()

	cases := []struct {
		name        string
		session     *auth.Session
		equipmentID int64
		date        string
		slot        string
		want        error
	}{
		{"guest", &auth.Session{Role: auth.RoleGuest}, 1, "2025-02-01", "9:00-11:00", ErrNotInstructor},
		{"admin", &auth.Session{Role: auth.RoleAdmin}, 1, "2025-02-01", "9:00-11:00", ErrNotInstructor},
		{"unknown slot", session, 1, "2025-02-01", "8:00-10:00", ErrUnknownSlot},
		{"bad date", session, 1, "01.02.2025", "9:00-11:00", ErrBadDate},
		{"missing equipment", session, 999, "2025-02-01", "9:00-11:00", ErrUnknownEquipment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tc.session, tc.equipmentID, "Био-21", "работа", tc.date, tc.slot)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMineScopedToSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reqs, err := svc.Mine(ctx, teacherSession())
	if err != nil {
		t.Fatalf("mine: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want the 2 seeded for teacher1", len(reqs))
	}
	for _, r := range reqs {
		if r.TeacherID != 2 {
			t.Fatalf("foreign request %d in listing", r.ID)
		}
	}
}

func TestSetStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetStatus(ctx, 2, database.RequestStatus("archived"), nil); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("err = %v, want ErrUnknownStatus", err)
	}

	note := "подтверждено"
	if err := svc.SetStatus(ctx, 2, database.RequestApproved, &note); err != nil {
		t.Fatalf("set status: %v", err)
	}
	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	for _, r := range all {
		if r.ID == 2 {
			if r.Status != database.RequestApproved {
				t.Fatalf("status = %q, want approved", r.Status)
			}
			if r.AdminNotes != note {
				t.Fatalf("note = %q, want %q", r.AdminNotes, note)
			}
			return
		}
	}
	t.Fatal("request 2 not found")
}

func TestValidSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		if !ValidSlot(slot) {
			t.Fatalf("%q rejected", slot)
		}
	}
	if ValidSlot("17:00-19:00") {
		t.Fatal("unknown slot accepted")
	}
}
