package ui

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"labequip/auth"
	"labequip/catalog"
	"labequip/database"
	"labequip/report"
	"labequip/workflow"
)

func newTestShell(t *testing.T, input string) (*Shell, *bytes.Buffer) {
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

	out := new(bytes.Buffer)
	logger := zap.NewNop()
	shell := New(strings.NewReader(input), out, logger,
		auth.NewService(db, logger),
		workflow.NewService(db, logger),
		catalog.NewService(db, logger),
		report.NewService(db),
	)
	return shell, out
}

func TestGuestBrowsesEquipment(t *testing.T) {
	shell, out := newTestShell(t, "2\n2\n0\n0\n")
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Микроскоп биологический") {
		t.Fatalf("equipment listing missing from output:\n%s", out.String())
	}
}

func TestRejectedLogin(t *testing.T) {
	shell, out := newTestShell(t, "1\nadmin\nwrong\n0\n")
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Invalid username or password.") {
		t.Fatalf("rejection message missing:\n%s", out.String())
	}
}

func TestAdminViewsStats(t *testing.T) {
	shell, out := newTestShell(t, "1\nadmin\nadmin123\n4\n0\n0\n")
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Welcome, Администратор Системы.") {
		t.Fatalf("welcome line missing:\n%s", got)
	}
	if !strings.Contains(got, "pending") || !strings.Contains(got, "available") {
		t.Fatalf("stats missing:\n%s", got)
	}
}

func TestTeacherSubmitsRequest(t *testing.T) {
	// sign in as teacher1, submit a request for equipment 1, sign out, quit
	input := strings.Join([]string{
		"1", "teacher1", "teacher1",
		"2",
		"1",
		"Био-21",
		"повторная работа",
		"2025-03-01",
		"9:00-11:00",
		"0", "0",
	}, "\n") + "\n"
	shell, out := newTestShell(t, input)
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "submitted, status pending") {
		t.Fatalf("submission confirmation missing:\n%s", out.String())
	}
}

func TestEndOfInputEndsShell(t *testing.T) {
	shell, _ := newTestShell(t, "")
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}
