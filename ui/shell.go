// Package ui holds the role-specific terminal shells. They are thin consumers
// of the auth, workflow, catalog and report services: read a menu choice,
// call one operation, render the result. Unexpected store failures are logged
// and shown as a generic notice; the shell keeps running.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"labequip/auth"
	"labequip/catalog"
	"labequip/database"
	"labequip/report"
	"labequip/workflow"
)

type Shell struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger

	auth     *auth.Service
	requests *workflow.Service
	catalog  *catalog.Service
	reports  *report.Service
}

func New(in io.Reader, out io.Writer, logger *zap.Logger, authSvc *auth.Service, requests *workflow.Service, cat *catalog.Service, reports *report.Service) *Shell {
	return &Shell{
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger,
		auth:     authSvc,
		requests: requests,
		catalog:  cat,
		reports:  reports,
	}
}

// Run is the login loop. It returns when the user quits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "LabEquipment Manager")
	for {
		fmt.Fprintln(s.out, "\n1) Sign in  2) Guest access  0) Quit")
		choice, ok := s.readLine("> ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			s.login(ctx)
		case "2":
			s.guestShell(ctx, s.auth.Guest())
		case "0":
			return nil
		default:
			fmt.Fprintln(s.out, "Unknown choice.")
		}
	}
}

func (s *Shell) login(ctx context.Context) {
	username, ok := s.readLine("Username: ")
	if !ok {
		return
	}
	password, ok := s.readLine("Password: ")
	if !ok {
		return
	}
	session, ok2, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.fail(err)
		return
	}
	if !ok2 {
		fmt.Fprintln(s.out, "Invalid username or password.")
		return
	}
	fmt.Fprintf(s.out, "Welcome, %s.\n", session.FullName)
	switch session.Role {
	case auth.RoleAdmin:
		s.adminShell(ctx, session)
	case auth.RoleTeacher:
		s.teacherShell(ctx, session)
	case auth.RoleGuest:
		s.guestShell(ctx, session)
	default:
		s.logger.Error("session with unknown role", zap.String("role", session.Role.String()))
	}
}

// fail reports an unexpected store failure without killing the shell.
func (s *Shell) fail(err error) {
	s.logger.Error("operation failed", zap.Error(err))
	fmt.Fprintln(s.out, "Something went wrong; the operation was not completed.")
}

// explain renders the expected failures by kind and delegates the rest
// to fail.
func (s *Shell) explain(err error) {
	var refErr *database.ReferencedError
	switch {
	case errors.Is(err, database.ErrDuplicate):
		fmt.Fprintln(s.out, "That name is already taken.")
	case errors.Is(err, database.ErrAdminProtected):
		fmt.Fprintln(s.out, "Administrator accounts cannot be deleted.")
	case errors.As(err, &refErr):
		fmt.Fprintln(s.out, refErr.Error())
	case errors.Is(err, workflow.ErrUnknownSlot),
		errors.Is(err, workflow.ErrBadDate),
		errors.Is(err, workflow.ErrUnknownEquipment),
		errors.Is(err, workflow.ErrUnknownStatus),
		errors.Is(err, workflow.ErrNotInstructor),
		errors.Is(err, catalog.ErrEmptyName),
		errors.Is(err, catalog.ErrUnknownStatus),
		errors.Is(err, catalog.ErrUnknownRole):
		fmt.Fprintln(s.out, err.Error())
	default:
		s.fail(err)
	}
}

func (s *Shell) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) readInt64(prompt string) (int64, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err == nil {
			return id, true
		}
		fmt.Fprintln(s.out, "Enter a number.")
	}
}

// readOptional returns nil when the user just presses enter, distinguishing
// "leave unchanged" from an explicit empty value.
func (s *Shell) readOptional(prompt string) (*string, bool) {
	line, ok := s.readLine(prompt)
	if !ok {
		return nil, false
	}
	if line == "" {
		return nil, true
	}
	return &line, true
}
