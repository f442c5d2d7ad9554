package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"labequip/auth"
	"labequip/database"
	"labequip/utils"
	"labequip/workflow"
)

func (s *Shell) teacherShell(ctx context.Context, session *auth.Session) {
	for {
		fmt.Fprintln(s.out, "\n1) Available equipment  2) Submit request  3) My requests  0) Sign out")
		choice, ok := s.readLine("> ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.showAvailableEquipment(ctx)
		case "2":
			s.submitRequest(ctx, session)
		case "3":
			s.showMyRequests(ctx, session)
		case "0":
			return
		default:
			fmt.Fprintln(s.out, "Unknown choice.")
		}
	}
}

func (s *Shell) showAvailableEquipment(ctx context.Context) {
	items, err := s.catalog.AvailableEquipment(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	rows := make([][]string, 0, len(items))
	for _, eq := range items {
		rows = append(rows, []string{
			strconv.FormatInt(eq.ID, 10), eq.Name, eq.Description,
		})
	}
	utils.RenderTable(s.out, []string{"ID", "Name", "Description"}, rows)
}

func (s *Shell) submitRequest(ctx context.Context, session *auth.Session) {
	s.showAvailableEquipment(ctx)
	equipmentID, ok := s.readInt64("Equipment ID: ")
	if !ok {
		return
	}
	group, ok := s.readLine("Student group: ")
	if !ok {
		return
	}
	purpose, ok := s.readLine("Purpose: ")
	if !ok {
		return
	}
	date, ok := s.readLine("Desired date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "Time slots: %s\n", strings.Join(workflow.TimeSlots, ", "))
	slot, ok := s.readLine("Time slot: ")
	if !ok {
		return
	}

	req, err := s.requests.Submit(ctx, session, equipmentID, group, purpose, date, slot)
	if err != nil {
		s.explain(err)
		return
	}
	fmt.Fprintf(s.out, "Request #%d submitted, status %s.\n", req.ID, req.Status)
}

func (s *Shell) showMyRequests(ctx context.Context, session *auth.Session) {
	reqs, err := s.requests.Mine(ctx, session)
	if err != nil {
		s.fail(err)
		return
	}
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			equipmentName(&r),
			r.StudentGroup,
			r.Purpose,
			r.DesiredDate,
			r.DesiredTimeSlot,
			string(r.Status),
			utils.OrDash(r.AdminNotes),
		})
	}
	utils.RenderTable(s.out, []string{"ID", "Equipment", "Group", "Purpose", "Date", "Time", "Status", "Notes"}, rows)
}

func equipmentName(r *database.Request) string {
	if r.Equipment != nil {
		return r.Equipment.Name
	}
	return fmt.Sprintf("#%d", r.EquipmentID)
}
