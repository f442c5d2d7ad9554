package ui

import (
	"context"
	"fmt"
	"strconv"

	"labequip/auth"
	"labequip/utils"
)

// guestShell is read-only: requests, equipment and statistics, nothing else.
func (s *Shell) guestShell(ctx context.Context, session *auth.Session) {
	fmt.Fprintln(s.out, "Guest access (view only). Sign in to make changes.")
	for {
		fmt.Fprintln(s.out, "\n1) Requests  2) Equipment  3) Statistics  0) Back")
		choice, ok := s.readLine("> ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.showAllRequests(ctx)
		case "2":
			s.showEquipmentList(ctx)
		case "3":
			s.showStats(ctx)
		case "0":
			return
		default:
			fmt.Fprintln(s.out, "Unknown choice.")
		}
	}
}

func (s *Shell) showEquipmentList(ctx context.Context) {
	items, err := s.catalog.Equipment(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	rows := make([][]string, 0, len(items))
	for _, eq := range items {
		rows = append(rows, []string{
			strconv.FormatInt(eq.ID, 10), eq.Name, eq.Description, string(eq.Status),
		})
	}
	utils.RenderTable(s.out, []string{"ID", "Name", "Description", "Status"}, rows)
}

func (s *Shell) showStats(ctx context.Context) {
	equipRows, err := s.reports.EquipmentSummary(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	requestRows, err := s.reports.RequestSummary(ctx)
	if err != nil {
		s.fail(err)
		return
	}

	fmt.Fprintln(s.out, "Equipment by status:")
	rows := make([][]string, 0, len(equipRows))
	for _, row := range equipRows {
		rows = append(rows, []string{row.Status, strconv.Itoa(row.Count)})
	}
	utils.RenderTable(s.out, []string{"Status", "Count"}, rows)

	fmt.Fprintln(s.out, "\nRequests by status:")
	rows = rows[:0]
	for _, row := range requestRows {
		rows = append(rows, []string{row.Status, strconv.Itoa(row.Count)})
	}
	utils.RenderTable(s.out, []string{"Status", "Count"}, rows)
}
