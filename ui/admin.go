package ui

import (
	"context"
	"fmt"
	"strconv"

	"labequip/auth"
	"labequip/database"
	"labequip/utils"
)

func (s *Shell) adminShell(ctx context.Context, session *auth.Session) {
	for {
		fmt.Fprintln(s.out, "\n1) Requests  2) Users  3) Equipment  4) Statistics  0) Sign out")
		choice, ok := s.readLine("> ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.adminRequests(ctx)
		case "2":
			s.adminUsers(ctx)
		case "3":
			s.adminEquipment(ctx)
		case "4":
			s.showStats(ctx)
		case "0":
			return
		default:
			fmt.Fprintln(s.out, "Unknown choice.")
		}
	}
}

func (s *Shell) adminRequests(ctx context.Context) {
	s.showAllRequests(ctx)
	for {
		fmt.Fprintln(s.out, "\nu) Update status  b) Back")
		choice, ok := s.readLine("> ")
		if !ok || choice == "b" {
			return
		}
		if choice != "u" {
			fmt.Fprintln(s.out, "Unknown choice.")
			continue
		}
		id, ok := s.readInt64("Request ID: ")
		if !ok {
			return
		}
		status, ok := s.readLine("New status (pending/approved/rejected/completed): ")
		if !ok {
			return
		}
		note, ok := s.readOptional("Note (enter to keep current): ")
		if !ok {
			return
		}
		if err := s.requests.SetStatus(ctx, id, database.RequestStatus(status), note); err != nil {
			s.explain(err)
			continue
		}
		fmt.Fprintln(s.out, "Status updated.")
		s.showAllRequests(ctx)
	}
}

func (s *Shell) showAllRequests(ctx context.Context) {
	reqs, err := s.requests.All(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		requester := fmt.Sprintf("#%d", r.TeacherID)
		if r.Requester != nil {
			requester = r.Requester.FullName
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			requester,
			equipmentName(&r),
			r.StudentGroup,
			r.Purpose,
			r.DesiredDate,
			r.DesiredTimeSlot,
			string(r.Status),
			utils.OrDash(r.AdminNotes),
		})
	}
	utils.RenderTable(s.out, []string{"ID", "Requester", "Equipment", "Group", "Purpose", "Date", "Time", "Status", "Notes"}, rows)
}

func (s *Shell) adminUsers(ctx context.Context) {
	for {
		users, err := s.catalog.Users(ctx, true)
		if err != nil {
			s.fail(err)
			return
		}
		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{
				strconv.FormatInt(u.ID, 10), u.Username, u.FullName, string(u.Role),
			})
		}
		utils.RenderTable(s.out, []string{"ID", "Username", "Full name", "Role"}, rows)

		fmt.Fprintln(s.out, "\na) Add  e) Edit  d) Delete  b) Back")
		choice, ok := s.readLine("> ")
		if !ok || choice == "b" {
			return
		}
		switch choice {
		case "a":
			s.addUser(ctx)
		case "e":
			s.editUser(ctx)
		case "d":
			s.deleteUser(ctx)
		default:
			fmt.Fprintln(s.out, "Unknown choice.")
		}
	}
}

func (s *Shell) addUser(ctx context.Context) {
	username, ok := s.readLine("Username: ")
	if !ok {
		return
	}
	fullName, ok := s.readLine("Full name: ")
	if !ok {
		return
	}
	role, ok := s.readLine("Role (teacher/admin): ")
	if !ok {
		return
	}
	password, ok := s.readLine("Password: ")
	if !ok {
		return
	}
	user, err := s.catalog.AddUser(ctx, username, fullName, database.Role(role), password)
	if err != nil {
		s.explain(err)
		return
	}
	fmt.Fprintf(s.out, "User #%d added.\n", user.ID)
}

func (s *Shell) editUser(ctx context.Context) {
	id, ok := s.readInt64("User ID: ")
	if !ok {
		return
	}
	user, found, err := s.catalog.UserByID(ctx, id)
	if err != nil {
		s.fail(err)
		return
	}
	if !found {
		fmt.Fprintln(s.out, "No such user.")
		return
	}
	username, ok := s.readLine(fmt.Sprintf("Username [%s]: ", user.Username))
	if !ok {
		return
	}
	if username == "" {
		username = user.Username
	}
	fullName, ok := s.readLine(fmt.Sprintf("Full name [%s]: ", user.FullName))
	if !ok {
		return
	}
	if fullName == "" {
		fullName = user.FullName
	}
	role, ok := s.readLine(fmt.Sprintf("Role [%s]: ", user.Role))
	if !ok {
		return
	}
	if role == "" {
		role = string(user.Role)
	}
	password, ok := s.readOptional("New password (enter to keep current): ")
	if !ok {
		return
	}
	if err := s.catalog.UpdateUser(ctx, id, username, fullName, database.Role(role), password); err != nil {
		s.explain(err)
		return
	}
	fmt.Fprintln(s.out, "User updated.")
}

func (s *Shell) deleteUser(ctx context.Context) {
	id, ok := s.readInt64("User ID: ")
	if !ok {
		return
	}
	if err := s.catalog.DeleteUser(ctx, id); err != nil {
		s.explain(err)
		return
	}
	fmt.Fprintln(s.out, "User deleted.")
}

func (s *Shell) adminEquipment(ctx context.Context) {
	for {
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

		fmt.Fprintln(s.out, "\na) Add  e) Edit  d) Delete  b) Back")
		choice, ok := s.readLine("> ")
		if !ok || choice == "b" {
			return
		}
		switch choice {
		case "a":
			s.addEquipment(ctx)
		case "e":
			s.editEquipment(ctx)
		case "d":
			s.deleteEquipment(ctx)
		default:
			fmt.Fprintln(s.out, "Unknown choice.")
		}
	}
}

func (s *Shell) addEquipment(ctx context.Context) {
	name, ok := s.readLine("Name: ")
	if !ok {
		return
	}
	description, ok := s.readLine("Description: ")
	if !ok {
		return
	}
	status, ok := s.readLine("Status (available/in_use/maintenance, enter for available): ")
	if !ok {
		return
	}
	eq, err := s.catalog.AddEquipment(ctx, name, description, database.EquipmentStatus(status))
	if err != nil {
		s.explain(err)
		return
	}
	fmt.Fprintf(s.out, "Equipment #%d added.\n", eq.ID)
}

func (s *Shell) editEquipment(ctx context.Context) {
	id, ok := s.readInt64("Equipment ID: ")
	if !ok {
		return
	}
	eq, found, err := s.catalog.EquipmentByID(ctx, id)
	if err != nil {
		s.fail(err)
		return
	}
	if !found {
		fmt.Fprintln(s.out, "No such equipment.")
		return
	}
	name, ok := s.readLine(fmt.Sprintf("Name [%s]: ", eq.Name))
	if !ok {
		return
	}
	if name == "" {
		name = eq.Name
	}
	description, ok := s.readLine(fmt.Sprintf("Description [%s]: ", eq.Description))
	if !ok {
		return
	}
	if description == "" {
		description = eq.Description
	}
	status, ok := s.readLine(fmt.Sprintf("Status [%s]: ", eq.Status))
	if !ok {
		return
	}
	if status == "" {
		status = string(eq.Status)
	}
	if err := s.catalog.UpdateEquipment(ctx, id, name, description, database.EquipmentStatus(status)); err != nil {
		s.explain(err)
		return
	}
	fmt.Fprintln(s.out, "Equipment updated.")
}

func (s *Shell) deleteEquipment(ctx context.Context) {
	id, ok := s.readInt64("Equipment ID: ")
	if !ok {
		return
	}
	if err := s.catalog.DeleteEquipment(ctx, id); err != nil {
		s.explain(err)
		return
	}
	fmt.Fprintln(s.out, "Equipment deleted.")
}
