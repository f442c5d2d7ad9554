package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// seed inserts the bootstrap rows on first run. An empty users table is the
// trigger; a store that already has accounts is left untouched.
func (d *DB) seed(ctx context.Context) error {
	count, err := d.bun.NewSelect().Model((*User)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	users := []User{
		{Username: "admin", FullName: "Администратор Системы", Role: RoleAdmin, Password: "admin123"},
		{Username: "teacher1", FullName: "Петров Иван Сергеевич", Role: RoleTeacher, Password: "teacher1"},
		{Username: "teacher2", FullName: "Сидорова Мария Константиновна", Role: RoleTeacher, Password: "teacher2"},
	}
	for i := range users {
		if _, err := d.bun.NewInsert().Model(&users[i]).Exec(ctx); err != nil {
			return fmt.Errorf("seed user %q: %w", users[i].Username, err)
		}
	}

	equipment := []Equipment{
		{Name: "Микроскоп биологический", Description: "Увеличение 1000x, с иммерсионным маслом", Status: EquipmentAvailable},
		{Name: "Осциллограф цифровой", Description: "4 канала, 100 МГц, с памятью", Status: EquipmentAvailable},
		{Name: "3D-принтер Creality", Description: "Область печати 220x220x250 мм", Status: EquipmentMaintenance},
		{Name: "Спектрометр USB2000+", Description: "Диапазон 200-850 нм", Status: EquipmentAvailable},
		{Name: "Центрифуга лабораторная", Description: "Макс. 10000 об/мин, 8 мест", Status: EquipmentInUse},
		{Name: "Термостат суховоздушный", Description: "Темп. диапазон +30..+300°C", Status: EquipmentAvailable},
	}
	for i := range equipment {
		if _, err := d.bun.NewInsert().Model(&equipment[i]).Exec(ctx); err != nil {
			return fmt.Errorf("seed equipment %q: %w", equipment[i].Name, err)
		}
	}

	requests := []Request{
		{
			TeacherID:       users[1].ID,
			EquipmentID:     equipment[0].ID,
			StudentGroup:    "Био-21",
			Purpose:         "Лабораторная работа по цитологии",
			DesiredDate:     "2024-12-15",
			DesiredTimeSlot: "9:00-11:00",
			Status:          RequestApproved,
			AdminNotes:      "Занятие подтверждено",
		},
		{
			TeacherID:       users[1].ID,
			EquipmentID:     equipment[3].ID,
			StudentGroup:    "Физ-22",
			Purpose:         "Исследование спектров поглощения",
			DesiredDate:     "2024-12-16",
			DesiredTimeSlot: "13:00-15:00",
			Status:          RequestPending,
		},
		{
			TeacherID:       users[2].ID,
			EquipmentID:     equipment[1].ID,
			StudentGroup:    "Радио-23",
			Purpose:         "Изучение сигналов",
			DesiredDate:     "2024-12-17",
			DesiredTimeSlot: "11:00-13:00",
			Status:          RequestRejected,
			AdminNotes:      "Оборудование на калибровке",
		},
	}
	for i := range requests {
		if _, err := d.bun.NewInsert().Model(&requests[i]).Exec(ctx); err != nil {
			return fmt.Errorf("seed request %d: %w", i+1, err)
		}
	}

	d.logger.Info("bootstrap data seeded",
		zap.Int("users", len(users)),
		zap.Int("equipment", len(equipment)),
		zap.Int("requests", len(requests)))
	return nil
}
