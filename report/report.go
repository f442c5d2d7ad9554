// Package report aggregates status counts for the read-only statistics view.
package report

import (
	"context"

	"labequip/database"
)

// Row is one (status, count) line in canonical status order. Statuses with
// no rows are omitted, matching the underlying GROUP BY.
type Row struct {
	Status string
	Count  int
}

type Service struct {
	db *database.DB
}

func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

func (s *Service) EquipmentSummary(ctx context.Context) ([]Row, error) {
	counts, err := s.db.EquipmentStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	order := []database.EquipmentStatus{
		database.EquipmentAvailable,
		database.EquipmentInUse,
		database.EquipmentMaintenance,
	}
	var rows []Row
	for _, status := range order {
		if n, ok := counts[status]; ok {
			rows = append(rows, Row{Status: string(status), Count: n})
		}
	}
	return rows, nil
}

func (s *Service) RequestSummary(ctx context.Context) ([]Row, error) {
	counts, err := s.db.RequestStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	order := []database.RequestStatus{
		database.RequestPending,
		database.RequestApproved,
		database.RequestRejected,
		database.RequestCompleted,
	}
	var rows []Row
	for _, status := range order {
		if n, ok := counts[status]; ok {
			rows = append(rows, Row{Status: string(status), Count: n})
		}
	}
	return rows, nil
}
