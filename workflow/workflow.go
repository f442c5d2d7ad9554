// Package workflow owns the request lifecycle: instructors submit requests,
// admins move them between statuses. There is no transition table — an admin
// may set any status from any other — and no delete operation exists.
package workflow

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"labequip/auth"
	"labequip/database"
)

// TimeSlots is the fixed set of bookable ranges offered at submission.
var TimeSlots = []string{
	"9:00-11:00",
	"11:00-13:00",
	"13:00-15:00",
	"15:00-17:00",
}

const dateLayout = "2006-01-02"

var (
	ErrNotInstructor    = errors.New("only instructors can submit requests")
	ErrUnknownSlot      = errors.New("unknown time slot")
	ErrBadDate          = errors.New("desired date must be in YYYY-MM-DD form")
	ErrUnknownEquipment = errors.New("equipment not found")
	ErrUnknownStatus    = errors.New("unknown request status")
)

func ValidSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

type Service struct {
	db     *database.DB
	logger *zap.Logger
}

func NewService(db *database.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Submit files a new request for the session's user. The status is always
// pending; the caller never chooses it.
func (s *Service) Submit(ctx context.Context, session *auth.Session, equipmentID int64, group, purpose, date, slot string) (*database.Request, error) {
	if session.Role != auth.RoleTeacher {
		return nil, ErrNotInstructor
	}
	if !ValidSlot(slot) {
		return nil, ErrUnknownSlot
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrBadDate
	}
	_, found, err := s.db.EquipmentByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUnknownEquipment
	}

	req := &database.Request{
		TeacherID:       session.UserID,
		EquipmentID:     equipmentID,
		StudentGroup:    group,
		Purpose:         purpose,
		DesiredDate:     date,
		DesiredTimeSlot: slot,
	}
	if err := s.db.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Mine lists the session user's own requests, newest desired date first.
func (s *Service) Mine(ctx context.Context, session *auth.Session) ([]database.Request, error) {
	return s.db.RequestsForRequester(ctx, session.UserID)
}

// All lists every request ordered by status rank then desired date.
func (s *Service) All(ctx context.Context) ([]database.Request, error) {
	return s.db.AllRequests(ctx)
}

// SetStatus applies an admin transition. A nil note leaves the stored note
// untouched; concurrent updates are last-write-wins.
func (s *Service) SetStatus(ctx context.Context, id int64, status database.RequestStatus, note *string) error {
	if !status.Valid() {
		return ErrUnknownStatus
	}
	return s.db.UpdateRequestStatus(ctx, id, status, note)
}
