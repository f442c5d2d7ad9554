// Package auth maps credential pairs to role-scoped sessions. Credentials are
// compared exactly as stored; this is an internal tool and deliberately does
// no hashing, lockout or rate limiting.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"labequip/database"
)

// Role is the session-level role. Unlike database.Role it includes the
// unauthenticated guest.
type Role int

const (
	RoleGuest Role = iota
	RoleTeacher
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleTeacher:
		return "teacher"
	case RoleAdmin:
		return "admin"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// roleFor translates a stored role into a session role. The switch is the
// single place an unknown stored value can surface, so it fails loudly.
func roleFor(r database.Role) (Role, error) {
	switch r {
	case database.RoleAdmin:
		return RoleAdmin, nil
	case database.RoleTeacher:
		return RoleTeacher, nil
	default:
		return RoleGuest, fmt.Errorf("unknown stored role %q", r)
	}
}

type Session struct {
	ID        string
	UserID    int64
	FullName  string
	Role      Role
	StartedAt time.Time
}

type Service struct {
	db     *database.DB
	logger *zap.Logger
}

func NewService(db *database.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Login validates the pair against the users table. A mismatch returns
// ok=false with no session and no error.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, bool, error) {
	user, ok, err := s.db.Authenticate(ctx, username, password)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, false, nil
	}
	role, err := roleFor(user.Role)
	if err != nil {
		return nil, false, err
	}
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		FullName:  user.FullName,
		Role:      role,
		StartedAt: time.Now(),
	}
	s.logger.Info("session started",
		zap.String("sessionID", session.ID),
		zap.Int64("userID", user.ID),
		zap.String("role", role.String()))
	return session, true, nil
}

// Guest builds a read-only session without touching the users table.
func (s *Service) Guest() *Session {
	session := &Session{
		ID:        uuid.New().String(),
		FullName:  "Guest",
		Role:      RoleGuest,
		StartedAt: time.Now(),
	}
	s.logger.Info("guest session started", zap.String("sessionID", session.ID))
	return session
}
