// Package catalog maintains the equipment and user catalogs. The referential
// guards live in the persistence layer; this layer normalizes input and keeps
// obviously bad rows out.
package catalog

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"labequip/database"
)

var (
	ErrEmptyName     = errors.New("name must not be empty")
	ErrUnknownStatus = errors.New("unknown equipment status")
	ErrUnknownRole   = errors.New("unknown role")
)

type Service struct {
	db     *database.DB
	logger *zap.Logger
}

func NewService(db *database.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) Equipment(ctx context.Context) ([]database.Equipment, error) {
	return s.db.AllEquipment(ctx)
}

func (s *Service) AvailableEquipment(ctx context.Context) ([]database.Equipment, error) {
	return s.db.AvailableEquipment(ctx)
}

func (s *Service) EquipmentByID(ctx context.Context, id int64) (*database.Equipment, bool, error) {
	return s.db.EquipmentByID(ctx, id)
}

// AddEquipment creates a catalog row. An empty status means available.
func (s *Service) AddEquipment(ctx context.Context, name, description string, status database.EquipmentStatus) (*database.Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if status == "" {
		status = database.EquipmentAvailable
	}
	if !status.Valid() {
		return nil, ErrUnknownStatus
	}
	eq := &database.Equipment{Name: name, Description: description, Status: status}
	if err := s.db.AddEquipment(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *Service) UpdateEquipment(ctx context.Context, id int64, name, description string, status database.EquipmentStatus) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !status.Valid() {
		return ErrUnknownStatus
	}
	eq := &database.Equipment{ID: id, Name: name, Description: description, Status: status}
	return s.db.UpdateEquipment(ctx, eq)
}

func (s *Service) DeleteEquipment(ctx context.Context, id int64) error {
	return s.db.DeleteEquipment(ctx, id)
}

func (s *Service) Users(ctx context.Context, excludeAdmin bool) ([]database.User, error) {
	return s.db.Users(ctx, excludeAdmin)
}

func (s *Service) UserByID(ctx context.Context, id int64) (*database.User, bool, error) {
	return s.db.UserByID(ctx, id)
}

func (s *Service) AddUser(ctx context.Context, username, fullName string, role database.Role, password string) (*database.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyName
	}
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	user := &database.User{Username: username, FullName: fullName, Role: role, Password: password}
	if err := s.db.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser rewrites an account. A nil password keeps the stored secret.
func (s *Service) UpdateUser(ctx context.Context, id int64, username, fullName string, role database.Role, password *string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyName
	}
	if !role.Valid() {
		return ErrUnknownRole
	}
	return s.db.UpdateUser(ctx, id, username, fullName, role, password)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.db.DeleteUser(ctx, id)
}
