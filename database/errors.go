package database

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicate signals a username or equipment name collision.
	ErrDuplicate = errors.New("duplicate name")

	// ErrAdminProtected signals an attempt to delete an admin account.
	// Admin rows are never deletable, referenced or not.
	ErrAdminProtected = errors.New("admin accounts cannot be deleted")
)

// ReferencedError blocks deletion of a row that existing requests point at.
type ReferencedError struct {
	Entity string
	Count  int
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("%s is referenced by %d request(s); remove them first", e.Entity, e.Count)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
