package database

import (
	"time"

	"github.com/uptrace/bun"
)

// Role discriminates the two persisted account kinds. Guest access never
// touches the users table and has no role value here.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentInUse       EquipmentStatus = "in_use"
	EquipmentMaintenance EquipmentStatus = "maintenance"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentInUse, EquipmentMaintenance:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestCompleted:
		return true
	}
	return false
}

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64  `bun:",pk,autoincrement"`
	Username      string `bun:",unique,notnull"`
	FullName      string `bun:",notnull"`
	Role          Role   `bun:",notnull"`
	Password      string `bun:",notnull"`

	Requests []*Request `bun:"rel:has-many,join:id=teacher_id"`
}

type Equipment struct {
	bun.BaseModel `bun:"table:equipment,alias:e"`
	ID            int64  `bun:",pk,autoincrement"`
	Name          string `bun:",unique,notnull"`
	Description   string
	Status        EquipmentStatus `bun:",notnull,default:'available'"`

	Requests []*Request `bun:"rel:has-many,join:id=equipment_id"`
}

type Request struct {
	bun.BaseModel   `bun:"table:requests,alias:r"`
	ID              int64         `bun:",pk,autoincrement"`
	TeacherID       int64         `bun:",notnull"`
	EquipmentID     int64         `bun:",notnull"`
	StudentGroup    string        `bun:",notnull"`
	Purpose         string        `bun:",notnull"`
	DesiredDate     string        `bun:",notnull"`
	DesiredTimeSlot string        `bun:",notnull"`
	Status          RequestStatus `bun:",notnull,default:'pending'"`
	AdminNotes      string        `bun:",nullzero"`
	CreatedAt       time.Time     `bun:",nullzero,notnull,default:current_timestamp"`

	Requester *User      `bun:"rel:belongs-to,join:teacher_id=id"`
	Equipment *Equipment `bun:"rel:belongs-to,join:equipment_id=id"`
}
