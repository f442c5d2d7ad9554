package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

// statusRankExpr orders the admin listing: pending work first, then the
// decided states, anything unexpected last.
const statusRankExpr = `CASE r.status
	WHEN 'pending' THEN 1
	WHEN 'approved' THEN 2
	WHEN 'rejected' THEN 3
	WHEN 'completed' THEN 4
	ELSE 5 END`

// DB is the single process-wide store handle. It is constructed once by Open
// and passed explicitly to every service that needs it.
type DB struct {
	sqldb  *sql.DB
	bun    *bun.DB
	logger *zap.Logger
}

// Open opens (or creates) the SQLite store at path, creates the tables and
// seeds the bootstrap rows when the users table is empty.
func Open(path string, logger *zap.Logger) (*DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	d := &DB{
		sqldb:  sqldb,
		bun:    bun.NewDB(sqldb, sqlitedialect.New()),
		logger: logger,
	}

	ctx := context.Background()
	if err := d.initTables(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}
	if err := d.seed(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.sqldb == nil {
		return nil
	}
	return d.sqldb.Close()
}

func (d *DB) initTables(ctx context.Context) error {
	models := []any{
		(*User)(nil),
		(*Equipment)(nil),
		(*Request)(nil),
	}
	for _, model := range models {
		if _, err := d.bun.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Authenticate matches username and password exactly, both case-sensitive.
// A mismatch is reported as found=false, not as an error.
func (d *DB) Authenticate(ctx context.Context, username, password string) (*User, bool, error) {
	user := new(User)
	err := d.bun.NewSelect().Model(user).
		Where("username = ?", username).
		Where("password = ?", password).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("authenticate %q: %w", username, err)
	}
	return user, true, nil
}

func (d *DB) AvailableEquipment(ctx context.Context) ([]Equipment, error) {
	var items []Equipment
	err := d.bun.NewSelect().Model(&items).
		Where("status = ?", EquipmentAvailable).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available equipment: %w", err)
	}
	return items, nil
}

func (d *DB) AllEquipment(ctx context.Context) ([]Equipment, error) {
	var items []Equipment
	err := d.bun.NewSelect().Model(&items).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return items, nil
}

func (d *DB) EquipmentByID(ctx context.Context, id int64) (*Equipment, bool, error) {
	eq := new(Equipment)
	err := d.bun.NewSelect().Model(eq).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get equipment %d: %w", id, err)
	}
	return eq, true, nil
}

func (d *DB) AddEquipment(ctx context.Context, eq *Equipment) error {
	if eq.Status == "" {
		eq.Status = EquipmentAvailable
	}
	_, err := d.bun.NewInsert().Model(eq).Exec(ctx)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("add equipment: %w", err)
	}
	d.logger.Info("equipment added", zap.Int64("id", eq.ID), zap.String("name", eq.Name))
	return nil
}

func (d *DB) UpdateEquipment(ctx context.Context, eq *Equipment) error {
	_, err := d.bun.NewUpdate().Model(eq).
		Column("name", "description", "status").
		WherePK().
		Exec(ctx)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update equipment %d: %w", eq.ID, err)
	}
	return nil
}

// DeleteEquipment refuses to remove a row any request still points at.
// Check and delete run in one transaction to close the check-then-act gap.
func (d *DB) DeleteEquipment(ctx context.Context, id int64) error {
	return d.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().Model((*Request)(nil)).
			Where("equipment_id = ?", id).
			Count(ctx)
		if err != nil {
			return fmt.Errorf("count referencing requests: %w", err)
		}
		if count > 0 {
			return &ReferencedError{Entity: "equipment", Count: count}
		}
		if _, err := tx.NewDelete().Model((*Equipment)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete equipment %d: %w", id, err)
		}
		return nil
	})
}

// CreateRequest inserts a new request. Status always starts out pending
// regardless of what the caller put in the model; the new id is written back
// into req.
func (d *DB) CreateRequest(ctx context.Context, req *Request) error {
	req.Status = RequestPending
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	if _, err := d.bun.NewInsert().Model(req).Exec(ctx); err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	d.logger.Info("request created",
		zap.Int64("id", req.ID),
		zap.Int64("teacherID", req.TeacherID),
		zap.Int64("equipmentID", req.EquipmentID))
	return nil
}

// RequestsForRequester lists one instructor's requests, newest desired date
// first, with the equipment relation populated.
func (d *DB) RequestsForRequester(ctx context.Context, teacherID int64) ([]Request, error) {
	var reqs []Request
	err := d.bun.NewSelect().Model(&reqs).
		Relation("Equipment").
		Where("r.teacher_id = ?", teacherID).
		OrderExpr("r.desired_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests for teacher %d: %w", teacherID, err)
	}
	return reqs, nil
}

// AllRequests lists every request with requester and equipment populated,
// ordered by status rank then desired date ascending.
func (d *DB) AllRequests(ctx context.Context) ([]Request, error) {
	var reqs []Request
	err := d.bun.NewSelect().Model(&reqs).
		Relation("Requester").
		Relation("Equipment").
		OrderExpr(statusRankExpr).
		OrderExpr("r.desired_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all requests: %w", err)
	}
	return reqs, nil
}

// UpdateRequestStatus overwrites the status. The note is only touched when
// one is supplied; a nil note leaves whatever was there before.
func (d *DB) UpdateRequestStatus(ctx context.Context, id int64, status RequestStatus, note *string) error {
	q := d.bun.NewUpdate().Model((*Request)(nil)).
		Set("status = ?", status).
		Where("id = ?", id)
	if note != nil {
		q = q.Set("admin_notes = ?", *note)
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("update request %d status: %w", id, err)
	}
	d.logger.Info("request status updated",
		zap.Int64("id", id),
		zap.String("status", string(status)),
		zap.Bool("noteChanged", note != nil))
	return nil
}

func (d *DB) Users(ctx context.Context, excludeAdmin bool) ([]User, error) {
	var users []User
	q := d.bun.NewSelect().Model(&users).Order("full_name ASC")
	if excludeAdmin {
		q = q.Where("role != ?", RoleAdmin)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (d *DB) UserByID(ctx context.Context, id int64) (*User, bool, error) {
	user := new(User)
	err := d.bun.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, true, nil
}

func (d *DB) AddUser(ctx context.Context, user *User) error {
	_, err := d.bun.NewInsert().Model(user).Exec(ctx)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	d.logger.Info("user added", zap.Int64("id", user.ID), zap.String("username", user.Username))
	return nil
}

// UpdateUser rewrites the account fields. The password follows the same
// asymmetric contract as request notes: nil leaves the stored one alone.
func (d *DB) UpdateUser(ctx context.Context, id int64, username, fullName string, role Role, password *string) error {
	q := d.bun.NewUpdate().Model((*User)(nil)).
		Set("username = ?", username).
		Set("full_name = ?", fullName).
		Set("role = ?", role).
		Where("id = ?", id)
	if password != nil {
		q = q.Set("password = ?", *password)
	}
	_, err := q.Exec(ctx)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

// DeleteUser removes an account. Admin rows are refused unconditionally,
// before the reference guard even runs. Deleting an id that does not exist
// is a no-op.
func (d *DB) DeleteUser(ctx context.Context, id int64) error {
	return d.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user := new(User)
		err := tx.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get user %d: %w", id, err)
		}
		if user.Role == RoleAdmin {
			return ErrAdminProtected
		}
		count, err := tx.NewSelect().Model((*Request)(nil)).
			Where("teacher_id = ?", id).
			Count(ctx)
		if err != nil {
			return fmt.Errorf("count referencing requests: %w", err)
		}
		if count > 0 {
			return &ReferencedError{Entity: "user", Count: count}
		}
		if _, err := tx.NewDelete().Model((*User)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
}

type statusCount struct {
	Status string `bun:"status"`
	Count  int    `bun:"count"`
}

func (d *DB) EquipmentStatusCounts(ctx context.Context) (map[EquipmentStatus]int, error) {
	var rows []statusCount
	err := d.bun.NewSelect().Model((*Equipment)(nil)).
		ColumnExpr("status").
		ColumnExpr("count(*) AS count").
		GroupExpr("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("equipment status counts: %w", err)
	}
	counts := make(map[EquipmentStatus]int, len(rows))
	for _, row := range rows {
		counts[EquipmentStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (d *DB) RequestStatusCounts(ctx context.Context) (map[RequestStatus]int, error) {
	var rows []statusCount
	err := d.bun.NewSelect().Model((*Request)(nil)).
		ColumnExpr("status").
		ColumnExpr("count(*) AS count").
		GroupExpr("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("request status counts: %w", err)
	}
	counts := make(map[RequestStatus]int, len(rows))
	for _, row := range rows {
		counts[RequestStatus(row.Status)] = row.Count
	}
	return counts, nil
}
