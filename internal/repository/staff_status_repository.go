package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/chainworks/retail-ops-api/internal/models"
)

// StaffStatusRepository manages monthly staff confirmations and month locks.
type StaffStatusRepository struct {
	db *sqlx.DB
}

// NewStaffStatusRepository constructs a StaffStatusRepository.
func NewStaffStatusRepository(db *sqlx.DB) *StaffStatusRepository {
	return &StaffStatusRepository{db: db}
}

// ListByMonth returns every confirmation recorded for a month.
func (r *StaffStatusRepository) ListByMonth(ctx context.Context, month string) ([]models.StaffStatusDetail, error) {
	const query = `SELECT ss.id, ss.employee_id, ss.month, ss.status, ss.note, ss.confirmed_by, ss.confirmed_at,
            e.full_name AS employee_name, e.store_id
        FROM staff_statuses ss
        JOIN employees e ON e.id = ss.employee_id
        WHERE ss.month = $1
        ORDER BY e.full_name ASC`
	statuses := []models.StaffStatusDetail{}
	if err := r.db.SelectContext(ctx, &statuses, query, month); err != nil {
		return nil, fmt.Errorf("list staff statuses: %w", err)
	}
	return statuses, nil
}

// Upsert writes one employee's confirmation for a month. Re-confirming the
// same month overwrites the previous value.
func (r *StaffStatusRepository) Upsert(ctx context.Context, status *models.StaffStatus) error {
	if status.ID == "" {
		status.ID = uuid.NewString()
	}
	status.ConfirmedAt = time.Now().UTC()
	const query = `INSERT INTO staff_statuses (id, employee_id, month, status, note, confirmed_by, confirmed_at)
        VALUES (:id, :employee_id, :month, :status, :note, :confirmed_by, :confirmed_at)
        ON CONFLICT (employee_id, month) DO UPDATE
        SET status = EXCLUDED.status,
            note = EXCLUDED.note,
            confirmed_by = EXCLUDED.confirmed_by,
            confirmed_at = EXCLUDED.confirmed_at`
	if _, err := r.db.NamedExecContext(ctx, query, status); err != nil {
		return fmt.Errorf("upsert staff status: %w", err)
	}
	return nil
}

// GetLock returns a month's lock, or nil when the month is still open.
func (r *StaffStatusRepository) GetLock(ctx context.Context, month string) (*models.MonthLock, error) {
	const query = `SELECT month, finalized_by, finalized_at FROM month_locks WHERE month = $1`
	var lock models.MonthLock
	if err := r.db.GetContext(ctx, &lock, query, month); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get month lock: %w", err)
	}
	return &lock, nil
}

// CreateLock freezes a month.
func (r *StaffStatusRepository) CreateLock(ctx context.Context, lock *models.MonthLock) error {
	lock.FinalizedAt = time.Now().UTC()
	const query = `INSERT INTO month_locks (month, finalized_by, finalized_at)
        VALUES (:month, :finalized_by, :finalized_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lock); err != nil {
		return fmt.Errorf("create month lock: %w", err)
	}
	return nil
}

// CountByStatus returns the number of confirmations per status for a month.
func (r *StaffStatusRepository) CountByStatus(ctx context.Context, month string) (map[models.StaffStatusValue]int, error) {
	const query = `SELECT status, COUNT(*) AS n FROM staff_statuses WHERE month = $1 GROUP BY status`
	rows := []struct {
		Status models.StaffStatusValue `db:"status"`
		N      int                     `db:"n"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, month); err != nil {
		return nil, fmt.Errorf("count staff statuses: %w", err)
	}
	counts := make(map[models.StaffStatusValue]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.N
	}
	return counts, nil
}

// CountConfirmed counts how many employees have a confirmation for a month.
func (r *StaffStatusRepository) CountConfirmed(ctx context.Context, month string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM staff_statuses WHERE month = $1`, month); err != nil {
		return 0, fmt.Errorf("count confirmed: %w", err)
	}
	return count, nil
}
