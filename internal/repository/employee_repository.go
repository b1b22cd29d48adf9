package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/chainworks/retail-ops-api/internal/models"
)

// EmployeeRepository manages persistence for employees.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs an EmployeeRepository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

var employeeSortColumns = map[string]string{
	"full_name":  "e.full_name",
	"nik":        "e.nik",
	"created_at": "e.created_at",
}

// List returns employees matching the filter plus the unpaginated total.
func (r *EmployeeRepository) List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDetail, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.full_name ILIKE $%d OR e.nik ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.StoreID != "" {
		conditions = append(conditions, fmt.Sprintf("e.store_id = $%d", argIdx))
		args = append(args, filter.StoreID)
		argIdx++
	}
	if filter.Supervisor != nil {
		conditions = append(conditions, fmt.Sprintf("e.is_supervisor = $%d", argIdx))
		args = append(args, *filter.Supervisor)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("e.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", where), args...); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	sortCol, ok := employeeSortColumns[filter.SortBy]
	if !ok {
		sortCol = "e.full_name"
	}
	sortDir := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		sortDir = "DESC"
	}

	query := fmt.Sprintf(`SELECT e.id, e.nik, e.full_name, e.role_title, e.store_id, e.is_supervisor, e.active,
            e.created_at, e.updated_at, s.name AS store_name
        FROM employees e
        LEFT JOIN stores s ON s.id = e.store_id
        WHERE %s
        ORDER BY %s %s, e.id ASC
        LIMIT $%d OFFSET $%d`, where, sortCol, sortDir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	employees := []models.EmployeeDetail{}
	if err := r.db.SelectContext(ctx, &employees, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	return employees, total, nil
}

// FindByID fetches one employee with its store name.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*models.EmployeeDetail, error) {
	const query = `SELECT e.id, e.nik, e.full_name, e.role_title, e.store_id, e.is_supervisor, e.active,
            e.created_at, e.updated_at, s.name AS store_name
        FROM employees e
        LEFT JOIN stores s ON s.id = e.store_id
        WHERE e.id = $1`
	var employee models.EmployeeDetail
	if err := r.db.GetContext(ctx, &employee, query, id); err != nil {
		return nil, err
	}
	return &employee, nil
}

// ExistsByNIK reports whether an employee with the NIK exists, excluding one ID.
func (r *EmployeeRepository) ExistsByNIK(ctx context.Context, nik, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM employees WHERE nik = $1 AND id <> $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, nik, excludeID); err != nil {
		return false, fmt.Errorf("check employee nik: %w", err)
	}
	return exists, nil
}

// Create inserts a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	const query = `INSERT INTO employees (id, nik, full_name, role_title, store_id, is_supervisor, active, created_at, updated_at)
        VALUES (:id, :nik, :full_name, :role_title, :store_id, :is_supervisor, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, employee); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// Update rewrites the mutable employee fields.
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	employee.UpdatedAt = time.Now().UTC()
	const query = `UPDATE employees
        SET nik = :nik, full_name = :full_name, role_title = :role_title, store_id = :store_id,
            is_supervisor = :is_supervisor, active = :active, updated_at = :updated_at
        WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, employee)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes an employee.
func (r *EmployeeRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE employees SET active = false, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActive counts active employees.
func (r *EmployeeRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM employees WHERE active = true`); err != nil {
		return 0, fmt.Errorf("count active employees: %w", err)
	}
	return count, nil
}
