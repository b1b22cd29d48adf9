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

// StoreRepository manages persistence for stores and their activity settings.
type StoreRepository struct {
	db *sqlx.DB
}

// NewStoreRepository constructs a StoreRepository.
func NewStoreRepository(db *sqlx.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

var storeSortColumns = map[string]string{
	"name":       "s.name",
	"code":       "s.code",
	"region":     "s.region",
	"priority":   "s.priority",
	"created_at": "s.created_at",
}

// List returns stores matching the filter plus the unpaginated total.
func (r *StoreRepository) List(ctx context.Context, filter models.StoreFilter) ([]models.StoreDetail, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(s.name ILIKE $%d OR s.code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Region != "" {
		conditions = append(conditions, fmt.Sprintf("s.region = $%d", argIdx))
		args = append(args, filter.Region)
		argIdx++
	}
	if filter.SupervisorID != "" {
		conditions = append(conditions, fmt.Sprintf("s.supervisor_id = $%d", argIdx))
		args = append(args, filter.SupervisorID)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("s.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM stores s WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}

	sortCol, ok := storeSortColumns[filter.SortBy]
	if !ok {
		sortCol = "s.priority"
	}
	sortDir := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		sortDir = "DESC"
	}

	query := fmt.Sprintf(`SELECT s.id, s.code, s.name, s.region, s.supervisor_id, s.priority, s.active,
            s.created_at, s.updated_at, e.full_name AS supervisor_name
        FROM stores s
        LEFT JOIN employees e ON e.id = s.supervisor_id
        WHERE %s
        ORDER BY %s %s, s.id ASC
        LIMIT $%d OFFSET $%d`, where, sortCol, sortDir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	stores := []models.StoreDetail{}
	if err := r.db.SelectContext(ctx, &stores, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	return stores, total, nil
}

// FindByID fetches one store with its supervisor name.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*models.StoreDetail, error) {
	const query = `SELECT s.id, s.code, s.name, s.region, s.supervisor_id, s.priority, s.active,
            s.created_at, s.updated_at, e.full_name AS supervisor_name
        FROM stores s
        LEFT JOIN employees e ON e.id = s.supervisor_id
        WHERE s.id = $1`
	var store models.StoreDetail
	if err := r.db.GetContext(ctx, &store, query, id); err != nil {
		return nil, err
	}
	return &store, nil
}

// ExistsByCode reports whether a store with the code exists, excluding one ID.
func (r *StoreRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM stores WHERE code = $1 AND id <> $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, code, excludeID); err != nil {
		return false, fmt.Errorf("check store code: %w", err)
	}
	return exists, nil
}

// Create inserts a new store.
func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	store.CreatedAt = now
	store.UpdatedAt = now
	const query = `INSERT INTO stores (id, code, name, region, supervisor_id, priority, active, created_at, updated_at)
        VALUES (:id, :code, :name, :region, :supervisor_id, :priority, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, store); err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

// Update rewrites the mutable store fields.
func (r *StoreRepository) Update(ctx context.Context, store *models.Store) error {
	store.UpdatedAt = time.Now().UTC()
	const query = `UPDATE stores
        SET code = :code, name = :name, region = :region, supervisor_id = :supervisor_id,
            priority = :priority, active = :active, updated_at = :updated_at
        WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, store)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a store.
func (r *StoreRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE stores SET active = false, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate store: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate store: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveByPriority returns the scheduling roster: active stores ordered by
// priority, ties broken by store id for a stable order.
func (r *StoreRepository) ListActiveByPriority(ctx context.Context) ([]models.Store, error) {
	const query = `SELECT id, code, name, region, supervisor_id, priority, active, created_at, updated_at
        FROM stores WHERE active = true
        ORDER BY priority ASC, id ASC`
	stores := []models.Store{}
	if err := r.db.SelectContext(ctx, &stores, query); err != nil {
		return nil, fmt.Errorf("list active stores: %w", err)
	}
	return stores, nil
}

// CountActive counts active stores.
func (r *StoreRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM stores WHERE active = true`); err != nil {
		return 0, fmt.Errorf("count active stores: %w", err)
	}
	return count, nil
}

// GetSetting fetches a store's activity setting, or nil when none is stored.
func (r *StoreRepository) GetSetting(ctx context.Context, storeID string) (*models.ActivitySetting, error) {
	const query = `SELECT store_id, allowed_days, forbidden_days, updated_at
        FROM activity_settings WHERE store_id = $1`
	var setting models.ActivitySetting
	if err := r.db.GetContext(ctx, &setting, query, storeID); err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpsertSetting replaces a store's activity setting.
func (r *StoreRepository) UpsertSetting(ctx context.Context, setting *models.ActivitySetting) error {
	setting.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO activity_settings (store_id, allowed_days, forbidden_days, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (store_id) DO UPDATE
        SET allowed_days = EXCLUDED.allowed_days,
            forbidden_days = EXCLUDED.forbidden_days,
            updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		setting.StoreID, setting.AllowedDays, setting.ForbiddenDays, setting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert activity setting: %w", err)
	}
	return nil
}

// ListSettings returns every stored activity setting keyed by store ID.
func (r *StoreRepository) ListSettings(ctx context.Context) (map[string]models.ActivitySetting, error) {
	const query = `SELECT store_id, allowed_days, forbidden_days, updated_at FROM activity_settings`
	rows := []models.ActivitySetting{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list activity settings: %w", err)
	}
	settings := make(map[string]models.ActivitySetting, len(rows))
	for _, row := range rows {
		settings[row.StoreID] = row
	}
	return settings, nil
}
