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

// InspectionRepository manages scored store inspections and their items.
type InspectionRepository struct {
	db *sqlx.DB
}

// NewInspectionRepository constructs an InspectionRepository.
func NewInspectionRepository(db *sqlx.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

// List returns inspections matching the filter plus the unpaginated total.
func (r *InspectionRepository) List(ctx context.Context, filter models.InspectionFilter) ([]models.Inspection, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.StoreID != "" {
		conditions = append(conditions, fmt.Sprintf("store_id = $%d", argIdx))
		args = append(args, filter.StoreID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("visit_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("visit_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM inspections WHERE %s", where), args...); err != nil {
		return nil, 0, fmt.Errorf("count inspections: %w", err)
	}

	sortDir := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortDir = "ASC"
	}

	query := fmt.Sprintf(`SELECT id, store_id, inspector_id, visit_date, total_score, grade, note, created_at
        FROM inspections
        WHERE %s
        ORDER BY visit_date %s, id ASC
        LIMIT $%d OFFSET $%d`, where, sortDir, argIdx, argIdx+1)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	inspections := []models.Inspection{}
	if err := r.db.SelectContext(ctx, &inspections, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list inspections: %w", err)
	}
	return inspections, total, nil
}

// FindByID fetches one inspection together with its scored items.
func (r *InspectionRepository) FindByID(ctx context.Context, id string) (*models.InspectionDetail, error) {
	const query = `SELECT id, store_id, inspector_id, visit_date, total_score, grade, note, created_at
        FROM inspections WHERE id = $1`
	var detail models.InspectionDetail
	if err := r.db.GetContext(ctx, &detail.Inspection, query, id); err != nil {
		return nil, err
	}

	const itemsQuery = `SELECT id, inspection_id, category, criterion, score, weight
        FROM inspection_items WHERE inspection_id = $1 ORDER BY category ASC, criterion ASC`
	if err := r.db.SelectContext(ctx, &detail.Items, itemsQuery, id); err != nil {
		return nil, fmt.Errorf("list inspection items: %w", err)
	}
	return &detail, nil
}

// CreateWithItems inserts an inspection and its items in one transaction.
func (r *InspectionRepository) CreateWithItems(ctx context.Context, inspection *models.Inspection, items []models.InspectionItem) error {
	if inspection.ID == "" {
		inspection.ID = uuid.NewString()
	}
	inspection.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin inspection tx: %w", err)
	}
	defer tx.Rollback()

	const insert = `INSERT INTO inspections (id, store_id, inspector_id, visit_date, total_score, grade, note, created_at)
        VALUES (:id, :store_id, :inspector_id, :visit_date, :total_score, :grade, :note, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insert, inspection); err != nil {
		return fmt.Errorf("create inspection: %w", err)
	}

	const insertItem = `INSERT INTO inspection_items (id, inspection_id, category, criterion, score, weight)
        VALUES (:id, :inspection_id, :category, :criterion, :score, :weight)`
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.InspectionID = inspection.ID
		if _, err := tx.NamedExecContext(ctx, insertItem, item); err != nil {
			return fmt.Errorf("create inspection item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit inspection tx: %w", err)
	}
	return nil
}
