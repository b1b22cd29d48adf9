package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/chainworks/retail-ops-api/internal/models"
)

// CampaignRepository manages campaigns, calendar events and persisted
// schedule assignments.
type CampaignRepository struct {
	db *sqlx.DB
}

// NewCampaignRepository constructs a CampaignRepository.
func NewCampaignRepository(db *sqlx.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// List returns campaigns newest first.
func (r *CampaignRepository) List(ctx context.Context, page, pageSize int) ([]models.Campaign, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM campaigns`); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}
	const query = `SELECT id, name, start_date, end_date, status, created_at, updated_at
        FROM campaigns ORDER BY start_date DESC, id ASC LIMIT $1 OFFSET $2`
	campaigns := []models.Campaign{}
	if err := r.db.SelectContext(ctx, &campaigns, query, pageSize, (page-1)*pageSize); err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, total, nil
}

// FindByID fetches one campaign.
func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*models.Campaign, error) {
	const query = `SELECT id, name, start_date, end_date, status, created_at, updated_at
        FROM campaigns WHERE id = $1`
	var campaign models.Campaign
	if err := r.db.GetContext(ctx, &campaign, query, id); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Create inserts a new campaign in DRAFT status.
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if campaign.ID == "" {
		campaign.ID = uuid.NewString()
	}
	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusDraft
	}
	now := time.Now().UTC()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	const query = `INSERT INTO campaigns (id, name, start_date, end_date, status, created_at, updated_at)
        VALUES (:id, :name, :start_date, :end_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, campaign); err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

// UpdateStatus moves a campaign to a new lifecycle status.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) error {
	const query = `UPDATE campaigns SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEventsBetween returns calendar events inside [from, to].
func (r *CampaignRepository) ListEventsBetween(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	const query = `SELECT id, event_date, title, is_blocked, created_by, created_at
        FROM calendar_events WHERE event_date BETWEEN $1 AND $2
        ORDER BY event_date ASC`
	events := []models.CalendarEvent{}
	if err := r.db.SelectContext(ctx, &events, query, from, to); err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}

// ListBlockedDates returns blocked dates inside [from, to] keyed "2006-01-02".
func (r *CampaignRepository) ListBlockedDates(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	const query = `SELECT event_date FROM calendar_events
        WHERE is_blocked = true AND event_date BETWEEN $1 AND $2`
	dates := []time.Time{}
	if err := r.db.SelectContext(ctx, &dates, query, from, to); err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	blocked := make(map[string]bool, len(dates))
	for _, d := range dates {
		blocked[d.Format("2006-01-02")] = true
	}
	return blocked, nil
}

// CreateEvent inserts a calendar event.
func (r *CampaignRepository) CreateEvent(ctx context.Context, event *models.CalendarEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO calendar_events (id, event_date, title, is_blocked, created_by, created_at)
        VALUES (:id, :event_date, :title, :is_blocked, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create calendar event: %w", err)
	}
	return nil
}

// DeleteEvent removes a calendar event.
func (r *CampaignRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAssignments atomically replaces a campaign's schedule with the given
// assignments. Either every row lands or none do.
func (r *CampaignRepository) ReplaceAssignments(ctx context.Context, campaignID string, assignments []models.ScheduleAssignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_assignments WHERE campaign_id = $1`, campaignID); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}

	now := time.Now().UTC()
	const insert = `INSERT INTO schedule_assignments (id, campaign_id, store_id, activity_date, created_at, updated_at)
        VALUES (:id, :campaign_id, :store_id, :activity_date, :created_at, :updated_at)`
	for i := range assignments {
		a := &assignments[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.CampaignID = campaignID
		a.CreatedAt = now
		a.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insert, a); err != nil {
			return fmt.Errorf("insert assignment for store %s: %w", a.StoreID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule tx: %w", err)
	}
	return nil
}

// ListAssignments returns a campaign's persisted schedule with store context.
func (r *CampaignRepository) ListAssignments(ctx context.Context, campaignID string) ([]models.ScheduleAssignmentDetail, error) {
	const query = `SELECT a.id, a.campaign_id, a.store_id, a.activity_date, a.created_at, a.updated_at,
            s.name AS store_name, s.supervisor_id
        FROM schedule_assignments a
        JOIN stores s ON s.id = a.store_id
        WHERE a.campaign_id = $1
        ORDER BY a.activity_date ASC, s.name ASC`
	assignments := []models.ScheduleAssignmentDetail{}
	if err := r.db.SelectContext(ctx, &assignments, query, campaignID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// DeleteAssignment removes a single persisted placement.
func (r *CampaignRepository) DeleteAssignment(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedule_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
