// Package leads persists contact requests captured by the website and the
// chat widget, and backs the admin panel's CRUD over them.
package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"propertychat/internal/models"
)

// Service provides lead persistence over database/sql.
type Service struct {
	db *sql.DB
}

// NewService constructs the lead service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

var validStatuses = map[models.LeadStatus]bool{
	models.LeadStatusNew:       true,
	models.LeadStatusContacted: true,
	models.LeadStatusQualified: true,
	models.LeadStatusClosed:    true,
}

// Create inserts a new lead and returns the stored record.
func (s *Service) Create(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	if lead.Name == "" {
		return nil, errors.New("name is required")
	}
	if lead.Email == "" {
		return nil, errors.New("email is required")
	}
	if lead.Source == "" {
		lead.Source = "website"
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (name, email, phone, message, source, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.Name, lead.Email, lead.Phone, lead.Message, lead.Source, lead.Status, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("lead id: %w", err)
	}
	lead.ID = id
	lead.CreatedAt = now
	lead.UpdatedAt = now
	return &lead, nil
}

// List returns all leads, newest first.
func (s *Service) List(ctx context.Context) ([]models.Lead, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone, message, source, status, created_at, updated_at FROM leads ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// Get returns one lead by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Lead, error) {
	var l models.Lead
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, message, source, status, created_at, updated_at FROM leads WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return &l, nil
}

// UpdateStatus moves a lead through the follow-up funnel.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status models.LeadStatus) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid lead status %q", status)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
