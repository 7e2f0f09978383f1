package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/domain/repository"
)

type disasterRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDisasterRepository creates the read-only disaster store.
func NewDisasterRepository(db *DB, logger *zap.Logger) repository.DisasterRepository {
	return &disasterRepository{
		db:     db,
		logger: logger,
	}
}

type disasterRow struct {
	ID             uuid.UUID      `db:"id"`
	TypeOfDisaster string         `db:"type_of_disaster"`
	Timestamp      time.Time      `db:"timestamp"`
	Severity       string         `db:"severity"`
	Status         string         `db:"status"`
	Street         string         `db:"street"`
	City           string         `db:"city"`
	State          string         `db:"state"`
	PostalCode     string         `db:"postal_code"`
	Country        string         `db:"country"`
	Longitude      *float64       `db:"longitude"`
	Latitude       *float64       `db:"latitude"`
	Description    string         `db:"description"`
	AgencyIDs      pq.StringArray `db:"agency_ids"`
}

func (r *disasterRow) toDomain() (domain.Disaster, error) {
	disaster := domain.Disaster{
		ID:             r.ID,
		TypeOfDisaster: r.TypeOfDisaster,
		Timestamp:      r.Timestamp,
		Severity:       r.Severity,
		Status:         r.Status,
		Address: domain.Address{
			Street:     r.Street,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
			Country:    r.Country,
		},
		Description: r.Description,
	}
	if r.Longitude != nil && r.Latitude != nil {
		disaster.Location = domain.NewGeoPoint(*r.Longitude, *r.Latitude)
	}

	disaster.Agencies = make([]uuid.UUID, 0, len(r.AgencyIDs))
	for _, raw := range r.AgencyIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return domain.Disaster{}, fmt.Errorf("parse agency id %q: %w", raw, err)
		}
		disaster.Agencies = append(disaster.Agencies, id)
	}

	return disaster, nil
}

// FindByAgencyID returns every disaster the agency participates in, via the
// disaster_agencies join table.
func (r *disasterRepository) FindByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]domain.Disaster, error) {
	query := `
		SELECT d.id, d.type_of_disaster, d.timestamp, d.severity, d.status,
			d.street, d.city, d.state, d.postal_code, d.country,
			d.longitude, d.latitude, d.description,
			ARRAY(
				SELECT da2.agency_id::text
				FROM disaster_agencies da2
				WHERE da2.disaster_id = d.id
			) AS agency_ids
		FROM disasters d
		JOIN disaster_agencies da ON da.disaster_id = d.id
		WHERE da.agency_id = $1
		ORDER BY d.timestamp DESC
	`

	var rows []disasterRow
	if err := r.db.SelectContext(ctx, &rows, query, agencyID); err != nil {
		r.logger.Error("failed to query disasters by agency", zap.Error(err))
		return nil, fmt.Errorf("query disasters by agency: %w", err)
	}

	disasters := make([]domain.Disaster, 0, len(rows))
	for i := range rows {
		disaster, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		disasters = append(disasters, disaster)
	}

	return disasters, nil
}
