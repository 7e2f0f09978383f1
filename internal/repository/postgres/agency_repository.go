package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/domain/repository"
	"github.com/agency-service/internal/pkg/errors"
)

const uniqueViolationCode = "23505"

type agencyRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAgencyRepository creates the Postgres-backed agency store.
func NewAgencyRepository(db *DB, logger *zap.Logger) repository.AgencyRepository {
	return &agencyRepository{
		db:     db,
		logger: logger,
	}
}

// agencyRow is the flat scan target for the agencies table.
type agencyRow struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Street       string         `db:"street"`
	City         string         `db:"city"`
	State        string         `db:"state"`
	PostalCode   string         `db:"postal_code"`
	Country      string         `db:"country"`
	PhoneNumber  string         `db:"phone_number"`
	Expertise    pq.StringArray `db:"expertise"`
	Longitude    *float64       `db:"longitude"`
	Latitude     *float64       `db:"latitude"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r *agencyRow) toDomain() *domain.Agency {
	agency := &domain.Agency{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Contact: domain.Address{
			Street:     r.Street,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
			Country:    r.Country,
		},
		PhoneNumber: r.PhoneNumber,
		Expertise:   []string(r.Expertise),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Longitude != nil && r.Latitude != nil {
		agency.Location = domain.NewGeoPoint(*r.Longitude, *r.Latitude)
	}
	return agency
}

const agencyColumns = `id, name, email, password_hash, street, city, state,
	postal_code, country, phone_number, expertise, longitude, latitude,
	created_at, updated_at`

func (r *agencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	query := `
		INSERT INTO agencies (
			id, name, email, password_hash, street, city, state,
			postal_code, country, phone_number, expertise,
			longitude, latitude, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	var lon, lat *float64
	if agency.Location != nil {
		lon, lat = &agency.Location.Coordinates[0], &agency.Location.Coordinates[1]
	}

	_, err := r.db.ExecContext(ctx, query,
		agency.ID,
		agency.Name,
		agency.Email,
		agency.PasswordHash,
		agency.Contact.Street,
		agency.Contact.City,
		agency.Contact.State,
		agency.Contact.PostalCode,
		agency.Contact.Country,
		agency.PhoneNumber,
		pq.Array(agency.Expertise),
		lon,
		lat,
		agency.CreatedAt,
		agency.UpdatedAt,
	)
	if err != nil {
		// The unique index on email is the backstop for the
		// check-then-insert race between concurrent registrations.
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errors.ErrEmailAlreadyRegistered
		}
		r.logger.Error("failed to insert agency", zap.Error(err))
		return fmt.Errorf("insert agency: %w", err)
	}

	return nil
}

func (r *agencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	return r.getOne(ctx, fmt.Sprintf(`SELECT %s FROM agencies WHERE id = $1`, agencyColumns), id)
}

func (r *agencyRepository) GetByEmail(ctx context.Context, email string) (*domain.Agency, error) {
	return r.getOne(ctx, fmt.Sprintf(`SELECT %s FROM agencies WHERE email = $1`, agencyColumns), email)
}

// GetByName resolves the oldest matching agency. Names are not unique; the
// insertion-order tie-break keeps the lookup deterministic when they collide.
func (r *agencyRepository) GetByName(ctx context.Context, name string) (*domain.Agency, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM agencies WHERE name = $1 ORDER BY created_at, id LIMIT 1`,
		agencyColumns,
	)
	return r.getOne(ctx, query, name)
}

func (r *agencyRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Agency, error) {
	var row agencyRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to query agency", zap.Error(err))
		return nil, fmt.Errorf("query agency: %w", err)
	}
	return row.toDomain(), nil
}

func (r *agencyRepository) Update(ctx context.Context, id uuid.UUID, update domain.AgencyUpdate) (*domain.Agency, error) {
	setClauses := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Email != nil {
		appendSet("email", *update.Email)
	}
	if update.Contact != nil {
		appendSet("street", update.Contact.Street)
		appendSet("city", update.Contact.City)
		appendSet("state", update.Contact.State)
		appendSet("postal_code", update.Contact.PostalCode)
		appendSet("country", update.Contact.Country)
	}
	if update.PhoneNumber != nil {
		appendSet("phone_number", *update.PhoneNumber)
	}
	if update.Expertise != nil {
		appendSet("expertise", pq.Array(*update.Expertise))
	}
	if update.Location != nil {
		appendSet("longitude", update.Location.Coordinates[0])
		appendSet("latitude", update.Location.Coordinates[1])
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE agencies SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "),
		len(args),
		agencyColumns,
	)

	var row agencyRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrAgencyNotFound
		}
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, errors.ErrEmailAlreadyRegistered
		}
		r.logger.Error("failed to update agency", zap.Error(err))
		return nil, fmt.Errorf("update agency: %w", err)
	}

	return row.toDomain(), nil
}

func (r *agencyRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE agencies SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("failed to update password", zap.Error(err))
		return fmt.Errorf("update password: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows affected: %w", err)
	}
	if affected == 0 {
		return errors.ErrAgencyNotFound
	}

	return nil
}

func (r *agencyRepository) ListLocations(ctx context.Context) ([]domain.AgencyLocation, error) {
	// The hash and phone number stay out of the projection entirely.
	query := `
		SELECT id, name, email, street, city, state, postal_code, country,
			expertise, longitude, latitude, created_at, updated_at
		FROM agencies
		ORDER BY created_at
	`

	var rows []agencyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("failed to list agency locations", zap.Error(err))
		return nil, fmt.Errorf("list agency locations: %w", err)
	}

	locations := make([]domain.AgencyLocation, 0, len(rows))
	for i := range rows {
		agency := rows[i].toDomain()
		locations = append(locations, domain.AgencyLocation{
			ID:        agency.ID,
			Name:      agency.Name,
			Email:     agency.Email,
			Contact:   agency.Contact,
			Expertise: agency.Expertise,
			Location:  agency.Location,
		})
	}

	return locations, nil
}
