package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/domain/repository"
	"github.com/agency-service/internal/pkg/auth"
	"github.com/agency-service/internal/pkg/errors"
	"github.com/agency-service/internal/pkg/utils"
	"github.com/agency-service/internal/usecase/dto"
)

// AgencyUseCase implements the agency lifecycle: registration, login,
// password change and profile update.
type AgencyUseCase struct {
	agencyRepo repository.AgencyRepository
	geocoder   repository.GeocodingRepository
	hasher     auth.PasswordHasher
	tokens     auth.TokenIssuer
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

func NewAgencyUseCase(
	agencyRepo repository.AgencyRepository,
	geocoder repository.GeocodingRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *AgencyUseCase {
	return &AgencyUseCase{
		agencyRepo: agencyRepo,
		geocoder:   geocoder,
		hasher:     hasher,
		tokens:     tokens,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// Register creates a new agency account. The contact address must geocode
// to at least one candidate before anything is written; a geocoding failure
// aborts the whole operation.
func (uc *AgencyUseCase) Register(ctx context.Context, req dto.RegisterAgencyRequest) (*dto.AgencyResponse, error) {
	existing, err := uc.agencyRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyRegistered
	}

	location, err := uc.resolveContact(ctx, req.Contact)
	if err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	now := time.Now().UTC()
	agency := &domain.Agency{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Contact: domain.Address{
			Street:     req.Contact.Street,
			City:       req.Contact.City,
			State:      req.Contact.State,
			PostalCode: req.Contact.PostalCode,
			Country:    req.Contact.Country,
		},
		PhoneNumber: req.PhoneNumber,
		Expertise:   req.Expertise,
		Location:    location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The repository converts a unique-index violation into the conflict
	// error, so a concurrent registration with the same email cannot slip
	// past the pre-check above.
	if err := uc.agencyRepo.Create(ctx, agency); err != nil {
		return nil, err
	}

	uc.logger.Info("Agency registered",
		zap.String("agency_id", agency.ID.String()),
		zap.String("name", agency.Name))

	uc.publishEvent(ctx, domain.EventAgencyRegistered, agency)

	return dto.NewAgencyResponse(agency), nil
}

// Login authenticates by email and password and issues a session token
// bound to the agency id. Unknown email and wrong password produce the same
// error so responses cannot be used to probe for registered accounts.
func (uc *AgencyUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	agency, err := uc.agencyRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := uc.hasher.Compare(agency.PasswordHash, req.Password); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(agency.ID)
	if err != nil {
		uc.logger.Error("Failed to issue session token",
			zap.String("agency_id", agency.ID.String()),
			zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &dto.LoginResponse{Token: token}, nil
}

// ChangePassword replaces the stored hash after verifying the old password.
// Previously issued tokens stay valid until natural expiry.
func (uc *AgencyUseCase) ChangePassword(ctx context.Context, callerID uuid.UUID, req dto.ChangePasswordRequest) error {
	if callerID == uuid.Nil {
		return errors.ErrUnauthorized
	}

	agency, err := uc.agencyRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if agency == nil {
		return errors.ErrAgencyNotFound
	}

	if err := uc.hasher.Compare(agency.PasswordHash, req.OldPassword); err != nil {
		return errors.ErrInvalidCredentials
	}

	hash, err := uc.hasher.Hash(req.NewPassword)
	if err != nil {
		uc.logger.Error("Failed to hash new password", zap.Error(err))
		return errors.ErrInternalServer
	}

	if err := uc.agencyRepo.UpdatePassword(ctx, agency.ID, hash); err != nil {
		return err
	}

	uc.logger.Info("Agency password changed",
		zap.String("agency_id", agency.ID.String()))

	uc.publishEvent(ctx, domain.EventAgencyPasswordChanged, agency)

	return nil
}

// UpdateProfile applies fill-if-provided changes to the caller's agency.
// A supplied contact is re-geocoded before any write; a supplied explicit
// location must be a valid GeoJSON Point and overrides the geocoded value.
func (uc *AgencyUseCase) UpdateProfile(ctx context.Context, callerID uuid.UUID, req dto.UpdateProfileRequest) (*dto.AgencyResponse, error) {
	if callerID == uuid.Nil {
		return nil, errors.ErrUnauthorized
	}

	agency, err := uc.agencyRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, errors.ErrAgencyNotFound
	}

	var update domain.AgencyUpdate
	update.Name = req.Name
	update.Email = req.Email
	update.PhoneNumber = req.PhoneNumber
	update.Expertise = req.Expertise

	if req.Contact != nil {
		location, err := uc.resolveContact(ctx, *req.Contact)
		if err != nil {
			return nil, err
		}
		update.Contact = &domain.Address{
			Street:     req.Contact.Street,
			City:       req.Contact.City,
			State:      req.Contact.State,
			PostalCode: req.Contact.PostalCode,
			Country:    req.Contact.Country,
		}
		update.Location = location
	}

	if req.Location != nil {
		point := &domain.GeoPoint{
			Type:        req.Location.Type,
			Coordinates: req.Location.Coordinates,
		}
		if !point.IsValid() {
			return nil, errors.ErrInvalidLocation
		}
		// Explicit location wins over the geocoded one.
		update.Location = point
	}

	updated, err := uc.agencyRepo.Update(ctx, agency.ID, update)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Agency profile updated",
		zap.String("agency_id", updated.ID.String()))

	uc.publishEvent(ctx, domain.EventAgencyUpdated, updated)

	return dto.NewAgencyResponse(updated), nil
}

// resolveContact geocodes the structured address and returns the first
// candidate's coordinates. Zero candidates or any provider failure surface
// as the geocoding error.
func (uc *AgencyUseCase) resolveContact(ctx context.Context, contact dto.AddressInput) (*domain.GeoPoint, error) {
	address := utils.BuildAddressLine(
		contact.Street,
		contact.City,
		contact.State,
		contact.PostalCode,
		contact.Country,
	)

	candidates, err := uc.geocoder.Forward(ctx, address)
	if err != nil {
		uc.logger.Error("Geocoding request failed",
			zap.String("address", address),
			zap.Error(err))
		return nil, errors.ErrAddressNotResolved
	}
	if len(candidates) == 0 {
		return nil, errors.ErrAddressNotResolved
	}

	// Tie-break rule: the first candidate wins. Callers needing better
	// precision must refine the address upstream.
	first := candidates[0]
	return domain.NewGeoPoint(first.Longitude, first.Latitude), nil
}

// publishEvent emits a lifecycle event to the agency stream. Publishing is
// advisory: a failure is logged but never fails the operation.
func (uc *AgencyUseCase) publishEvent(ctx context.Context, eventType string, agency *domain.Agency) {
	if uc.streamRepo == nil {
		return
	}

	event := domain.AgencyEvent{
		Type:       eventType,
		AgencyID:   agency.ID,
		Email:      agency.Email,
		OccurredAt: time.Now().UTC(),
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamAgencyEvents, event); err != nil {
		uc.logger.Warn("Failed to publish agency event",
			zap.String("type", eventType),
			zap.String("agency_id", agency.ID.String()),
			zap.Error(err))
	}
}
