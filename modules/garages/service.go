package garages

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/logger"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/sanitizer"
	"github.com/gadisewa/backend/pkg/tenant"
	"github.com/gadisewa/backend/pkg/validator"
)

// uniqueFields maps storage constraint names to the user-facing field they
// protect. The storage constraint is the authority under concurrent
// creation; this map turns its violation back into the same validation
// error the pre-check would have produced.
var uniqueFields = map[string]string{
	"uq_garages_name":                "name",
	"uq_garages_subdomain":           "subdomain",
	"uq_garages_registration_number": "registration_number",
	"uq_garages_tax_pan_number":      "tax_pan_number",
	"uq_garages_phone_number":        "phone_number",
	"uq_garages_email_address":       "email_address",
}

// Service implements platform-scope garage administration.
type Service struct {
	storage  Storage
	cache    tenant.Cache
	reserved []string
	log      *slog.Logger
}

func NewService(storage Storage, cache tenant.Cache, reserved []string, log *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		cache:    cache,
		reserved: reserved,
		log:      log,
	}
}

// CreateInput carries the registration request for a new garage.
type CreateInput struct {
	Name               string          `json:"name"`
	Subdomain          string          `json:"subdomain"`
	RegistrationNumber string          `json:"registration_number"`
	TaxPanNumber       string          `json:"tax_pan_number"`
	GarageType         string          `json:"garage_type"`
	StreetAddress      string          `json:"street_address"`
	City               string          `json:"city"`
	PostalCode         string          `json:"postal_code"`
	PhoneNumber        string          `json:"phone_number"`
	EmailAddress       string          `json:"email_address"`
	WorkingHours       json.RawMessage `json:"working_hours,omitempty"`
}

// Create registers a new tenant. Identity fields are checked for global
// uniqueness up front so the caller gets a field-level error; the partial
// race window between check and insert is closed by the storage constraint.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Garage, error) {
	in.Subdomain = sanitizer.NormalizeSubdomain(in.Subdomain)
	in.EmailAddress = sanitizer.NormalizeEmail(in.EmailAddress)
	in.PhoneNumber = sanitizer.NormalizePhone(in.PhoneNumber)

	if err := validator.Apply(
		validator.Required("name", in.Name),
		validator.Required("subdomain", in.Subdomain),
		validator.ValidSubdomain("subdomain", in.Subdomain),
		validator.NotReserved("subdomain", in.Subdomain, s.reserved),
		validator.Required("registration_number", in.RegistrationNumber),
		validator.Required("tax_pan_number", in.TaxPanNumber),
		validator.Required("street_address", in.StreetAddress),
		validator.Required("city", in.City),
		validator.NepaliPhone("phone_number", in.PhoneNumber),
		validator.ValidEmail("email_address", in.EmailAddress),
	); err != nil {
		return nil, err
	}

	switch in.GarageType {
	case TypeAutoRepair, TypeBodyShop, TypeMultiService:
	default:
		return nil, validator.ValidationErrors{{
			Field:   "garage_type",
			Message: "must be one of auto-repair, body-shop, multi-service",
		}}
	}

	for column, value := range map[string]any{
		"name":                in.Name,
		"subdomain":           in.Subdomain,
		"registration_number": in.RegistrationNumber,
		"tax_pan_number":      in.TaxPanNumber,
		"phone_number":        in.PhoneNumber,
		"email_address":       in.EmailAddress,
	} {
		taken, err := s.storage.ExistsBy(ctx, column, value)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, core.FieldCollision(column)
		}
	}

	g := &Garage{
		ID:                 uuid.New(),
		Name:               in.Name,
		Subdomain:          in.Subdomain,
		RegistrationNumber: in.RegistrationNumber,
		TaxPanNumber:       in.TaxPanNumber,
		GarageType:         in.GarageType,
		StreetAddress:      in.StreetAddress,
		City:               in.City,
		PostalCode:         in.PostalCode,
		PhoneNumber:        in.PhoneNumber,
		EmailAddress:       in.EmailAddress,
		WorkingHours:       in.WorkingHours,
	}

	if err := s.storage.Create(ctx, g); err != nil {
		if pg.IsDuplicateKeyError(err) {
			if field, ok := uniqueFields[pg.ConstraintName(err)]; ok {
				return nil, core.FieldCollision(field)
			}
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "garage created",
		logger.GarageID(g.ID.String()),
		slog.String("subdomain", g.Subdomain),
	)
	return g, nil
}

// Deactivate soft-disables a garage and evicts it from the resolution
// cache so new requests stop resolving immediately. Historical scoped data
// is never deleted.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	g, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Deactivate(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, g.Subdomain)

	s.log.InfoContext(ctx, "garage deactivated",
		logger.GarageID(id.String()),
		slog.String("subdomain", g.Subdomain),
	)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Garage, error) {
	return s.storage.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Garage, error) {
	return s.storage.List(ctx)
}
