package customers

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/logger"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/sanitizer"
	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/validator"
)

// uniqueFields maps storage constraint names back to the field they
// protect. Both constraints are scoped to the owning garage, so the same
// phone or email can exist in other garages without conflict.
var uniqueFields = map[string]string{
	"uq_customers_phone_per_garage": "phone_number",
	"uq_customers_email_per_garage": "email_address",
}

// Service manages customers within the tenant resolved for each request.
type Service struct {
	collection *scope.Collection[Customer]
	log        *slog.Logger
}

func NewService(db scope.DB, log *slog.Logger) *Service {
	return &Service{
		collection: scope.NewCollection[Customer](db, Table, Columns...),
		log:        log,
	}
}

// Input carries the create/update request for a customer.
type Input struct {
	FullName      string `json:"full_name"`
	PhoneNumber   string `json:"phone_number"`
	EmailAddress  string `json:"email_address"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	Notes         string `json:"notes"`
}

func (in *Input) sanitize() {
	in.PhoneNumber = sanitizer.NormalizePhone(in.PhoneNumber)
	in.EmailAddress = sanitizer.NormalizeEmail(in.EmailAddress)
}

func (in Input) validate() error {
	return validator.Apply(
		validator.Required("full_name", in.FullName),
		validator.MaxLen("full_name", in.FullName, 255),
		validator.Required("phone_number", in.PhoneNumber),
		validator.NepaliPhone("phone_number", in.PhoneNumber),
		validator.OptionalEmail("email_address", in.EmailAddress),
	)
}

func (in Input) row() scope.Row {
	return scope.Row{
		"full_name":      in.FullName,
		"phone_number":   in.PhoneNumber,
		"email_address":  nullable(in.EmailAddress),
		"street_address": in.StreetAddress,
		"city":           in.City,
		"notes":          in.Notes,
	}
}

// Create adds a customer to the request's garage. The phone number must be
// unique within the garage; the email only when one is given.
func (s *Service) Create(ctx context.Context, in Input) (Customer, error) {
	var zero Customer

	in.sanitize()
	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	if taken, err := c.Exists(ctx, "phone_number", in.PhoneNumber); err != nil {
		return zero, err
	} else if taken {
		return zero, core.FieldCollision("phone_number")
	}
	if in.EmailAddress != "" {
		if taken, err := c.Exists(ctx, "email_address", in.EmailAddress); err != nil {
			return zero, err
		} else if taken {
			return zero, core.FieldCollision("email_address")
		}
	}

	created, err := c.Insert(ctx, in.row())
	if err != nil {
		return zero, duplicateToFieldError(err)
	}

	s.log.InfoContext(ctx, "customer created",
		logger.GarageID(c.TenantID().String()),
		slog.String("customer_id", created.ID.String()),
	)
	return created, nil
}

// Update modifies a customer in place. Uniqueness checks exclude the
// record itself so it may keep its own phone and email.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (Customer, error) {
	var zero Customer

	in.sanitize()
	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	if taken, err := c.ExistsExcept(ctx, "phone_number", in.PhoneNumber, id); err != nil {
		return zero, err
	} else if taken {
		return zero, core.FieldCollision("phone_number")
	}
	if in.EmailAddress != "" {
		if taken, err := c.ExistsExcept(ctx, "email_address", in.EmailAddress, id); err != nil {
			return zero, err
		} else if taken {
			return zero, core.FieldCollision("email_address")
		}
	}

	updated, err := c.Update(ctx, id, in.row())
	if err != nil {
		return zero, duplicateToFieldError(err)
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Customer, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return Customer{}, err
	}
	return c.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return err
	}
	if err := c.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "customer deleted",
		logger.GarageID(c.TenantID().String()),
		slog.String("customer_id", id.String()),
	)
	return nil
}

func duplicateToFieldError(err error) error {
	if pg.IsDuplicateKeyError(err) {
		if field, ok := uniqueFields[pg.ConstraintName(err)]; ok {
			return core.FieldCollision(field)
		}
	}
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
