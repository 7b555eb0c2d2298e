package workshop

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/logger"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/validator"
)

// Fuel types accepted on vehicle intake.
const (
	FuelPetrol   = "petrol"
	FuelDiesel   = "diesel"
	FuelElectric = "electric"
	FuelHybrid   = "hybrid"
)

const vehiclesTable = "vehicles"

var vehicleColumns = []string{
	"id", "garage_id", "customer_id", "registration_number", "make", "model",
	"year", "odometer_km", "fuel_type", "created_at", "updated_at",
}

// Vehicle belongs to a customer of the same garage. The registration plate
// is unique within a garage.
type Vehicle struct {
	ID                 uuid.UUID `db:"id"                  json:"id"`
	GarageID           uuid.UUID `db:"garage_id"           json:"garage_id"`
	CustomerID         uuid.UUID `db:"customer_id"         json:"customer_id"`
	RegistrationNumber string    `db:"registration_number" json:"registration_number"`
	Make               string    `db:"make"                json:"make"`
	Model              string    `db:"model"               json:"model"`
	Year               int       `db:"year"                json:"year"`
	OdometerKm         int       `db:"odometer_km"         json:"odometer_km"`
	FuelType           string    `db:"fuel_type"           json:"fuel_type"`
	CreatedAt          time.Time `db:"created_at"          json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"          json:"updated_at"`
}

// Vehicles manages a garage's vehicle records.
type Vehicles struct {
	collection *scope.Collection[Vehicle]
	log        *slog.Logger
}

func NewVehicles(db scope.DB, log *slog.Logger) *Vehicles {
	return &Vehicles{
		collection: scope.NewCollection[Vehicle](db, vehiclesTable, vehicleColumns...),
		log:        log,
	}
}

// VehicleInput carries a vehicle create/update request. The customer must
// belong to the same garage; the foreign key enforces it because customer
// rows of other garages are unreachable through the scoped collection and
// the composite reference below.
type VehicleInput struct {
	CustomerID         uuid.UUID `json:"customer_id"`
	RegistrationNumber string    `json:"registration_number"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	Year               int       `json:"year"`
	OdometerKm         int       `json:"odometer_km"`
	FuelType           string    `json:"fuel_type"`
}

func (in *VehicleInput) sanitize() {
	in.RegistrationNumber = strings.ToUpper(strings.TrimSpace(in.RegistrationNumber))
}

func (in VehicleInput) validate() error {
	if err := validator.Apply(
		validator.Required("registration_number", in.RegistrationNumber),
		validator.Required("make", in.Make),
		validator.Required("model", in.Model),
		validator.NonNegative("odometer_km", in.OdometerKm),
	); err != nil {
		return err
	}
	if in.CustomerID == uuid.Nil {
		return validator.ValidationErrors{{Field: "customer_id", Message: "is required"}}
	}
	switch in.FuelType {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
	default:
		return validator.ValidationErrors{{
			Field:   "fuel_type",
			Message: "must be one of petrol, diesel, electric, hybrid",
		}}
	}
	return nil
}

func (in VehicleInput) row() scope.Row {
	return scope.Row{
		"customer_id":         in.CustomerID,
		"registration_number": in.RegistrationNumber,
		"make":                in.Make,
		"model":               in.Model,
		"year":                in.Year,
		"odometer_km":         in.OdometerKm,
		"fuel_type":           in.FuelType,
	}
}

func (s *Vehicles) Create(ctx context.Context, in VehicleInput) (Vehicle, error) {
	var zero Vehicle

	in.sanitize()
	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	if taken, err := c.Exists(ctx, "registration_number", in.RegistrationNumber); err != nil {
		return zero, err
	} else if taken {
		return zero, core.FieldCollision("registration_number")
	}

	created, err := c.Insert(ctx, in.row())
	if err != nil {
		return zero, vehicleWriteError(err)
	}

	s.log.InfoContext(ctx, "vehicle registered",
		logger.GarageID(c.TenantID().String()),
		slog.String("vehicle_id", created.ID.String()),
		slog.String("registration_number", created.RegistrationNumber),
	)
	return created, nil
}

func (s *Vehicles) Update(ctx context.Context, id uuid.UUID, in VehicleInput) (Vehicle, error) {
	var zero Vehicle

	in.sanitize()
	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	if taken, err := c.ExistsExcept(ctx, "registration_number", in.RegistrationNumber, id); err != nil {
		return zero, err
	} else if taken {
		return zero, core.FieldCollision("registration_number")
	}

	updated, err := c.Update(ctx, id, in.row())
	if err != nil {
		return zero, vehicleWriteError(err)
	}
	return updated, nil
}

func (s *Vehicles) Get(ctx context.Context, id uuid.UUID) (Vehicle, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return Vehicle{}, err
	}
	return c.Get(ctx, id)
}

func (s *Vehicles) List(ctx context.Context) ([]Vehicle, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return nil, err
	}
	return c.List(ctx)
}

// ListByCustomer returns the customer's vehicles within the garage.
func (s *Vehicles) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Vehicle, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListBy(ctx, "customer_id", customerID)
}

func (s *Vehicles) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return err
	}
	return c.Delete(ctx, id)
}

func vehicleWriteError(err error) error {
	if pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == "uq_vehicles_registration_per_garage" {
		return core.FieldCollision("registration_number")
	}
	if pg.IsForeignKeyViolationError(err) {
		return validator.ValidationErrors{{Field: "customer_id", Message: "does not exist in this garage"}}
	}
	return err
}
