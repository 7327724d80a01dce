// Package clean turns raw string tables into typed entity records. One
// cleaning routine per entity applies, in order: structural column check,
// null-filter on required fields, duplicate removal, type coercion, and
// entity-specific repairs. Rows with data-quality problems are filtered
// and tallied, never raised as errors.
package clean

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// SentinelDriverID is the reserved driver key for deliveries without an
// assigned driver (customer pickups, third-party couriers). A matching
// "Unknown" driver row is always seeded into the cleaned drivers table so
// the reference resolves.
const SentinelDriverID int64 = -1

// SentinelPlanPrice replaces an empty store_plan_price.
const SentinelPlanPrice = -1.0

// Channel is a sales channel (marketplace, own app, ...).
type Channel struct {
	ID   int64
	Name string
	Type string
}

// Driver is a delivery driver. The sentinel row uses "Unknown" for both
// Modal and Type.
type Driver struct {
	ID    int64
	Modal string
	Type  string
}

// Hub is a logistics hub. City text arrives latin1-decoded and may carry
// mis-decoded byte artifacts that the cleaner repairs.
type Hub struct {
	ID        int64
	Name      string
	City      string
	State     string
	Latitude  float64
	Longitude float64
}

// Store is a merchant attached to a hub. Coordinates are optional.
type Store struct {
	ID        int64
	HubID     int64
	Name      string
	Segment   string
	PlanPrice float64
	Latitude  pgtype.Float8
	Longitude pgtype.Float8
}

// Order is the central fact record. The eight moment columns are nullable
// timestamps: an order not yet delivered simply has no delivered moment.
// DeliveryTimeMinutes is derived from delivering→delivered and is absent
// whenever either source moment is.
type Order struct {
	ID           int64
	StoreID      int64
	ChannelID    int64
	Status       string
	Amount       float64
	DeliveryFee  float64
	DeliveryCost float64

	MomentCreated      pgtype.Timestamp
	MomentAccepted     pgtype.Timestamp
	MomentReady        pgtype.Timestamp
	MomentCollected    pgtype.Timestamp
	MomentInExpedition pgtype.Timestamp
	MomentDelivering   pgtype.Timestamp
	MomentDelivered    pgtype.Timestamp
	MomentFinished     pgtype.Timestamp

	MetricCollectedTime   float64
	MetricPausedTime      float64
	MetricProductionTime  float64
	MetricWalkingTime     float64
	MetricExpeditionSpeed float64
	MetricTransitTime     float64
	MetricCycleTime       float64

	DeliveryTimeMinutes pgtype.Float8
}

// Delivery links an order to a driver. HasDriverData is false exactly when
// DriverID is the sentinel.
type Delivery struct {
	ID             int64
	OrderID        int64
	DriverID       int64
	HasDriverData  bool
	DistanceMeters float64
	Status         string
}

// Payment is one payment against an order. Method and Status are stored
// uppercase and trimmed.
type Payment struct {
	ID      int64
	OrderID int64
	Amount  float64
	Fee     float64
	Method  string
	Status  string
}

// Dataset bundles all cleaned entities for the cross-entity stages.
type Dataset struct {
	Channels   []Channel
	Drivers    []Driver
	Hubs       []Hub
	Stores     []Store
	Orders     []Order
	Deliveries []Delivery
	Payments   []Payment
}

// Stats tallies what one cleaner did to one entity. Drops are row
// filters; Repairs are in-place value fixes on retained rows.
type Stats struct {
	Entity string
	Raw    int

	MissingRequired    int
	Duplicates         int
	BadValues          int
	InvalidDurations   int
	NonPositiveAmounts int
	Repairs            int

	// FeeExceedsAmount counts payments whose fee exceeds the amount.
	// Monitoring only, these rows are retained.
	FeeExceedsAmount int
}

// Removed is the total number of rows this cleaner dropped.
func (s Stats) Removed() int {
	return s.MissingRequired + s.Duplicates + s.BadValues + s.InvalidDurations + s.NonPositiveAmounts
}

// SchemaError reports that a required column is structurally absent from
// a raw table. Unlike row-level problems this aborts the run: the table
// cannot be cleaned safely without its structure.
type SchemaError struct {
	Entity  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required columns missing from raw input: %v", e.Entity, e.Missing)
}
