// Package integrity enforces the foreign-key relationships between the
// cleaned entities. It runs after all per-entity cleaning, walking the
// relationship graph parents-first so that a cascade at one level is
// visible to every check at the next: removing an order also removes the
// payments and deliveries that referenced it.
package integrity

import (
	"fmt"
	"strings"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/clean"
)

// Error reports a cascade that would remove an implausibly large share of
// a non-empty child table. That pattern signals a broken join key
// upstream, not ordinary data noise, so the run aborts instead of
// silently deleting the table.
type Error struct {
	Relationship string
	Removed      int
	Total        int
}

func (e *Error) Error() string {
	return fmt.Sprintf("integrity check %s would remove %d of %d rows; aborting as a likely upstream key defect",
		e.Relationship, e.Removed, e.Total)
}

// RelationshipStat records one child→parent check.
type RelationshipStat struct {
	Relationship string
	Checked      int
	Removed      int
}

// Result is the per-relationship removal record, in check order.
type Result struct {
	Relationships []RelationshipStat
}

// RemovedFor sums removals for a child entity across its relationships.
func (r Result) RemovedFor(child string) int {
	total := 0
	for _, s := range r.Relationships {
		if strings.HasPrefix(s.Relationship, child+"→") {
			total += s.Removed
		}
	}
	return total
}

// Enforce applies cascade deletes to ds in dependency order:
//
//	level 1: stores→hubs, orders→stores, orders→channels
//	level 2: deliveries→orders, deliveries→drivers, payments→orders
//
// Parent key sets are rebuilt after level 1, so a single sweep reaches
// the fixed point. Both sides of every comparison are int64 keys; a
// textual "5" in the raw data and an integer 5 parent key were unified at
// type-coercion time, so representation mismatches cannot produce false
// orphans here. The driver sentinel always resolves because the cleaned
// drivers table seeds the Unknown driver row.
//
// maxRemovalPct is the safety threshold: a relationship whose cascade
// would remove at least that percentage of a non-empty child table fails
// with *Error. 100 means only a full wipe is fatal.
func Enforce(ds *clean.Dataset, maxRemovalPct float64) (Result, error) {
	var res Result

	// Level 1: resolve the order-side parents first. Orders removed here
	// must be gone before deliveries and payments are checked.
	hubIDs := make(map[int64]struct{}, len(ds.Hubs))
	for _, h := range ds.Hubs {
		hubIDs[h.ID] = struct{}{}
	}
	stores, stat, err := apply("stores→hubs", ds.Stores, maxRemovalPct, func(s clean.Store) bool {
		_, ok := hubIDs[s.HubID]
		return ok
	})
	if err != nil {
		return res, err
	}
	ds.Stores = stores
	res.Relationships = append(res.Relationships, stat)

	storeIDs := make(map[int64]struct{}, len(ds.Stores))
	for _, s := range ds.Stores {
		storeIDs[s.ID] = struct{}{}
	}
	orders, stat, err := apply("orders→stores", ds.Orders, maxRemovalPct, func(o clean.Order) bool {
		_, ok := storeIDs[o.StoreID]
		return ok
	})
	if err != nil {
		return res, err
	}
	ds.Orders = orders
	res.Relationships = append(res.Relationships, stat)

	channelIDs := make(map[int64]struct{}, len(ds.Channels))
	for _, c := range ds.Channels {
		channelIDs[c.ID] = struct{}{}
	}
	orders, stat, err = apply("orders→channels", ds.Orders, maxRemovalPct, func(o clean.Order) bool {
		_, ok := channelIDs[o.ChannelID]
		return ok
	})
	if err != nil {
		return res, err
	}
	ds.Orders = orders
	res.Relationships = append(res.Relationships, stat)

	// Level 2: parent key sets rebuilt from the cascaded tables.
	orderIDs := make(map[int64]struct{}, len(ds.Orders))
	for _, o := range ds.Orders {
		orderIDs[o.ID] = struct{}{}
	}
	driverIDs := make(map[int64]struct{}, len(ds.Drivers))
	for _, d := range ds.Drivers {
		driverIDs[d.ID] = struct{}{}
	}

	deliveries, stat, err := apply("deliveries→orders", ds.Deliveries, maxRemovalPct, func(d clean.Delivery) bool {
		_, ok := orderIDs[d.OrderID]
		return ok
	})
	if err != nil {
		return res, err
	}
	ds.Deliveries = deliveries
	res.Relationships = append(res.Relationships, stat)

	deliveries, stat, err = apply("deliveries→drivers", ds.Deliveries, maxRemovalPct, func(d clean.Delivery) bool {
		if d.DriverID == clean.SentinelDriverID {
			return true
		}
		_, ok := driverIDs[d.DriverID]
		return ok
	})
	if err != nil {
		return res, err
	}
	ds.Deliveries = deliveries
	res.Relationships = append(res.Relationships, stat)

	payments, stat, err := apply("payments→orders", ds.Payments, maxRemovalPct, func(p clean.Payment) bool {
		_, ok := orderIDs[p.OrderID]
		return ok
	})
	if err != nil {
		return res, err
	}
	ds.Payments = payments
	res.Relationships = append(res.Relationships, stat)

	return res, nil
}

// apply keeps the child rows whose parent resolves and enforces the
// wipeout threshold.
func apply[T any](name string, rows []T, maxRemovalPct float64, resolves func(T) bool) ([]T, RelationshipStat, error) {
	stat := RelationshipStat{Relationship: name, Checked: len(rows)}
	if len(rows) == 0 {
		return rows, stat, nil
	}

	kept := make([]T, 0, len(rows))
	for _, r := range rows {
		if resolves(r) {
			kept = append(kept, r)
		} else {
			stat.Removed++
		}
	}

	pct := float64(stat.Removed) / float64(stat.Checked) * 100
	if stat.Removed > 0 && pct >= maxRemovalPct {
		return rows, stat, &Error{Relationship: name, Removed: stat.Removed, Total: stat.Checked}
	}
	return kept, stat, nil
}
