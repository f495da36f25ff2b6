package record

import "context"

// Store is the authoritative collection of finalized records.
// Implementations must be safe for concurrent use: persist and read
// operations from parallel conversations are serialized internally.
type Store interface {
	// Persist inserts the record, overwriting any entry with the same
	// key. The record is durable before Persist returns.
	Persist(ctx context.Context, rec Record) error

	// MostRecentFor returns the most recent record for a vehicle
	// according to MoreRecent, or found=false when the vehicle has no
	// records at all.
	MostRecentFor(ctx context.Context, vehicleID string) (Record, bool, error)

	// AllLatestByVehicle returns the single most recent record for
	// every vehicle present in the store.
	AllLatestByVehicle(ctx context.Context) (map[string]Record, error)

	// Close releases the backing resource, if any.
	Close() error
}

// latestByVehicle folds a flat record list into the most recent record
// per vehicle. Shared by every Store implementation so that the flawed
// tie-break behaves identically regardless of backend.
func latestByVehicle(recs []Record) map[string]Record {
	latest := make(map[string]Record, len(recs))
	for _, r := range recs {
		cur, ok := latest[r.VehicleID]
		if !ok || MoreRecent(r, cur) {
			latest[r.VehicleID] = r
		}
	}
	return latest
}
