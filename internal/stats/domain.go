// Package stats computes dashboard aggregates. Reads only; the admin
// aggregate is cached in Redis and warmed by the background worker.
package stats

// AdminStats is the storefront-wide dashboard aggregate.
type AdminStats struct {
	Users    int64   `json:"users"`
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// UserStats is the per-email dashboard aggregate.
type UserStats struct {
	Payments int64 `json:"payments"`
	Orders   int64 `json:"orders"`
	Bookings int64 `json:"bookings"`
	Reviews  int64 `json:"reviews"`
}
