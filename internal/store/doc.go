// Package store defines the persistence interfaces for users and items,
// along with the sentinel errors every implementation must return. The
// API layer classifies failures exclusively through these sentinels; no
// driver-level error ever crosses the store boundary.
package store
