package domain

import "time"

// DeviceToken is a persisted opaque credential for mobile clients.
// At most one row exists per account; the key is reused until revoked.
type DeviceToken struct {
	Key       string
	AccountID int64
	CreatedAt time.Time
}
