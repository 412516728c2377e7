package repository

import "errors"

// ErrDuplicateKey is returned when an insert violates a uniqueness constraint.
// The partial unique index on (doctor_id, date_time) for scheduled
// appointments is the database-level backstop behind the in-transaction
// overlap check.
var ErrDuplicateKey = errors.New("duplicate key violation")
