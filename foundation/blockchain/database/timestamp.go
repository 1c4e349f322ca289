package database

import (
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/objecthash"
)

// Timestamp is a wall clock capture normalized to nanoseconds since the
// unix epoch. Equal instants always produce the same digest.
type Timestamp int64

// Now captures the current wall clock time.
func Now() Timestamp {
	return FromTime(time.Now())
}

// FromTime converts a time value into a timestamp.
func FromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixNano())
}

// Nanos returns the number of nanoseconds since the unix epoch.
func (ts Timestamp) Nanos() int64 {
	return int64(ts)
}

// Time converts the timestamp back into a UTC time value.
func (ts Timestamp) Time() time.Time {
	return time.Unix(0, int64(ts)).UTC()
}

// String implements the fmt.Stringer interface.
func (ts Timestamp) String() string {
	return ts.Time().Format(time.RFC3339Nano)
}

// HashFields implements the objecthash.Hashable interface.
func (ts Timestamp) HashFields() []objecthash.Field {
	return []objecthash.Field{
		{Name: "value", Value: int64(ts)},
	}
}
