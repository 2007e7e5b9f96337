package device

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReadingKind distinguishes the two reading flavors a reader can emit.
type ReadingKind string

const (
	// KindWeight is the current weight parsed from a scale line.
	KindWeight ReadingKind = "WEIGHT"
	// KindTag is a newly-seen RFID tag identifier.
	KindTag ReadingKind = "TAG"
)

// Reading is an ephemeral value published to subscribers. Weight is set for
// KindWeight, Tag for KindTag. Readings are not persisted by the reader; the
// subscriber decides what to do with them.
type Reading struct {
	Kind   ReadingKind     `json:"kind"`
	Weight decimal.Decimal `json:"weight,omitempty"`
	Tag    string          `json:"tag,omitempty"`
	At     time.Time       `json:"at"`
}
