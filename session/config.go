package session

import (
	"time"

	"github.com/pwitab/corus/catalog"
	"github.com/shopspring/decimal"
)

// Config holds session-level configuration, a plain struct in the teacher's
// style (pkg/config/*.go) rather than env-var driven.
type Config struct {
	// Address is the "host:port" the underlying transport.TCPChannel
	// dials. Unused when the caller supplies its own transport.Channel.
	Address string
	// Timeout bounds every blocking channel operation. Zero defaults to
	// 30s, matching original_source/iflag/transport.py.
	Timeout time.Duration
	// Password is carried for documentation/default-construction parity
	// with the original client; the wire protocol's password step is a
	// verbatim echo, so this value is never transmitted.
	Password string

	// Catalog supplies parameter descriptors and database record layouts.
	// A nil Catalog defaults to catalog.Default().
	Catalog *catalog.Catalog

	// InputPulseWeight scales pulse-count database fields into
	// engineering units (spec.md §4.7). May be left nil if the caller's
	// database queries never touch a scaled_by_pulse_weight field; it can
	// also be read from the device at runtime via ReadParameters for
	// parameter id 1 ("pulse_weight") and assigned here before ReadDatabase.
	InputPulseWeight *decimal.Decimal

	// DateBigEndian selects the packed Date integer's wire endianness.
	// Defaults to false (little-endian), spec.md §9's documented default.
	DateBigEndian bool
	// ReadSizeBigEndian documents which endianness convention a firmware
	// revision uses for ReadRequest's one-byte size field. Since the field
	// is a single byte this has no behavioral effect; see DESIGN.md.
	ReadSizeBigEndian bool
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return 30 * time.Second
	}
	return c.Timeout
}

func (c Config) catalog() *catalog.Catalog {
	if c.Catalog == nil {
		return catalog.Default()
	}
	return c.Catalog
}
