package bytepack

import "sync/atomic"

const (
	DefaultMaxElements   = 1 << 20
	DefaultMaxTextBytes  = 16 << 20
	DefaultMaxFrameBytes = 64 << 20
)

// Limits bounds the counts a decoder will trust before allocating.
// A length prefix larger than the limit is rejected instead of parsed.
type Limits struct {
	// MaxElements is the largest SizedVec element count that will be decoded.
	MaxElements int

	// MaxTextBytes is the largest Text byte count that will be decoded.
	MaxTextBytes int

	// MaxFrameBytes is the largest frame ReadFrame will accept.
	MaxFrameBytes int
}

// DefaultLimits returns the limits in effect when SetLimits was never called.
func DefaultLimits() Limits {
	return Limits{
		MaxElements:   DefaultMaxElements,
		MaxTextBytes:  DefaultMaxTextBytes,
		MaxFrameBytes: DefaultMaxFrameBytes,
	}
}

var limits atomic.Pointer[Limits]

func init() {
	l := DefaultLimits()
	limits.Store(&l)
}

// SetLimits replaces the process-wide decoding limits. Zero fields keep
// their default value.
func SetLimits(l Limits) {
	def := DefaultLimits()
	if l.MaxElements <= 0 {
		l.MaxElements = def.MaxElements
	}
	if l.MaxTextBytes <= 0 {
		l.MaxTextBytes = def.MaxTextBytes
	}
	if l.MaxFrameBytes <= 0 {
		l.MaxFrameBytes = def.MaxFrameBytes
	}
	limits.Store(&l)
}

// CurrentLimits returns the limits in effect.
func CurrentLimits() Limits {
	return *limits.Load()
}
