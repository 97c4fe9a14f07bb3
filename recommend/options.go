package recommend

const (
	// DefaultNeighbors is the default neighborhood size K.
	DefaultNeighbors = 10
	// DefaultTopN is the default number of suggestions per user.
	DefaultTopN = 5
)

type options struct {
	neighbors int
	topN      int
	prefilter bool
}

// Option configures a Generator.
type Option func(*options)

// WithNeighbors sets the neighborhood size K.
func WithNeighbors(k int) Option {
	return func(o *options) {
		o.neighbors = k
	}
}

// WithTopN sets the maximum number of suggestions per user.
func WithTopN(n int) Option {
	return func(o *options) {
		o.topN = n
	}
}

// WithEligiblePrefilter restricts the candidate loop to eligible users.
//
// Ineligible users always score 0 and are discarded anyway, so this changes
// only the amount of work, not the result. Enabled by default.
func WithEligiblePrefilter(enabled bool) Option {
	return func(o *options) {
		o.prefilter = enabled
	}
}
