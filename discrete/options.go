// Package discrete: functional configuration shared by the flag variants.
// Each constructor consumes ...Option and reads only the fields that apply
// to it; the defaults below are the single source of truth.

package discrete

const (
	// DefaultEnable: instances evaluate unless explicitly disabled.
	DefaultEnable = true

	// DefaultCache: comparators and switchers re-evaluate on every call
	// unless caching is requested.
	DefaultCache = false

	// DerivativeEps is the magnitude below which a numerical derivative
	// is treated as zero to suppress chattering.
	DerivativeEps = 1e-8
)

type options struct {
	enable    bool
	cache     bool
	equal     bool
	lowerOnly bool
	upperOnly bool
	nSelect   int
	z0, z1    float64
}

func defaultOptions() options {
	return options{enable: DefaultEnable, cache: DefaultCache, z0: 0, z1: 1}
}

// Option configures a discrete instance at construction time.
type Option func(*options)

// Disabled turns the instance into its documented pass-through default:
// flags keep their bypass values and evaluation does no further work.
func Disabled() Option { return func(o *options) { o.enable = false } }

// WithCache enables result caching: once evaluated, further calls are
// no-ops until Invalidate is called. Applies to LessThan and Switcher.
func WithCache() Option { return func(o *options) { o.cache = true } }

// WithEqual makes a LessThan compare with <= instead of <.
func WithEqual() Option { return func(o *options) { o.equal = true } }

// WithLowerOnly restricts a Limiter to its lower bound; the upper flag is
// held at 0 and not exported.
func WithLowerOnly() Option { return func(o *options) { o.lowerOnly = true } }

// WithUpperOnly restricts a Limiter to its upper bound; the lower flag is
// held at 0 and not exported.
func WithUpperOnly() Option { return func(o *options) { o.upperOnly = true } }

// WithNSelect sets the ranked-bypass count of a SortedLimiter: the n
// most-extreme violators on each side bypass clamping. n <= 0 disables
// the ranking.
func WithNSelect(n int) Option { return func(o *options) { o.nSelect = n } }

// WithDefaults overrides the disabled/default flag values of a LessThan.
func WithDefaults(z0, z1 float64) Option {
	return func(o *options) { o.z0, o.z1 = z0, z1 }
}
