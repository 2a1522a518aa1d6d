package search

// Default search configuration constants.
const (
	DefaultMaxCandidates = 5
	DefaultMaxProspects  = 2

	DefaultWinNowLower   = 0.5
	DefaultWinNowUpper   = 1.3
	DefaultWinNowCushion = 1_000_000.0
	DefaultRebuildLower  = 0.1
	DefaultRebuildUpper  = 1.0
)

// Default league sets.
var (
	DefaultTopTierLeagues     = []string{"NHL"}
	DefaultDevelopmentLeagues = []string{"AHL"}
)

// Band is a salary window expressed as multiples of the weak player's salary.
type Band struct {
	Lower float64
	Upper float64
	// Cushion is an absolute minimum headroom above the weak player's salary.
	Cushion float64
}

// Range returns the absolute salary window around salary.
func (b Band) Range(salary float64) (lo, hi float64) {
	lo = b.Lower * salary
	hi = b.Upper * salary
	if b.Cushion > 0 && salary+b.Cushion > hi {
		hi = salary + b.Cushion
	}
	return lo, hi
}

// Option applies a configuration option to the Searcher.
type Option func(*Searcher)

// WithWinNowBand overrides the win-now salary band.
func WithWinNowBand(b Band) Option {
	return func(s *Searcher) {
		if b.Upper >= b.Lower && b.Lower >= 0 {
			s.winNow = b
		}
	}
}

// WithRebuildBand overrides the rebuild salary band.
func WithRebuildBand(b Band) Option {
	return func(s *Searcher) {
		if b.Upper >= b.Lower && b.Lower >= 0 {
			s.rebuild = b
		}
	}
}

// WithTopTierLeagues sets the leagues that supply trade candidates.
func WithTopTierLeagues(leagues ...string) Option {
	return func(s *Searcher) {
		if len(leagues) > 0 {
			s.topTier = toSet(leagues)
		}
	}
}

// WithDevelopmentLeagues sets the leagues searched for prospects.
func WithDevelopmentLeagues(leagues ...string) Option {
	return func(s *Searcher) {
		if len(leagues) > 0 {
			s.development = toSet(leagues)
		}
	}
}

// WithMaxCandidates caps the number of league candidates returned.
func WithMaxCandidates(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.maxCandidates = n
		}
	}
}

// WithMaxProspects caps the number of development prospects returned.
func WithMaxProspects(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.maxProspects = n
		}
	}
}

// WithConcurrency limits how many candidates are evaluated at once.
func WithConcurrency(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}
