package leaguegen

import "time"

// Default generator configuration constants.
const (
	DefaultSeed              = 2024
	DefaultTeams             = 32
	DefaultLeague            = "NHL"
	DefaultDevelopmentLeague = "AHL"
	DefaultProspectsPerTeam  = 4
)

// Config holds configuration for the league generator.
type Config struct {
	Seed              uint64    // Seed of every random draw
	Teams             int       // Number of top-tier teams
	League            string    // League name of the top-tier teams
	DevelopmentLeague string    // League name of the prospects
	ProspectsPerTeam  int       // Development players per team
	ReferenceDate     time.Time // Date ages are drawn relative to
	Concurrency       int       // Teams generated in parallel
}

// Option applies a configuration option to the generator.
type Option func(*Config)

// WithSeed sets the random seed.
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithTeams sets the number of top-tier teams.
func WithTeams(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Teams = n
		}
	}
}

// WithLeagues sets the top-tier and development league names.
func WithLeagues(top, development string) Option {
	return func(c *Config) {
		if top != "" {
			c.League = top
		}
		if development != "" {
			c.DevelopmentLeague = development
		}
	}
}

// WithProspectsPerTeam sets the number of development players per team. Zero disables them.
func WithProspectsPerTeam(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.ProspectsPerTeam = n
		}
	}
}

// WithReferenceDate sets the date ages are drawn relative to.
func WithReferenceDate(t time.Time) Option {
	return func(c *Config) {
		if !t.IsZero() {
			c.ReferenceDate = t
		}
	}
}

// WithConcurrency caps the number of teams generated in parallel.
func WithConcurrency(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Concurrency = n
		}
	}
}
