package model

// Bundle groups metrics into a facet of play.
type Bundle int

// Bundles.
const (
	BundleOffense Bundle = iota
	BundleDefense
	BundleTransition
	BundleComposure

	BundleCount = 4
)

var bundleNames = [BundleCount]string{"offense", "defense", "transition", "composure"}

func (b Bundle) String() string {
	if b < 0 || b >= BundleCount {
		return "unknown"
	}
	return bundleNames[b]
}

// MarshalText renders the bundle name.
func (b Bundle) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// BundleScores holds one z-score per bundle, indexed by Bundle.
type BundleScores [BundleCount]float64

// Weakest returns the bundle with the lowest score among the given ones. With no
// candidates it returns BundleOffense.
func (s BundleScores) Weakest(among ...Bundle) Bundle {
	if len(among) == 0 {
		among = []Bundle{BundleOffense, BundleDefense, BundleTransition, BundleComposure}
	}
	best := among[0]
	for _, b := range among[1:] {
		if s[b] < s[best] {
			best = b
		}
	}
	return best
}

// Driver is a single metric's contribution to an evaluation.
type Driver struct {
	Metric Metric  `json:"metric"`
	Bundle Bundle  `json:"bundle"`
	Value  float64 `json:"value"`
	Mean   float64 `json:"mean"`
	// Z is oriented so that positive is always good.
	Z float64 `json:"z"`
}

// Tier is a coarse value bucket used to gate trade realism.
type Tier int

// Tiers from best to worst.
const (
	TierElite Tier = iota
	TierStar
	TierSolid
	TierDepth
	TierReplacement
)

var tierNames = [...]string{"elite", "star", "solid", "depth", "replacement"}

func (t Tier) String() string {
	if t < TierElite || t > TierReplacement {
		return "unknown"
	}
	return tierNames[t]
}

// MarshalText renders the tier name.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// StepsAbove returns how many tiers t sits above other; negative when below.
func (t Tier) StepsAbove(other Tier) int { return int(other - t) }

// Rating is the benchmark verdict on a player's impact within role.
type Rating string

// Ratings.
const (
	RatingElite        Rating = "elite"
	RatingAboveAverage Rating = "above_average"
	RatingAverage      Rating = "average"
	RatingBelowAverage Rating = "below_average"
	RatingWeak         Rating = "weak"
)

// Severity buckets a misuse score.
type Severity string

// Severities.
const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Action is the roster recommendation.
type Action string

// Actions.
const (
	ActionMonitor  Action = "monitor"
	ActionReassign Action = "reassign"
	ActionReplace  Action = "replace"
)

// Mode selects the replacement search objective.
type Mode string

// Modes.
const (
	ModeWinNow  Mode = "win-now"
	ModeRebuild Mode = "rebuild"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWinNow, ModeRebuild:
		return Mode(s), nil
	default:
		return "", ErrUnknownMode
	}
}

// MisuseReport describes how far deployment strays from the skill profile.
type MisuseReport struct {
	Score    float64  `json:"score"`
	Severity Severity `json:"severity"`
	Hints    []string `json:"hints,omitempty"`
}

// Evaluation is the engine's verdict on one player.
type Evaluation struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Age        int    `json:"age"`

	Classification Classification `json:"classification"`
	Metrics        Metrics        `json:"metrics"`

	Bundles       BundleScores          `json:"bundles"`
	BundleDrivers [BundleCount][]Driver `json:"bundle_drivers"`
	Drivers       []Driver              `json:"drivers"`

	ImpactScore          float64 `json:"impact_score"`
	ImpactZ              float64 `json:"impact_z"`
	ReplacementThreshold float64 `json:"replacement_threshold"`
	ReplacementDelta     float64 `json:"replacement_delta"`
	Tier                 Tier    `json:"tier"`
	Rating               Rating  `json:"rating"`

	Misuse     MisuseReport `json:"misuse"`
	Confidence float64      `json:"confidence"`
	Volatility float64      `json:"volatility"`

	Action  Action   `json:"action"`
	Reasons []string `json:"reasons"`
}

// Role is shorthand for the assigned role.
func (e *Evaluation) Role() Role { return e.Classification.Role }

// CandidateSource tells where a replacement candidate was found.
type CandidateSource string

// Candidate sources.
const (
	SourceLeague      CandidateSource = "league"
	SourceDevelopment CandidateSource = "development"
)

// CandidateScore is one ranked replacement suggestion.
type CandidateScore struct {
	Player      PlayerProfile   `json:"player"`
	Role        Role            `json:"role"`
	Score       float64         `json:"score"`
	Tier        Tier            `json:"tier"`
	Rating      Rating          `json:"rating"`
	Realistic   bool            `json:"realistic"`
	Improvement float64         `json:"improvement"`
	TradeTypes  []string        `json:"trade_types,omitempty"`
	Source      CandidateSource `json:"source"`
	Reasons     []string        `json:"reasons,omitempty"`
}
