// Package leaguegen builds deterministic synthetic leagues for demos, load runs
// and tests. The same configuration always yields the same players.
package leaguegen

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/pkg/logger"
)

// Generator produces synthetic leagues.
type Generator struct {
	cfg Config
}

// New creates a generator with configuration options.
func New(opts ...Option) *Generator {
	cfg := Config{
		Seed:              DefaultSeed,
		Teams:             DefaultTeams,
		League:            DefaultLeague,
		DevelopmentLeague: DefaultDevelopmentLeague,
		ProspectsPerTeam:  DefaultProspectsPerTeam,
		ReferenceDate:     time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		Concurrency:       runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Generator{cfg: cfg}
}

// Config returns the generator configuration.
func (g *Generator) Config() Config { return g.cfg }

// TeamID returns the ID of the i-th team, counting from zero.
func TeamID(i int) string { return fmt.Sprintf("T%02d", i+1) }

// Generate builds the league: every team's roster followed by its prospects,
// teams in order.
func (g *Generator) Generate(ctx context.Context) ([]model.PlayerProfile, error) {
	teams := make([][]model.PlayerProfile, g.cfg.Teams)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Concurrency, 1))
	for i := range teams {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			roster, err := g.team(i)
			if err != nil {
				return fmt.Errorf("team %s: %w", TeamID(i), err)
			}
			teams[i] = roster
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out []model.PlayerProfile
	for _, t := range teams {
		out = append(out, t...)
	}
	logger.Get().Debug(ctx, "generated league",
		logger.Int("teams", g.cfg.Teams),
		logger.Int("players", len(out)),
	)
	return out, nil
}

// teamRand holds the random sources of one team. Each team is seeded on its
// own so parallel generation stays reproducible.
type teamRand struct {
	*rand.Rand
	ids *rand.ChaCha8
}

func (g *Generator) newTeamRand(team int) teamRand {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[0:], g.cfg.Seed)
	binary.LittleEndian.PutUint64(seed[8:], uint64(team))
	binary.LittleEndian.PutUint64(seed[16:], 0x5eed)
	ids := rand.NewChaCha8(seed)
	return teamRand{
		Rand: rand.New(rand.NewPCG(g.cfg.Seed, uint64(team)+1)),
		ids:  ids,
	}
}

func (g *Generator) team(i int) ([]model.PlayerProfile, error) {
	r := g.newTeamRand(i)
	teamID := TeamID(i)
	out := make([]model.PlayerProfile, 0, len(rosterTemplate)+g.cfg.ProspectsPerTeam)

	for _, s := range rosterTemplate {
		p, err := g.player(r, s, teamID, g.cfg.League, false)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	for k := 0; k < g.cfg.ProspectsPerTeam; k++ {
		s := prospectStyles[k%len(prospectStyles)]
		p, err := g.player(r, s, teamID+"-DEV", g.cfg.DevelopmentLeague, true)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (g *Generator) player(r teamRand, s slot, teamID, league string, prospect bool) (model.PlayerProfile, error) {
	id, err := uuid.NewRandomFromReader(r.ids)
	if err != nil {
		return model.PlayerProfile{}, fmt.Errorf("player id: %w", err)
	}

	quality := r.NormFloat64()
	age := 20 + r.IntN(16)
	if prospect {
		quality -= 0.8
		age = 19 + r.IntN(6)
	}

	p := model.PlayerProfile{
		ID:        id.String(),
		Name:      firstNames[r.IntN(len(firstNames))] + " " + lastNames[r.IntN(len(lastNames))],
		Position:  s.position,
		BirthDate: g.cfg.ReferenceDate.AddDate(-age, -r.IntN(12), -r.IntN(28)),
		TeamID:    teamID,
		League:    league,
		Ratings:   jitterRatings(r, s.style.ratings, quality),
		Contract:  contract(r, quality, age, prospect),
	}
	if s.style.goalie {
		goalieSeason(r, &p, quality, s.starter)
	} else {
		skaterSeason(r, &p, s.style, quality)
	}
	return p, nil
}

func skaterSeason(r teamRand, p *model.PlayerProfile, st style, q float64) {
	gp := 55 + r.IntN(28)
	toi := float64(gp) * st.iceTimePerGame * (1 + 0.08*q)
	scale := math.Max(1+0.22*q, 0.05)
	count := func(per60 float64) int {
		return int(math.Round(per60 * scale * toi / 60 * (0.9 + 0.2*r.Float64())))
	}

	s := &p.Stats
	s.GamesPlayed = gp
	s.Goals = count(st.goals)
	s.Assists = count(st.assists)
	s.PrimaryAssists = int(math.Round(float64(s.Assists) * 0.6))
	s.Shots = max(count(st.shots), s.Goals)
	s.Hits = count(st.hits)
	s.BlockedShots = count(st.blocks)
	s.Takeaways = count(st.takeaways)
	s.Giveaways = int(math.Round(st.giveaways * toi / 60 * (1.1 - 0.1*q)))
	s.PenaltyMinutes = int(math.Round(st.pim * toi / 60))

	if p.Position == model.PositionCenter {
		s.FaceoffsTaken = gp * (12 + r.IntN(7))
		pct := clamp(0.46+0.03*q+(p.Ratings.Faceoffs-60)/1000, 0.35, 0.62)
		s.FaceoffsWon = int(math.Round(float64(s.FaceoffsTaken) * pct))
	} else {
		s.FaceoffsTaken = r.IntN(40)
		s.FaceoffsWon = s.FaceoffsTaken / 2
	}

	xgf60 := 2.5 + 0.3*q + 2*(st.ppShare-0.1)
	xga60 := math.Max(2.6-0.25*q+(st.dzShare-0.5), 1.2)
	s.OnIceXGF = xgf60 * toi / 60
	s.OnIceXGA = xga60 * toi / 60
	s.OnIceGoalsFor = int(math.Round(s.OnIceXGF * (0.9 + 0.2*r.Float64())))
	s.OnIceGoalsAgainst = int(math.Round(s.OnIceXGA * (0.9 + 0.2*r.Float64())))
	s.OnIceShotsFor = int(math.Round(s.OnIceXGF * 11))
	s.OnIceShotsAgainst = int(math.Round(s.OnIceXGA * 11))
	s.CorsiFor = int(math.Round(float64(s.OnIceShotsFor) * 1.8))
	s.CorsiAgainst = int(math.Round(float64(s.OnIceShotsAgainst) * 1.8))
	s.PlusMinus = s.OnIceGoalsFor - s.OnIceGoalsAgainst

	d := &p.Deployment
	d.TimeOnIceMinutes = round1(toi)
	d.PowerPlayMinutes = round1(toi * st.ppShare * math.Max(1+0.1*q, 0.2))
	d.PenaltyKillMinutes = round1(toi * st.pkShare)
	s.PenaltyKillGoalsAgainst = int(math.Round(d.PenaltyKillMinutes / 60 * 6.5 * math.Max(1-0.1*q, 0.3)))
	dz := clamp(st.dzShare+0.03*r.NormFloat64(), 0.2, 0.8)
	d.DefensiveZoneStartShare = &dz
	d.CompetitionTier = tier(q + 0.5*r.NormFloat64())
	d.TeammateTier = tier(q + 0.5*r.NormFloat64())
}

func goalieSeason(r teamRand, p *model.PlayerProfile, q float64, starter bool) {
	gp := 18 + r.IntN(15)
	if starter {
		gp = 45 + r.IntN(18)
	}
	s := &p.Stats
	s.GamesPlayed = gp
	s.ShotsAgainst = gp * (27 + r.IntN(7))
	svPct := clamp(0.905+0.008*q+0.004*r.NormFloat64(), 0.86, 0.94)
	s.Saves = int(math.Round(float64(s.ShotsAgainst) * svPct))
	s.GoalsAgainst = s.ShotsAgainst - s.Saves
	s.HighDangerShotsAgainst = int(math.Round(float64(s.ShotsAgainst) * 0.24))
	hdPct := clamp(0.815+0.02*q+0.01*r.NormFloat64(), 0.7, 0.9)
	s.HighDangerSaves = int(math.Round(float64(s.HighDangerShotsAgainst) * hdPct))
	s.ExpectedGoalsAgainst = round1(float64(s.ShotsAgainst) * 0.093 * (0.95 + 0.1*r.Float64()))
	s.OnIceShotsFor = gp * 30
	s.OnIceGoalsFor = int(math.Round(float64(gp) * (2.7 + 0.4*r.Float64())))
	s.OnIceShotsAgainst = s.ShotsAgainst
	s.OnIceGoalsAgainst = s.GoalsAgainst

	p.Deployment.TimeOnIceMinutes = round1(float64(gp) * 59)
}

func jitterRatings(r teamRand, base model.Ratings, q float64) model.Ratings {
	j := func(v float64) float64 {
		if v == 0 {
			return 0
		}
		return math.Round(clamp(v+6*q+3*r.NormFloat64(), 20, 99))
	}
	return model.Ratings{
		ShootingAccuracy: j(base.ShootingAccuracy),
		Passing:          j(base.Passing),
		GettingOpen:      j(base.GettingOpen),
		PuckHandling:     j(base.PuckHandling),
		OffensiveRead:    j(base.OffensiveRead),
		DefensiveRead:    j(base.DefensiveRead),
		Positioning:      j(base.Positioning),
		StickChecking:    j(base.StickChecking),
		ShotBlocking:     j(base.ShotBlocking),
		Physicality:      j(base.Physicality),
		Strength:         j(base.Strength),
		Faceoffs:         j(base.Faceoffs),
		Reflexes:         j(base.Reflexes),
		ReboundControl:   j(base.ReboundControl),
		PuckPlaying:      j(base.PuckPlaying),
	}
}

// Contract bounds in dollars.
const (
	minSalary   = 775_000
	maxSalary   = 12_500_000
	salaryRound = 25_000
)

func contract(r teamRand, q float64, age int, prospect bool) model.Contract {
	salary := 2_200_000 + 1_900_000*q + 600_000*r.NormFloat64()
	if age >= 26 && age <= 31 {
		salary += 500_000
	}
	if prospect {
		salary = minSalary + float64(r.IntN(8))*salaryRound
	}
	salary = math.Round(clamp(salary, minSalary, maxSalary)/salaryRound) * salaryRound

	c := model.Contract{Salary: salary, YearsRemaining: 1 + r.IntN(6), Status: model.ContractSigned}
	switch {
	case age <= 22:
		c.Status = model.ContractELC
		c.YearsRemaining = min(c.YearsRemaining, 3)
	case c.YearsRemaining == 1 && age >= 27:
		c.Status = model.ContractUFA
	case c.YearsRemaining == 1:
		c.Status = model.ContractRFA
	}
	return c
}

func tier(x float64) int {
	return int(clamp(math.Round(3+x), 1, 5))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
