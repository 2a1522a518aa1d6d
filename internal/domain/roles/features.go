package roles

import (
	"math"

	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/normalize"
)

// Feature indexes one classifier input. Skill features are ratings/100, usage
// features are scaled into [0,1].
type Feature int

// Skill features.
const (
	FeatShooting Feature = iota
	FeatPassing
	FeatGettingOpen
	FeatPuckHandling
	FeatOffensiveRead
	FeatDefensiveRead
	FeatPositioning
	FeatStickChecking
	FeatShotBlocking
	FeatPhysicality
	FeatStrength
	FeatFaceoffs
	FeatReflexes
	FeatReboundControl
	FeatPuckPlaying

	// Usage features.
	FeatPPShare
	FeatPKShare
	FeatDZShare
	FeatIceTimePerGame
	FeatShotsPer60
	FeatAssistsPer60
	FeatHitsPer60
	FeatBlocksPer60
	FeatTakeawaysPer60
	FeatPointsPerGame
	FeatFaceoffsPerGame

	featureCount
)

// Scales that map usage counters onto [0,1].
const (
	ratingScale       = 100.0
	specialTeamsScale = 0.25
	iceTimeScale      = 25.0
	shotsScale        = 12.0
	assistsScale      = 3.0
	hitsScale         = 12.0
	blocksScale       = 8.0
	takeawaysScale    = 4.0
	pointsScale       = 1.2
	faceoffsScale     = 20.0
	neutralDZShare    = 0.5
)

// Vector is a full feature vector of one player.
type Vector [featureCount]float64

// Features extracts the classifier features of p. Missing counters give 0.
func Features(p *model.PlayerProfile) Vector {
	var v Vector
	r := p.Ratings
	v[FeatShooting] = r.ShootingAccuracy / ratingScale
	v[FeatPassing] = r.Passing / ratingScale
	v[FeatGettingOpen] = r.GettingOpen / ratingScale
	v[FeatPuckHandling] = r.PuckHandling / ratingScale
	v[FeatOffensiveRead] = r.OffensiveRead / ratingScale
	v[FeatDefensiveRead] = r.DefensiveRead / ratingScale
	v[FeatPositioning] = r.Positioning / ratingScale
	v[FeatStickChecking] = r.StickChecking / ratingScale
	v[FeatShotBlocking] = r.ShotBlocking / ratingScale
	v[FeatPhysicality] = r.Physicality / ratingScale
	v[FeatStrength] = r.Strength / ratingScale
	v[FeatFaceoffs] = r.Faceoffs / ratingScale
	v[FeatReflexes] = r.Reflexes / ratingScale
	v[FeatReboundControl] = r.ReboundControl / ratingScale
	v[FeatPuckPlaying] = r.PuckPlaying / ratingScale

	d := p.Deployment
	s := p.Stats
	toi := d.TimeOnIceMinutes
	if toi > 0 {
		v[FeatPPShare] = unit(d.PowerPlayMinutes / toi / specialTeamsScale)
		v[FeatPKShare] = unit(d.PenaltyKillMinutes / toi / specialTeamsScale)
	}
	v[FeatDZShare] = neutralDZShare
	if d.DefensiveZoneStartShare != nil {
		v[FeatDZShare] = unit(*d.DefensiveZoneStartShare)
	}
	v[FeatIceTimePerGame] = unit(p.IceTimePerGame() / iceTimeScale)
	v[FeatShotsPer60] = unit(normalize.Per60(float64(s.Shots), toi) / shotsScale)
	v[FeatAssistsPer60] = unit(normalize.Per60(float64(s.Assists), toi) / assistsScale)
	v[FeatHitsPer60] = unit(normalize.Per60(float64(s.Hits), toi) / hitsScale)
	v[FeatBlocksPer60] = unit(normalize.Per60(float64(s.BlockedShots), toi) / blocksScale)
	v[FeatTakeawaysPer60] = unit(normalize.Per60(float64(s.Takeaways), toi) / takeawaysScale)
	if s.GamesPlayed > 0 {
		gp := float64(s.GamesPlayed)
		v[FeatPointsPerGame] = unit(float64(s.Points()) / gp / pointsScale)
		v[FeatFaceoffsPerGame] = unit(float64(s.FaceoffsTaken) / gp / faceoffsScale)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			v[i] = 0
		}
	}
	return v
}

func unit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
