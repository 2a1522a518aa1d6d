// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Position is the listed playing position of a player.
type Position string

// Listed positions.
const (
	PositionCenter     Position = "C"
	PositionLeftWing   Position = "LW"
	PositionRightWing  Position = "RW"
	PositionDefenseman Position = "D"
	PositionGoalie     Position = "G"
)

// PositionGroup buckets positions for role gating and candidate filtering.
type PositionGroup int

// Position groups.
const (
	GroupUnknown PositionGroup = iota
	GroupForward
	GroupDefense
	GroupGoalie
)

func (g PositionGroup) String() string {
	switch g {
	case GroupForward:
		return "forward"
	case GroupDefense:
		return "defense"
	case GroupGoalie:
		return "goalie"
	default:
		return "unknown"
	}
}

// ParsePosition normalizes a position code. Wingers listed as "L"/"R"/"F" and
// lowercase codes are accepted; anything else maps to "".
func ParsePosition(s string) Position {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C":
		return PositionCenter
	case "LW", "L":
		return PositionLeftWing
	case "RW", "R", "F", "W":
		return PositionRightWing
	case "D", "LD", "RD":
		return PositionDefenseman
	case "G":
		return PositionGoalie
	default:
		return ""
	}
}

// Group returns the position group of p.
func (p Position) Group() PositionGroup {
	switch ParsePosition(string(p)) {
	case PositionCenter, PositionLeftWing, PositionRightWing:
		return GroupForward
	case PositionDefenseman:
		return GroupDefense
	case PositionGoalie:
		return GroupGoalie
	default:
		return GroupUnknown
	}
}

// SeasonStats holds the counting stats of one season.
type SeasonStats struct {
	GamesPlayed    int `json:"games_played"`
	Goals          int `json:"goals"`
	Assists        int `json:"assists"`
	PrimaryAssists int `json:"primary_assists"`
	Shots          int `json:"shots"`
	Hits           int `json:"hits"`
	Takeaways      int `json:"takeaways"`
	Giveaways      int `json:"giveaways"`
	BlockedShots   int `json:"blocked_shots"`
	FaceoffsWon    int `json:"faceoffs_won"`
	FaceoffsTaken  int `json:"faceoffs_taken"`
	PenaltyMinutes int `json:"penalty_minutes"`
	PlusMinus      int `json:"plus_minus"`

	// On-ice counters.
	OnIceXGF                float64 `json:"on_ice_xgf"`
	OnIceXGA                float64 `json:"on_ice_xga"`
	OnIceGoalsFor           int     `json:"on_ice_goals_for"`
	OnIceGoalsAgainst       int     `json:"on_ice_goals_against"`
	OnIceShotsFor           int     `json:"on_ice_shots_for"`
	OnIceShotsAgainst       int     `json:"on_ice_shots_against"`
	CorsiFor                int     `json:"corsi_for"`
	CorsiAgainst            int     `json:"corsi_against"`
	PenaltyKillGoalsAgainst int     `json:"pk_goals_against"`

	// Goalie counters.
	ShotsAgainst           int     `json:"shots_against"`
	Saves                  int     `json:"saves"`
	HighDangerShotsAgainst int     `json:"hd_shots_against"`
	HighDangerSaves        int     `json:"hd_saves"`
	GoalsAgainst           int     `json:"goals_against"`
	ExpectedGoalsAgainst   float64 `json:"expected_goals_against"`
}

// Points returns goals plus assists.
func (s SeasonStats) Points() int { return s.Goals + s.Assists }

// Deployment describes how a coach used the player.
type Deployment struct {
	TimeOnIceMinutes   float64 `json:"toi_minutes"`
	PowerPlayMinutes   float64 `json:"pp_minutes"`
	PenaltyKillMinutes float64 `json:"pk_minutes"`
	// DefensiveZoneStartShare is the share of shifts started in the defensive zone.
	// Nil when the source does not track zone starts.
	DefensiveZoneStartShare *float64 `json:"dz_start_share,omitempty"`
	// CompetitionTier and TeammateTier run 1 (weakest) to 5 (strongest); 0 is unknown.
	CompetitionTier int `json:"qoc_tier"`
	TeammateTier    int `json:"qot_tier"`
}

// Ratings are scouting attributes on a 0-100 scale.
type Ratings struct {
	ShootingAccuracy float64 `json:"shooting_accuracy"`
	Passing          float64 `json:"passing"`
	GettingOpen      float64 `json:"getting_open"`
	PuckHandling     float64 `json:"puck_handling"`
	OffensiveRead    float64 `json:"offensive_read"`
	DefensiveRead    float64 `json:"defensive_read"`
	Positioning      float64 `json:"positioning"`
	StickChecking    float64 `json:"stick_checking"`
	ShotBlocking     float64 `json:"shot_blocking"`
	Physicality      float64 `json:"physicality"`
	Strength         float64 `json:"strength"`
	Faceoffs         float64 `json:"faceoffs"`

	// Goalie attributes.
	Reflexes       float64 `json:"reflexes"`
	ReboundControl float64 `json:"rebound_control"`
	PuckPlaying    float64 `json:"puck_playing"`
}

// ContractStatus is the contract state of a player.
type ContractStatus string

// Contract statuses.
const (
	ContractSigned ContractStatus = "signed"
	ContractRFA    ContractStatus = "rfa"
	ContractUFA    ContractStatus = "ufa"
	ContractELC    ContractStatus = "elc"
)

// Contract holds the contract terms of a player.
type Contract struct {
	Salary         float64        `json:"salary"`
	YearsRemaining int            `json:"years_remaining"`
	Status         ContractStatus `json:"status"`
}

// PlayerProfile is a player record as handed to the engine. The engine never mutates it.
type PlayerProfile struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Position   Position    `json:"position"`
	BirthDate  time.Time   `json:"birth_date"`
	TeamID     string      `json:"team_id"`
	League     string      `json:"league"`
	Stats      SeasonStats `json:"stats"`
	Deployment Deployment  `json:"deployment"`
	Ratings    Ratings     `json:"ratings"`
	Contract   Contract    `json:"contract"`
}

// Age returns the age in whole years at asOf, or 0 when the birth date is unknown.
func (p *PlayerProfile) Age(asOf time.Time) int {
	if p.BirthDate.IsZero() || asOf.Before(p.BirthDate) {
		return 0
	}
	years := asOf.Year() - p.BirthDate.Year()
	if asOf.Month() < p.BirthDate.Month() || (asOf.Month() == p.BirthDate.Month() && asOf.Day() < p.BirthDate.Day()) {
		years--
	}
	return years
}

// IceTimePerGame returns average minutes per game played.
func (p *PlayerProfile) IceTimePerGame() float64 {
	if p.Stats.GamesPlayed <= 0 {
		return 0
	}
	return p.Deployment.TimeOnIceMinutes / float64(p.Stats.GamesPlayed)
}
