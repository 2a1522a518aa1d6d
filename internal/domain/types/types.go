// Package types contains common types used across the application.
package types

import "github.com/okian/rinkscout/internal/domain/model"

// Entry is one row of the league ranking.
type Entry struct {
	Rank       int          `json:"rank"`
	PlayerID   string       `json:"player_id"`
	PlayerName string       `json:"player_name"`
	Role       model.Role   `json:"role"`
	Rating     model.Rating `json:"rating"`
	Action     model.Action `json:"action"`
	ImpactZ    float64      `json:"impact_z"`
}

// EntryFromEvaluation builds an unranked Entry from an evaluation.
func EntryFromEvaluation(ev *model.Evaluation) Entry {
	return Entry{
		PlayerID:   ev.PlayerID,
		PlayerName: ev.PlayerName,
		Role:       ev.Role(),
		Rating:     ev.Rating,
		Action:     ev.Action,
		ImpactZ:    ev.ImpactZ,
	}
}
