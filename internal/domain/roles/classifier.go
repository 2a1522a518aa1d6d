// Package roles assigns players to one of the eight positional archetypes.
package roles

import (
	"fmt"
	"math"

	"github.com/okian/rinkscout/internal/domain/model"
)

// Term is one prototype coefficient.
type Term struct {
	Feature Feature
	Weight  float64
}

// Archetype is the prototype of a single role.
type Archetype struct {
	Role  model.Role
	Skill []Term
	Usage []Term
}

// archetypes are listed in role declaration order.
var archetypes = [model.RoleCount]Archetype{
	{
		Role:  model.RoleScorer,
		Skill: []Term{{FeatShooting, 0.30}, {FeatGettingOpen, 0.20}, {FeatOffensiveRead, 0.15}, {FeatPuckHandling, 0.10}},
		Usage: []Term{{FeatShotsPer60, 0.30}, {FeatPointsPerGame, 0.20}, {FeatPPShare, 0.15}},
	},
	{
		Role:  model.RolePlaymaker,
		Skill: []Term{{FeatPassing, 0.30}, {FeatOffensiveRead, 0.20}, {FeatPuckHandling, 0.15}, {FeatGettingOpen, 0.05}},
		Usage: []Term{{FeatAssistsPer60, 0.30}, {FeatPointsPerGame, 0.20}, {FeatPPShare, 0.15}},
	},
	{
		Role: model.RoleTwoWayForward,
		Skill: []Term{
			{FeatDefensiveRead, 0.20}, {FeatPositioning, 0.15}, {FeatStickChecking, 0.15},
			{FeatPassing, 0.10}, {FeatOffensiveRead, 0.10}, {FeatFaceoffs, 0.10},
		},
		Usage: []Term{{FeatPKShare, 0.25}, {FeatTakeawaysPer60, 0.20}, {FeatFaceoffsPerGame, 0.15}, {FeatDZShare, 0.10}},
	},
	{
		Role:  model.RoleGrinder,
		Skill: []Term{{FeatPhysicality, 0.30}, {FeatStrength, 0.25}, {FeatShotBlocking, 0.10}, {FeatStickChecking, 0.05}},
		Usage: []Term{{FeatHitsPer60, 0.40}, {FeatBlocksPer60, 0.10}, {FeatPKShare, 0.10}},
	},
	{
		Role:  model.RoleOffensiveDefenseman,
		Skill: []Term{{FeatPassing, 0.20}, {FeatOffensiveRead, 0.20}, {FeatPuckHandling, 0.15}, {FeatShooting, 0.10}},
		Usage: []Term{{FeatPPShare, 0.25}, {FeatAssistsPer60, 0.20}, {FeatPointsPerGame, 0.20}, {FeatIceTimePerGame, 0.10}},
	},
	{
		Role: model.RoleTwoWayDefenseman,
		Skill: []Term{
			{FeatDefensiveRead, 0.15}, {FeatPositioning, 0.15}, {FeatPassing, 0.10},
			{FeatStickChecking, 0.10}, {FeatShotBlocking, 0.10}, {FeatOffensiveRead, 0.05},
		},
		Usage: []Term{{FeatIceTimePerGame, 0.30}, {FeatPKShare, 0.15}, {FeatTakeawaysPer60, 0.10}, {FeatPPShare, 0.05}},
	},
	{
		Role: model.RoleShutdownDefenseman,
		Skill: []Term{
			{FeatPositioning, 0.20}, {FeatShotBlocking, 0.20}, {FeatDefensiveRead, 0.15},
			{FeatStrength, 0.10}, {FeatPhysicality, 0.10},
		},
		Usage: []Term{{FeatBlocksPer60, 0.30}, {FeatPKShare, 0.20}, {FeatDZShare, 0.15}, {FeatHitsPer60, 0.10}},
	},
	{
		Role:  model.RoleGoalie,
		Skill: []Term{{FeatReflexes, 0.40}, {FeatReboundControl, 0.25}, {FeatPositioning, 0.20}, {FeatPuckPlaying, 0.15}},
		Usage: []Term{{FeatIceTimePerGame, 0.10}},
	},
}

// Archetypes returns the role prototypes in declaration order.
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypes))
	copy(out, archetypes[:])
	return out
}

// Logit scores v against the archetype.
func (a Archetype) Logit(v Vector) float64 {
	var sum float64
	for _, t := range a.Skill {
		sum += t.Weight * v[t.Feature]
	}
	for _, t := range a.Usage {
		sum += t.Weight * v[t.Feature]
	}
	return sum
}

// Classify returns the best-fit role of p together with every role's logit.
// Roles that do not allow the player's position get -Inf. Equal logits resolve
// to the role declared first.
func Classify(p *model.PlayerProfile) (model.Classification, error) {
	if p == nil || p.Position.Group() == model.GroupUnknown {
		pos := ""
		if p != nil {
			pos = string(p.Position)
		}
		return model.Classification{}, fmt.Errorf("classify %q: %w", pos, model.ErrUnknownPosition)
	}

	v := Features(p)
	c := model.Classification{}
	best := math.Inf(-1)
	found := false
	for i, a := range archetypes {
		if !a.Role.Allows(p.Position) {
			c.Logits[i] = math.Inf(-1)
			continue
		}
		l := a.Logit(v)
		c.Logits[i] = l
		// strict comparison keeps the earlier role on ties
		if !found || l > best {
			best = l
			c.Role = a.Role
			found = true
		}
	}
	return c, nil
}
