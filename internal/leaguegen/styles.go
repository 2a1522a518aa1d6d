package leaguegen

import "github.com/okian/rinkscout/internal/domain/model"

// style is a playing profile the generator draws a skater or goalie from.
type style struct {
	name    string
	ratings model.Ratings

	// Per-60 rates at average quality.
	goals, assists, shots, hits, blocks, takeaways, giveaways, pim float64

	iceTimePerGame float64
	ppShare        float64
	pkShare        float64
	dzShare        float64
	goalie         bool
}

var (
	styleScorer = style{
		name: "scorer",
		ratings: model.Ratings{
			ShootingAccuracy: 86, Passing: 62, GettingOpen: 82, PuckHandling: 74, OffensiveRead: 76,
			DefensiveRead: 48, Positioning: 50, StickChecking: 48, ShotBlocking: 40, Physicality: 50,
			Strength: 58, Faceoffs: 50,
		},
		goals: 1.25, assists: 1.0, shots: 10.5, hits: 4, blocks: 1.5, takeaways: 1.0, giveaways: 1.2, pim: 0.8,
		iceTimePerGame: 17, ppShare: 0.22, pkShare: 0.02, dzShare: 0.42,
	}
	stylePlaymaker = style{
		name: "playmaker",
		ratings: model.Ratings{
			ShootingAccuracy: 58, Passing: 88, GettingOpen: 64, PuckHandling: 80, OffensiveRead: 84,
			DefensiveRead: 52, Positioning: 54, StickChecking: 50, ShotBlocking: 40, Physicality: 45,
			Strength: 55, Faceoffs: 55,
		},
		goals: 0.6, assists: 1.9, shots: 6.5, hits: 3, blocks: 1.5, takeaways: 1.3, giveaways: 1.6, pim: 0.6,
		iceTimePerGame: 17, ppShare: 0.22, pkShare: 0.03, dzShare: 0.44,
	}
	styleTwoWayForward = style{
		name: "two_way_forward",
		ratings: model.Ratings{
			ShootingAccuracy: 60, Passing: 66, GettingOpen: 58, PuckHandling: 62, OffensiveRead: 62,
			DefensiveRead: 82, Positioning: 80, StickChecking: 80, ShotBlocking: 58, Physicality: 58,
			Strength: 62, Faceoffs: 78,
		},
		goals: 0.6, assists: 0.8, shots: 7, hits: 6, blocks: 3, takeaways: 1.8, giveaways: 0.9, pim: 0.7,
		iceTimePerGame: 16, ppShare: 0.05, pkShare: 0.2, dzShare: 0.58,
	}
	styleGrinder = style{
		name: "grinder",
		ratings: model.Ratings{
			ShootingAccuracy: 48, Passing: 50, GettingOpen: 50, PuckHandling: 50, OffensiveRead: 48,
			DefensiveRead: 60, Positioning: 60, StickChecking: 60, ShotBlocking: 66, Physicality: 88,
			Strength: 86, Faceoffs: 55,
		},
		goals: 0.4, assists: 0.5, shots: 6, hits: 16, blocks: 3, takeaways: 0.8, giveaways: 0.8, pim: 2.4,
		iceTimePerGame: 11, ppShare: 0.01, pkShare: 0.12, dzShare: 0.55,
	}
	styleOffensiveDefenseman = style{
		name: "offensive_defenseman",
		ratings: model.Ratings{
			ShootingAccuracy: 70, Passing: 84, GettingOpen: 55, PuckHandling: 80, OffensiveRead: 84,
			DefensiveRead: 58, Positioning: 60, StickChecking: 56, ShotBlocking: 55, Physicality: 50,
			Strength: 60, Faceoffs: 30,
		},
		goals: 0.35, assists: 1.3, shots: 6, hits: 3, blocks: 3.5, takeaways: 0.9, giveaways: 1.8, pim: 0.8,
		iceTimePerGame: 22, ppShare: 0.24, pkShare: 0.04, dzShare: 0.42,
	}
	styleTwoWayDefenseman = style{
		name: "two_way_defenseman",
		ratings: model.Ratings{
			ShootingAccuracy: 58, Passing: 70, GettingOpen: 45, PuckHandling: 64, OffensiveRead: 62,
			DefensiveRead: 80, Positioning: 80, StickChecking: 74, ShotBlocking: 72, Physicality: 62,
			Strength: 70, Faceoffs: 30,
		},
		goals: 0.2, assists: 0.75, shots: 4.5, hits: 5, blocks: 5, takeaways: 1.1, giveaways: 1.2, pim: 0.8,
		iceTimePerGame: 23, ppShare: 0.08, pkShare: 0.18, dzShare: 0.5,
	}
	styleShutdownDefenseman = style{
		name: "shutdown_defenseman",
		ratings: model.Ratings{
			ShootingAccuracy: 42, Passing: 55, GettingOpen: 40, PuckHandling: 50, OffensiveRead: 45,
			DefensiveRead: 76, Positioning: 84, StickChecking: 66, ShotBlocking: 88, Physicality: 80,
			Strength: 82, Faceoffs: 30,
		},
		goals: 0.1, assists: 0.4, shots: 3, hits: 9, blocks: 8, takeaways: 0.7, giveaways: 0.9, pim: 1.2,
		iceTimePerGame: 19, ppShare: 0.01, pkShare: 0.25, dzShare: 0.62,
	}
	styleGoalie = style{
		name:    "goalie",
		ratings: model.Ratings{Positioning: 80, Reflexes: 82, ReboundControl: 78, PuckPlaying: 60},
		goalie:  true,
	}
)

// slot is one roster spot.
type slot struct {
	style    style
	position model.Position
	starter  bool
}

// rosterTemplate is the make-up of a top-tier team.
var rosterTemplate = []slot{
	{style: styleScorer, position: model.PositionLeftWing},
	{style: styleScorer, position: model.PositionRightWing},
	{style: styleScorer, position: model.PositionCenter},
	{style: stylePlaymaker, position: model.PositionCenter},
	{style: stylePlaymaker, position: model.PositionLeftWing},
	{style: stylePlaymaker, position: model.PositionRightWing},
	{style: styleTwoWayForward, position: model.PositionCenter},
	{style: styleTwoWayForward, position: model.PositionLeftWing},
	{style: styleTwoWayForward, position: model.PositionRightWing},
	{style: styleGrinder, position: model.PositionLeftWing},
	{style: styleGrinder, position: model.PositionRightWing},
	{style: styleGrinder, position: model.PositionCenter},
	{style: styleOffensiveDefenseman, position: model.PositionDefenseman},
	{style: styleOffensiveDefenseman, position: model.PositionDefenseman},
	{style: styleTwoWayDefenseman, position: model.PositionDefenseman},
	{style: styleTwoWayDefenseman, position: model.PositionDefenseman},
	{style: styleShutdownDefenseman, position: model.PositionDefenseman},
	{style: styleShutdownDefenseman, position: model.PositionDefenseman},
	{style: styleShutdownDefenseman, position: model.PositionDefenseman},
	{style: styleGoalie, position: model.PositionGoalie, starter: true},
	{style: styleGoalie, position: model.PositionGoalie},
}

// prospectStyles cycle over a team's development players.
var prospectStyles = []slot{
	{style: styleScorer, position: model.PositionRightWing},
	{style: styleTwoWayDefenseman, position: model.PositionDefenseman},
	{style: stylePlaymaker, position: model.PositionCenter},
	{style: styleShutdownDefenseman, position: model.PositionDefenseman},
	{style: styleGrinder, position: model.PositionLeftWing},
	{style: styleGoalie, position: model.PositionGoalie},
}

var firstNames = []string{
	"Aleksi", "Brady", "Cole", "Dmitri", "Elias", "Filip", "Gabriel", "Henrik", "Ilya", "Jonas",
	"Kasper", "Liam", "Mats", "Nico", "Owen", "Patrik", "Quinn", "Rasmus", "Sami", "Tyler",
	"Urho", "Viktor", "Wyatt", "Yegor", "Zach",
}

var lastNames = []string{
	"Aho", "Barkov", "Carlsson", "Dahlin", "Ekholm", "Forsberg", "Gustafsson", "Hughes", "Ivanov",
	"Jarvis", "Kapanen", "Lindholm", "Makar", "Nylander", "Olofsson", "Pettersson", "Quick", "Rantanen",
	"Sergachev", "Tkachuk", "Uronen", "Virtanen", "Werenski", "Yamamoto", "Zibanejad",
}
