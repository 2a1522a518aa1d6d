// Package recommend maps an evaluation's impact, confidence and misuse onto a roster action.
package recommend

import (
	"fmt"
	"math"

	"github.com/okian/rinkscout/internal/domain/model"
)

// Decision thresholds.
const (
	WeakDeltaThreshold  = -0.4
	MinConfidence       = 0.6
	NearReplacementBand = 0.25
)

// Input carries the signals the decision depends on.
type Input struct {
	ReplacementDelta float64
	Confidence       float64
	Severity         model.Severity
	Group            model.PositionGroup
	Drivers          []model.Driver
	Hints            []string
}

// Decision is the action together with its reasons.
type Decision struct {
	Action  model.Action
	Reasons []string
}

// WeakImpact reports a confidently below-replacement player.
func WeakImpact(delta, confidence float64) bool {
	return delta < WeakDeltaThreshold && confidence >= MinConfidence
}

// NearReplacement reports a player within the replacement band.
func NearReplacement(delta float64) bool {
	return math.Abs(delta) <= NearReplacementBand
}

// Action applies the decision rules. Goalies are replaced before they are
// reassigned; skaters near replacement level with severe misuse are reassigned first.
func Action(in Input) model.Action {
	weak := WeakImpact(in.ReplacementDelta, in.Confidence)
	severe := in.Severity == model.SeveritySevere
	if in.Group == model.GroupGoalie {
		switch {
		case weak:
			return model.ActionReplace
		case severe:
			return model.ActionReassign
		default:
			return model.ActionMonitor
		}
	}
	switch {
	case severe && NearReplacement(in.ReplacementDelta):
		return model.ActionReassign
	case weak:
		return model.ActionReplace
	default:
		return model.ActionMonitor
	}
}

// Decide returns the action and the reasons behind it.
func Decide(in Input) Decision {
	action := Action(in)
	return Decision{Action: action, Reasons: reasons(in, action)}
}

func reasons(in Input, action model.Action) []string {
	var out []string
	for _, d := range in.Drivers {
		dir := "above"
		if d.Z < 0 {
			dir = "below"
		}
		out = append(out, fmt.Sprintf("%s %.2f is %.1f sd %s role benchmark (%s)", d.Metric, d.Value, math.Abs(d.Z), dir, d.Bundle))
	}
	if in.ReplacementDelta < WeakDeltaThreshold {
		out = append(out, fmt.Sprintf("impact %.2f sd below replacement level", -in.ReplacementDelta))
	}
	if NearReplacement(in.ReplacementDelta) {
		out = append(out, "impact within replacement band")
	}
	if in.Confidence < MinConfidence {
		out = append(out, fmt.Sprintf("low confidence %.2f from limited ice time or puck luck", in.Confidence))
	}
	if in.Severity == model.SeveritySevere {
		out = append(out, "severe role misuse")
		if action == model.ActionReassign {
			out = append(out, in.Hints...)
		}
	}
	return out
}
