package upload

// State is the pipeline stage a job is in. Stages are strictly
// sequential within one release.
type State int

const (
	StateClassifying State = iota
	StateResolving
	StatePreflight
	StateBuilding
	StateSubmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateClassifying:
		return "classifying"
	case StateResolving:
		return "resolving"
	case StatePreflight:
		return "preflight"
	case StateBuilding:
		return "building"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OutcomeKind is one target's terminal (or pending) result.
type OutcomeKind int

const (
	OutcomePending OutcomeKind = iota
	OutcomeSucceeded
	OutcomeFailed
	OutcomeSkipped
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

// TargetOutcome is the per-tracker result with its reason.
type TargetOutcome struct {
	Kind   OutcomeKind
	Reason string
}

// Overall is the whole-release result derived from target outcomes.
type Overall int

const (
	OverallPending Overall = iota
	OverallSucceeded
	OverallPartialFailure
	OverallFailed
	OverallSkipped
)

func (o Overall) String() string {
	switch o {
	case OverallSucceeded:
		return "succeeded"
	case OverallPartialFailure:
		return "partial-failure"
	case OverallFailed:
		return "failed"
	case OverallSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

// reduceOutcomes derives the overall result once every target is
// terminal: all skipped ⇒ Skipped; any success alongside any failure or
// skip ⇒ PartialFailure; no success with a failure ⇒ Failed; otherwise
// every target succeeded.
func reduceOutcomes(outcomes map[string]TargetOutcome) Overall {
	var succeeded, failed, skipped int
	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeSucceeded:
			succeeded++
		case OutcomeFailed:
			failed++
		case OutcomeSkipped:
			skipped++
		}
	}
	total := len(outcomes)
	switch {
	case total == 0:
		return OverallSkipped
	case skipped == total:
		return OverallSkipped
	case succeeded == total:
		return OverallSucceeded
	case succeeded > 0:
		return OverallPartialFailure
	case failed > 0:
		return OverallFailed
	default:
		return OverallPending
	}
}
