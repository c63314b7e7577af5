package common

// StepState classifies how a best-effort pipeline step went wrong.
// Degraded means the step ran but delivered less than asked for;
// failed means it delivered nothing at all. Either way the request
// continues; only the primary generation path is allowed to be fatal.
type StepState string

const (
	StepDegraded StepState = "degraded"
	StepFailed   StepState = "failed"
)

// StepOutcome records how a best-effort step concluded so callers can
// decide per call-site whether to continue, log, or abort.
type StepOutcome struct {
	Step   string    `json:"step"`
	State  StepState `json:"state"`
	Reason string    `json:"reason,omitempty"`
}

// Degraded builds a degraded outcome for the named step.
func Degraded(step, reason string) StepOutcome {
	return StepOutcome{Step: step, State: StepDegraded, Reason: reason}
}

// Failed builds a failed outcome for the named step.
func Failed(step, reason string) StepOutcome {
	return StepOutcome{Step: step, State: StepFailed, Reason: reason}
}
