package services

// RequestPhase is the lifecycle of one fetch or submit.
type RequestPhase int

const (
	PhaseIdle RequestPhase = iota
	PhaseLoading
	PhaseSucceeded
	PhaseFailed
)

func (p RequestPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RequestState models a list or form request as an explicit state machine
// instead of ad hoc boolean flags. Each Begin bumps a generation; a Finish
// carrying a stale generation is discarded, so when refetches race only the
// most recently started one lands.
type RequestState struct {
	phase RequestPhase
	gen   uint64
	err   error
}

// Phase returns the current phase.
func (s *RequestState) Phase() RequestPhase {
	return s.phase
}

// Err returns the error from the last failed completion, if any.
func (s *RequestState) Err() error {
	return s.err
}

// Begin marks the request as loading and returns the generation token the
// completion must present.
func (s *RequestState) Begin() uint64 {
	s.gen++
	s.phase = PhaseLoading
	s.err = nil
	return s.gen
}

// Finish completes the request started with gen. It reports false and
// changes nothing when a newer request has started since.
func (s *RequestState) Finish(gen uint64, err error) bool {
	if gen != s.gen {
		return false
	}
	if err != nil {
		s.phase = PhaseFailed
		s.err = err
	} else {
		s.phase = PhaseSucceeded
	}
	return true
}
