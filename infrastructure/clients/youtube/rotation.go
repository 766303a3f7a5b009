package youtube

type rotationPhase int

const (
	phaseAttempting rotationPhase = iota
	phaseSucceeded
	phaseFailed
	phaseExhausted
)

// rotationState is the retry loop of one logical call:
//
//	Attempting(i) --success--> Succeeded
//	Attempting(i) --failure--> Failed
//	Attempting(i) --403------> Attempting(i+1 mod n) while attempts < n, else Exhausted
type rotationState struct {
	phase    rotationPhase
	index    int
	attempts int
	size     int
}

func startRotation(index, size int) rotationState {
	if size == 0 {
		return rotationState{phase: phaseExhausted}
	}
	return rotationState{phase: phaseAttempting, index: index % size, size: size}
}

func (s rotationState) next(res AttemptResult) rotationState {
	if s.phase != phaseAttempting {
		return s
	}
	s.attempts++
	switch res {
	case AttemptSucceeded:
		s.phase = phaseSucceeded
	case AttemptQuotaExceeded:
		s.index = (s.index + 1) % s.size
		if s.attempts >= s.size {
			s.phase = phaseExhausted
		}
	default:
		s.phase = phaseFailed
	}
	return s
}

func (s rotationState) result() RotationResult {
	r := RotationResult{Attempts: s.attempts}
	switch s.phase {
	case phaseSucceeded:
		r.Final = AttemptSucceeded
	case phaseFailed:
		r.Final = AttemptFailed
	default:
		r.Final = AttemptQuotaExceeded
		r.Exhausted = true
	}
	return r
}
