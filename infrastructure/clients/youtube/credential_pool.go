package youtube

import "sync"

// AttemptResult is what one attempt with one credential reports back to the pool.
type AttemptResult int

const (
	AttemptSucceeded AttemptResult = iota
	// AttemptQuotaExceeded asks the pool to move on to the next credential.
	AttemptQuotaExceeded
	// AttemptFailed ends the call without rotating.
	AttemptFailed
)

// RotationResult summarizes a logical call made through the pool.
type RotationResult struct {
	// Final is the result of the last attempt, AttemptQuotaExceeded when exhausted.
	Final     AttemptResult
	Attempts  int
	Exhausted bool
}

// CredentialPool is an ordered list of interchangeable API keys with one active slot.
//
// The active index is shared by every caller. Rotation is compare-and-advance:
// a quota failure only moves the index if it still points at the slot the failing
// attempt used, so a burst of concurrent 403s advances it once rather than
// skipping healthy keys.
type CredentialPool struct {
	mu     sync.Mutex
	keys   []string
	active int
}

func NewCredentialPool(keys []string) *CredentialPool {
	cp := make([]string, len(keys))
	copy(cp, keys)
	return &CredentialPool{keys: cp}
}

func (p *CredentialPool) Size() int { return len(p.keys) }

// ActiveIndex returns the slot the next call will start from.
func (p *CredentialPool) ActiveIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// WithNextCredential runs attempt with the active credential and keeps rotating
// while attempts report AttemptQuotaExceeded, trying each credential at most once.
func (p *CredentialPool) WithNextCredential(attempt func(key string) AttemptResult) RotationResult {
	st := startRotation(p.ActiveIndex(), len(p.keys))
	for st.phase == phaseAttempting {
		slot := st.index
		res := attempt(p.keys[slot])
		switch res {
		case AttemptQuotaExceeded:
			p.advanceFrom(slot)
		case AttemptSucceeded:
			p.settle(slot)
		}
		st = st.next(res)
	}
	return st.result()
}

func (p *CredentialPool) advanceFrom(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == slot {
		p.active = (slot + 1) % len(p.keys)
	}
}

func (p *CredentialPool) settle(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = slot
}
