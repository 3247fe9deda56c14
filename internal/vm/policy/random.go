package policy

import "math/rand"

// Random picks uniformly among present frames via rejection sampling,
// matching the original's `rand() % n_frames` retry loop.
type Random struct {
	rng *rand.Rand
}

func NewRandom() *Random {
	return &Random{rng: rand.New(rand.NewSource(rand.Int63()))}
}

// NewRandomSeeded returns a Random policy with a deterministic seed,
// for reproducible tests.
func NewRandomSeeded(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (*Random) Name() string { return "RANDOM" }

func (r *Random) SelectVictim(fv FrameView) int32 {
	n := fv.NumFrames()
	if n == 0 {
		return InvalidFrame
	}

	hasCandidate := false
	for i := 0; i < n; i++ {
		if fv.Present(int32(i)) {
			hasCandidate = true
			break
		}
	}
	if !hasCandidate {
		return InvalidFrame
	}

	for {
		id := int32(r.rng.Intn(n))
		if fv.Present(id) {
			return id
		}
	}
}
