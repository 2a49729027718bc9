package chash

// Strategy selects how collisions on a primary slot are resolved.
type Strategy uint8

const (
	// LinearProbing tries (p + i) mod capacity.
	LinearProbing Strategy = iota
	// QuadraticProbing tries (p + i*i) mod capacity.
	QuadraticProbing
	// DoubleHashing tries (p + i*step) mod capacity, with step derived from
	// the key.
	DoubleHashing
	// Chaining keeps colliding entries in a linked overflow list owned by
	// the primary slot.
	Chaining
)

func (s Strategy) String() string {
	switch s {
	case LinearProbing:
		return "linear"
	case QuadraticProbing:
		return "quadratic"
	case DoubleHashing:
		return "double"
	case Chaining:
		return "chaining"
	default:
		return "unknown"
	}
}

func (s Strategy) valid() bool {
	return s <= Chaining
}

func (s Strategy) openAddressing() bool {
	return s != Chaining
}

// probeSeq is the candidate slot sequence for one key. It holds no state
// between calls: candidate i is computed from i alone.
type probeSeq struct {
	strategy Strategy
	primary  uint64
	step     uint64
	capacity uint64
}

func newProbeSeq(s Strategy, h Hash, key uint16, capacity int) probeSeq {
	sum := h.Sum(key)
	c := uint64(capacity)
	p := probeSeq{strategy: s, primary: sum % c, step: 1, capacity: c}
	if s == DoubleHashing {
		p.step = secondaryStep(sum, c)
	}
	return p
}

// secondaryStep derives a non-zero step coprime with capacity, so the
// sequence visits every slot once.
func secondaryStep(sum, capacity uint64) uint64 {
	if capacity <= 2 {
		return 1
	}
	step := 1 + (sum/capacity)%(capacity-1)
	for gcd(step, capacity) != 1 {
		step++
		if step >= capacity {
			step = 1
		}
	}
	return step
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Len is the number of candidates in the sequence.
func (p probeSeq) Len() int {
	if p.strategy == Chaining {
		return 1
	}
	return int(p.capacity)
}

// At returns candidate i, 0 <= i < Len().
func (p probeSeq) At(i int) int {
	n := uint64(i)
	var off uint64
	switch p.strategy {
	case LinearProbing:
		off = n
	case QuadraticProbing:
		off = n * n
	case DoubleHashing:
		off = n * p.step
	}
	return int((p.primary + off%p.capacity) % p.capacity)
}
