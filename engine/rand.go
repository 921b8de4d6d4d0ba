package engine

// defaultSeed keeps the xorshift state away from zero, where it would stick.
const defaultSeed uint64 = 0x9e3779b97f4a7c15

// xorshift is a xorshift64* source for math/rand/v2.
type xorshift struct {
	s uint64
}

func newXorshift(seed uint64) *xorshift {
	r := &xorshift{}
	r.Seed(seed)
	return r
}

func (r *xorshift) Seed(seed uint64) {
	if seed == 0 {
		seed = defaultSeed
	}
	r.s = seed
}

func (r *xorshift) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}
