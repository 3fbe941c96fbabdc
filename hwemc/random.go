package hwemc

import (
	crand "crypto/rand"
	"encoding/binary"

	"github.com/carbocation/pfx"
	"golang.org/x/exp/rand"
)

// RandomSource yields independent draws, uniform on [0,1). A RandomSource is
// owned by exactly one chain.
type RandomSource interface {
	Next() float64
}

type prngSource struct {
	rng *rand.Rand
}

func (s *prngSource) Next() float64 {
	return s.rng.Float64()
}

// NewRandomSource returns a seeded PRNG. Two sources built from the same seed
// produce the same sequence, so runs are reproducible.
func NewRandomSource(seed uint64) RandomSource {
	return &prngSource{rng: rand.New(rand.NewSource(seed))}
}

// EntropySeed reads a seed from the operating system's entropy pool.
func EntropySeed() (uint64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, pfx.Err(err)
	}

	return binary.LittleEndian.Uint64(buf[:]), nil
}

// NewEntropySource seeds a PRNG from system entropy. The seed is returned so
// that callers can log it and replay the run.
func NewEntropySource() (RandomSource, uint64, error) {
	seed, err := EntropySeed()
	if err != nil {
		return nil, 0, err
	}

	return NewRandomSource(seed), seed, nil
}

// drawIndex maps one draw onto {0, ..., n-1}.
func drawIndex(rs RandomSource, n int) int {
	i := int(rs.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Sources builds one source per chain, seeded seed, seed+1, ... A zero seed
// is replaced by one from system entropy. The seeds used are returned.
func Sources(seed uint64, n int) ([]RandomSource, []uint64, error) {
	if seed == 0 {
		var err error
		if seed, err = EntropySeed(); err != nil {
			return nil, nil, err
		}
	}

	sources := make([]RandomSource, n)
	seeds := make([]uint64, n)
	for i := range sources {
		seeds[i] = seed + uint64(i)
		sources[i] = NewRandomSource(seeds[i])
	}

	return sources, seeds, nil
}
