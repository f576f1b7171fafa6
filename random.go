package qsweep

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// newRankSource returns the random stream for one worker rank. Streams for
// different ranks of the same seed are independent.
func newRankSource(seed int64, rank int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(rank)))
}

/*
RandomFill overwrites every amplitude with a complex value whose real and
imaginary parts are uniform in [0, 1). The index range is split into one
contiguous slice per pool worker and each slice draws from its own stream
seeded by (seed, rank), so equal seeds and worker counts give equal vectors.

A cancelled ctx stops slices that have not started and is returned.
*/
func RandomFill(ctx context.Context, sv *StateVector, seed int64) error {
	workers := sv.pool.Size()
	amps := sv.amplitudes

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for rank, s := range split(uint64(len(amps)), workers) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rng := newRankSource(seed, rank)
			for i := s[0]; i < s[1]; i++ {
				amps[i] = complex(rng.Float64(), rng.Float64())
			}
			return nil
		})
	}

	return g.Wait()
}
