package qsweep

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSplit(t *testing.T) {
	Convey("Given ranges split across workers", t, func() {
		for _, total := range []uint64{1, 5, 64, 100, 1023} {
			for _, parts := range []int{1, 3, 8, 2000} {
				slices := split(total, parts)

				So(len(slices), ShouldEqual, min(uint64(parts), total))
				So(slices[0][0], ShouldEqual, 0)
				So(slices[len(slices)-1][1], ShouldEqual, total)

				for i := 1; i < len(slices); i++ {
					So(slices[i][0], ShouldEqual, slices[i-1][1])

					// Slice lengths differ by at most one, longer ones first.
					prev := slices[i-1][1] - slices[i-1][0]
					cur := slices[i][1] - slices[i][0]
					So(prev-cur, ShouldBeLessThanOrEqualTo, 1)
					So(cur, ShouldBeGreaterThan, 0)
				}
			}
		}
	})

	Convey("Given nothing to split", t, func() {
		So(split(0, 4), ShouldBeNil)
		So(split(10, 0), ShouldBeNil)
	})
}

func TestPoolRun(t *testing.T) {
	Convey("Given a pool of four workers", t, func() {
		pool := NewPool(context.Background(), 4)

		Reset(func() {
			pool.Close()
		})

		So(pool.Size(), ShouldEqual, 4)

		Convey("Run should visit every item exactly once", func() {
			const total = 1001
			visits := make([]int32, total)

			var mu sync.Mutex
			ranks := map[int]bool{}

			err := pool.Run(total, func(rank int, lo, hi uint64) {
				mu.Lock()
				ranks[rank] = true
				mu.Unlock()

				for i := lo; i < hi; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})

			So(err, ShouldBeNil)
			So(len(ranks), ShouldEqual, 4)
			for _, v := range visits {
				So(v, ShouldEqual, 1)
			}
		})

		Convey("Run with fewer items than workers should use one worker per item", func() {
			var calls, items int32
			err := pool.Run(2, func(_ int, lo, hi uint64) {
				atomic.AddInt32(&calls, 1)
				atomic.AddInt32(&items, int32(hi-lo))
			})

			So(err, ShouldBeNil)
			So(calls, ShouldEqual, 2)
			So(items, ShouldEqual, 2)
		})

		Convey("Run should not return before every slice is done", func() {
			var done int32
			err := pool.Run(4000, func(_ int, lo, hi uint64) {
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&done, 1)
				}
			})

			So(err, ShouldBeNil)
			So(atomic.LoadInt32(&done), ShouldEqual, 4000)
		})

		Convey("Concurrent runs should be serialized", func() {
			var active, overlap int32
			var wg sync.WaitGroup

			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = pool.Run(1, func(_ int, _, _ uint64) {
						if atomic.AddInt32(&active, 1) > 1 {
							atomic.StoreInt32(&overlap, 1)
						}
						atomic.AddInt32(&active, -1)
					})
				}()
			}
			wg.Wait()

			So(atomic.LoadInt32(&overlap), ShouldEqual, 0)
		})
	})
}

func TestPoolClose(t *testing.T) {
	Convey("Given a closed pool", t, func() {
		pool := NewPool(context.Background(), 2)
		pool.Close()

		Convey("Run should fail without calling fn", func() {
			called := false
			err := pool.Run(10, func(_ int, _, _ uint64) { called = true })

			So(err, ShouldEqual, ErrPoolClosed)
			So(called, ShouldBeFalse)
		})

		Convey("Closing again should be a no-op", func() {
			So(func() { pool.Close() }, ShouldNotPanic)
		})
	})

	Convey("Given a pool whose context is cancelled", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		pool := NewPool(ctx, 2)
		cancel()

		So(pool.Run(10, func(_ int, _, _ uint64) {}), ShouldEqual, ErrPoolClosed)
	})

	Convey("Given a pool with no explicit size", t, func() {
		pool := NewPool(context.Background(), 0)
		defer pool.Close()

		So(pool.Size(), ShouldBeGreaterThan, 0)
	})
}
