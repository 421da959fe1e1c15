package cts

import (
	"cmp"
	"fmt"
	stdmath "math"
	"slices"
	"sync"

	"code.hybscloud.com/atomix"

	"github.com/ajroetker/rshwy/rs"
)

// Failure is one lane whose result fell outside the expected range.
type Failure struct {
	Index    int
	Lane     int
	X, Y     float32
	Expected Floaty
	Actual   float32
	ULPs     float64
}

func (f Failure) String() string {
	return fmt.Sprintf("x=%d lane %d\n  Input inX: %14.8g {%#08x}\n  Input inY: %14.8g {%#08x}\n  Expected out: %s\n  Actual out: %14.8g {%#08x} (%.1f ulp)",
		f.Index, f.Lane,
		f.X, stdmath.Float32bits(f.X),
		f.Y, stdmath.Float32bits(f.Y),
		f.Expected,
		f.Actual, stdmath.Float32bits(f.Actual), f.ULPs)
}

// Verification summarizes the comparison of one launch.
type Verification struct {
	// Checked is the number of lanes compared.
	Checked int64
	// Failed is the number of lanes outside tolerance.
	Failed int64
	// MaxULPs is the largest finite ULP error seen, including passing lanes.
	MaxULPs float64
	// Failures holds the first failing lanes by index, at most the
	// requested maximum.
	Failures []Failure
}

// Passed reports whether every lane was within tolerance.
func (v Verification) Passed() bool {
	return v.Failed == 0
}

// Verify compares every lane of out against hypot(x, y) under target.
// The slices must have equal lengths. Work is spread over ctx's workers.
func Verify[T rs.Vector](ctx *rs.Context, target Target, x, y, out []T, maxFailures int) Verification {
	if len(x) != len(out) || len(y) != len(out) {
		panic("cts: verify slice length mismatch")
	}

	var (
		checked atomix.Int64
		failed  atomix.Int64
		mu      sync.Mutex
		maxULPs float64
		fails   []Failure
	)

	ctx.ParallelFor(len(out), func(start, end int) {
		xs := FlattenLanes(x[start:end])
		ys := FlattenLanes(y[start:end])
		got := FlattenLanes(out[start:end])
		ref := make([]float64, len(got))
		Reference(ref, xs, ys)

		w := len(got) / (end - start)
		var local []Failure
		var localMax float64
		for i, a := range got {
			if e := ULPError(ref[i], a); !stdmath.IsInf(e, 0) {
				localMax = max(localMax, e)
			}
			want := target.Expect(ref[i])
			if want.CouldBe(a) {
				continue
			}
			failed.AddAcqRel(1)
			if len(local) < maxFailures {
				local = append(local, Failure{
					Index:    start + i/w,
					Lane:     i % w,
					X:        xs[i],
					Y:        ys[i],
					Expected: want,
					Actual:   a,
					ULPs:     ULPError(ref[i], a),
				})
			}
		}
		checked.AddAcqRel(int64(len(got)))

		mu.Lock()
		maxULPs = max(maxULPs, localMax)
		fails = append(fails, local...)
		mu.Unlock()
	})

	slices.SortFunc(fails, func(a, b Failure) int {
		return cmp.Or(cmp.Compare(a.Index, b.Index), cmp.Compare(a.Lane, b.Lane))
	})
	if len(fails) > maxFailures {
		fails = fails[:max(maxFailures, 0)]
	}

	return Verification{
		Checked:  checked.LoadRelaxed(),
		Failed:   failed.LoadRelaxed(),
		MaxULPs:  maxULPs,
		Failures: fails,
	}
}
