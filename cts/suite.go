package cts

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ajroetker/rshwy/internal/logging"
	"github.com/ajroetker/rshwy/rs"
)

// Config controls a conformance run.
type Config struct {
	// Elements is the number of invocations per kernel.
	Elements int
	// Seed makes input generation reproducible.
	Seed uint64
	// Widths lists the vector widths to run, each in [1, 4].
	Widths []int
	// Precision selects the tolerance.
	Precision Precision
	// IncludeExtremes mixes special values into the inputs.
	IncludeExtremes bool
	// MaxFailures caps the failures recorded per kernel.
	MaxFailures int

	Logger logrus.FieldLogger
}

// DefaultConfig returns the configuration used by the hypotcts command
// when no flags are given.
func DefaultConfig() Config {
	return Config{
		Elements:        4096,
		Seed:            0x2c0ffee,
		Widths:          []int{1, 2, 3, 4},
		Precision:       Full,
		IncludeExtremes: true,
		MaxFailures:     10,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.Elements <= 0 {
		errs = append(errs, fmt.Errorf("elements must be positive, got %d", c.Elements))
	}
	if len(c.Widths) == 0 {
		errs = append(errs, errors.New("no vector widths selected"))
	}
	for _, w := range c.Widths {
		if _, err := rs.ElementFor(w); err != nil {
			errs = append(errs, err)
		}
	}
	if c.MaxFailures < 0 {
		errs = append(errs, fmt.Errorf("max failures must not be negative, got %d", c.MaxFailures))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("cts: invalid config: %w", err)
	}
	return nil
}

// Result is the outcome of one kernel.
type Result struct {
	Kernel   string
	Element  rs.Element
	Elements int
	Verification
}

// Report is the outcome of a conformance run.
type Report struct {
	Target  Target
	Seed    uint64
	Results []Result
}

// Passed reports whether every kernel passed.
func (r *Report) Passed() bool {
	return r.FailCount() == 0
}

// FailCount returns the number of failing lanes over all kernels.
func (r *Report) FailCount() int64 {
	var n int64
	for _, res := range r.Results {
		n += res.Failed
	}
	return n
}

// WriteTo writes a human-readable summary to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "hypot conformance: precision=%s ulp=%d seed=%#x\n", r.Target.Precision, r.Target.ULP(), r.Seed)
	for _, res := range r.Results {
		status := "PASS"
		if !res.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%-4s %-28s %-6s elements=%d lanes=%d failed=%d max_ulp=%.2f\n",
			status, res.Kernel, res.Element, res.Elements, res.Checked, res.Failed, res.MaxULPs)
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "  %s\n", strings.ReplaceAll(f.String(), "\n", "\n  "))
		}
		if shown := int64(len(res.Failures)); res.Failed > shown {
			fmt.Fprintf(&b, "  ... %d more\n", res.Failed-shown)
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Run executes every configured kernel width on ctx and verifies the results.
func Run(ctx *rs.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	report := &Report{Target: Target{Precision: cfg.Precision}, Seed: cfg.Seed}
	script := &HypotScript{}

	for _, w := range cfg.Widths {
		var (
			res Result
			err error
		)
		switch w {
		case 1:
			res, err = runKernel[float32](ctx, script, report.Target, cfg)
		case 2:
			res, err = runKernel[rs.Float2](ctx, script, report.Target, cfg)
		case 3:
			res, err = runKernel[rs.Float3](ctx, script, report.Target, cfg)
		case 4:
			res, err = runKernel[rs.Float4](ctx, script, report.Target, cfg)
		}
		if err != nil {
			return nil, err
		}

		entry := log.WithFields(logrus.Fields{
			"kernel":  res.Kernel,
			"lanes":   res.Checked,
			"failed":  res.Failed,
			"max_ulp": res.MaxULPs,
		})
		if res.Passed() {
			entry.Info("kernel passed")
		} else {
			entry.Warn("kernel failed")
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func runKernel[T rs.Vector](ctx *rs.Context, script *HypotScript, target Target, cfg Config) (Result, error) {
	elem := rs.ElementOf[T]()
	lanes := cfg.Elements * elem.Lanes()

	// One stream per operand and width, so adding a width does not shift
	// the inputs of the others.
	rx := rand.New(rand.NewPCG(cfg.Seed, uint64(2*elem.VectorSize)))
	ry := rand.New(rand.NewPCG(cfg.Seed, uint64(2*elem.VectorSize+1)))
	xs := PackLanes[T](RandomFloats(rx, lanes, cfg.IncludeExtremes))
	ys := PackLanes[T](RandomFloats(ry, lanes, cfg.IncludeExtremes))

	in := rs.NewAllocationFrom(xs)
	out, err := rs.NewAllocation[T](cfg.Elements)
	if err != nil {
		return Result{}, err
	}
	script.AllocInY.Bind(rs.NewAllocationFrom(ys))
	defer script.AllocInY.Unbind()

	if err := ForEach(ctx, script, in, out); err != nil {
		return Result{}, err
	}

	return Result{
		Kernel:       KernelName[T](),
		Element:      elem,
		Elements:     cfg.Elements,
		Verification: Verify(ctx, target, xs, ys, out.Slice(), cfg.MaxFailures),
	}, nil
}
