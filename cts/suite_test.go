package cts

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ajroetker/rshwy/rs"
)

func TestRun(t *testing.T) {
	for _, p := range []Precision{Full, Relaxed} {
		t.Run(p.String(), func(t *testing.T) {
			ctx := rs.NewContext(rs.WithWorkers(4))
			defer ctx.Close()

			logger, hook := test.NewNullLogger()
			cfg := DefaultConfig()
			cfg.Elements = 1024
			cfg.Precision = p
			cfg.Logger = logger

			report, err := Run(ctx, cfg)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !report.Passed() {
				var buf bytes.Buffer
				report.WriteTo(&buf)
				t.Fatalf("conformance failed:\n%s", buf.String())
			}
			if len(report.Results) != 4 {
				t.Fatalf("len(Results) = %d, want 4", len(report.Results))
			}
			for i, res := range report.Results {
				lanes := int64(cfg.Elements * (i + 1))
				if res.Checked != lanes {
					t.Errorf("%s: Checked = %d, want %d", res.Kernel, res.Checked, lanes)
				}
			}
			if ctx.Launches() != 4 {
				t.Errorf("Launches() = %d, want 4", ctx.Launches())
			}
			if n := len(hook.AllEntries()); n != 4 {
				t.Errorf("logged %d entries, want 4", n)
			}
			if e := hook.LastEntry(); e == nil || e.Level != logrus.InfoLevel || e.Data["kernel"] != "testHypotFloat4Float4Float4" {
				t.Errorf("last log entry = %+v", e)
			}
		})
	}
}

func TestRunReproducible(t *testing.T) {
	ctx := rs.NewContext()
	defer ctx.Close()

	cfg := DefaultConfig()
	cfg.Elements = 64
	cfg.Widths = []int{3}
	a, err := Run(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.Results[0].MaxULPs != b.Results[0].MaxULPs {
		t.Errorf("MaxULPs %g != %g for the same seed", a.Results[0].MaxULPs, b.Results[0].MaxULPs)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero elements", func(c *Config) { c.Elements = 0 }},
		{"no widths", func(c *Config) { c.Widths = nil }},
		{"width 5", func(c *Config) { c.Widths = []int{1, 5} }},
		{"negative max failures", func(c *Config) { c.MaxFailures = -1 }},
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
			ctx := rs.NewContext(rs.WithWorkers(1))
			defer ctx.Close()
			if _, err := Run(ctx, cfg); err == nil {
				t.Error("Run with invalid config succeeded")
			}
		})
	}
}

func TestRunClosedContext(t *testing.T) {
	ctx := rs.NewContext(rs.WithWorkers(1))
	ctx.Close()
	if _, err := Run(ctx, DefaultConfig()); !errors.Is(err, rs.ErrClosed) {
		t.Errorf("Run on closed context: err = %v, want ErrClosed", err)
	}
}

func TestReportWriteTo(t *testing.T) {
	report := &Report{
		Target: Target{Precision: Full},
		Seed:   1,
		Results: []Result{
			{Kernel: "testHypotFloatFloatFloat", Element: rs.F32, Elements: 1, Verification: Verification{Checked: 1}},
			{
				Kernel: "testHypotFloat2Float2Float2", Element: rs.F32_2, Elements: 2,
				Verification: Verification{
					Checked: 4, Failed: 3,
					Failures: []Failure{{Index: 1, Lane: 0, X: 3, Y: 4, Expected: Target{}.Expect(5), Actual: 6}},
				},
			},
		},
	}
	if report.Passed() || report.FailCount() != 3 {
		t.Fatalf("Passed=%v FailCount=%d", report.Passed(), report.FailCount())
	}

	var buf bytes.Buffer
	n, err := report.WriteTo(&buf)
	if err != nil || n != int64(buf.Len()) {
		t.Fatalf("WriteTo = %d, %v (buffer has %d)", n, err, buf.Len())
	}
	out := buf.String()
	for _, want := range []string{
		"precision=full ulp=4",
		"PASS testHypotFloatFloatFloat",
		"FAIL testHypotFloat2Float2Float2",
		"float2",
		"Input inX:",
		"... 2 more",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
