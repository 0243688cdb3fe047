package analysis

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/twobody"
)

func TestPowerSpectrumImpulse(t *testing.T) {
	ps, err := PowerSpectrum([]float64{1, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 4 {
		t.Fatalf("got %d bins, want 4", len(ps))
	}
	for k, v := range ps {
		if math.Abs(v-1) > 1e-15 {
			t.Errorf("bin %d = %v, want 1", k, v)
		}
	}
}

func TestPowerSpectrumMatchesDirectTransform(t *testing.T) {
	for _, data := range [][]float64{
		{0.3, -1.2, 2.5, 0, 4.1, -0.7, 1.9, 3.3, -2.2, 0.8, 1.1, -3.4, 0.2, 2.7, -1.6, 0.9},
		{0.3, -1.2, 2.5, 0, 4.1, -0.7, 1.9, 3.3, -2.2, 0.8, 1.1, -3.4},
	} {
		ps, err := PowerSpectrum(data)
		if err != nil {
			t.Fatal(err)
		}

		n := len(data)
		for k := range ps {
			var want complex128
			for j, v := range data {
				want += complex(v, 0) * cmplx.Rect(1, -2*math.Pi*float64(j*k)/float64(n))
			}
			if math.Abs(ps[k]-cmplx.Abs(want)) > 1e-9 {
				t.Errorf("n=%d bin %d = %v, want %v", n, k, ps[k], cmplx.Abs(want))
			}
		}
	}
}

func TestPowerSpectrumRejectsShortSeries(t *testing.T) {
	for _, n := range []int{0, 1} {
		if _, err := PowerSpectrum(make([]float64, n)); err != ErrShortSeries {
			t.Errorf("len %d: expected ErrShortSeries, got %v", n, err)
		}
	}
}

func TestDominantPeriodSine(t *testing.T) {
	const dt, period = 0.01, 3.7
	samples := make([]float64, 5000)
	for i := range samples {
		samples[i] = 2 + math.Sin(2*math.Pi*float64(i)*dt/period)
	}

	got, err := DominantPeriod(samples, dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-period)/period > 0.02 {
		t.Errorf("period %g, want %g", got, period)
	}
}

func TestDominantPeriodCircularOrbit(t *testing.T) {
	p := twobody.DefaultParams()
	res, err := sim.New(p, nil).Run(context.Background(), twobody.CircularPair(p, 1), sim.Config{Dt: 0.01, Duration: 41})
	if err != nil {
		t.Fatal(err)
	}

	x1 := make([]float64, len(res.States))
	for i, s := range res.States {
		x1[i] = s.X1
	}

	got, err := DominantPeriod(x1, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	want := 2 * math.Pi / math.Sqrt(2)
	if math.Abs(got-want)/want > 0.03 {
		t.Errorf("period %g, want %g", got, want)
	}
}

func TestDominantPeriodErrors(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2, 3}, 0.1); err != ErrShortSeries {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
	if _, err := DominantPeriod(make([]float64, 64), 0.1); err != ErrNoOscillation {
		t.Errorf("expected ErrNoOscillation, got %v", err)
	}

	flat := make([]float64, 100)
	for i := range flat {
		flat[i] = 0.1
	}
	if _, err := DominantPeriod(flat, 0.1); err != ErrNoOscillation {
		t.Errorf("flat series: expected ErrNoOscillation, got %v", err)
	}
}
