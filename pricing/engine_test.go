package pricing

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-6

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine(nil) error = %v", err)
	}
	return e
}

func referenceInput() CalculationInput {
	return CalculationInput{
		Width:           2,
		Height:          2,
		HasChambranle:   true,
		HasFacade:       true,
		SlideType:       SlideScala,
		SlideCount:      2,
		TransportZone:   "tunis",
		DiscountPercent: 0,
	}
}

func TestComputeArea(t *testing.T) {
	tests := []struct {
		name       string
		width      float64
		height     float64
		chambranle bool
		expect     float64
	}{
		{"with chambranle", 2, 2, true, 4.41},
		{"without chambranle", 2, 2, false, 4},
		{"rectangular without", 1.5, 2.4, false, 3.6},
		{"rectangular with", 1.5, 2.4, true, 1.6 * 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeArea(tt.width, tt.height, tt.chambranle)
			if math.Abs(got-tt.expect) > eps {
				t.Errorf("ComputeArea(%v, %v, %v) = %v, want %v",
					tt.width, tt.height, tt.chambranle, got, tt.expect)
			}
		})
	}
}

func TestComputeArea_ChambranleIdentity(t *testing.T) {
	dims := []float64{0.1, 0.5, 1, 1.75, 2, 3.3, 10, 250}
	for _, w := range dims {
		for _, h := range dims {
			with := ComputeArea(w, h, true)
			without := ComputeArea(w, h, false)
			want := without + 0.1*(w+h) + 0.01
			if math.Abs(with-want) > 1e-9*math.Max(1, want) {
				t.Errorf("w=%v h=%v: with chambranle = %v, want %v", w, h, with, want)
			}
		}
	}
}

func TestComputeDiscountAmount(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name      string
		area      float64
		facade    bool
		slideType SlideType
		count     int
		percent   float64
		expect    float64
	}{
		{"zero percent", 4.41, true, SlideScala, 2, 0, 0},
		{"ten percent reference", 4.41, true, SlideScala, 2, 10, 218.45},
		{"full discount", 4.41, true, SlideScala, 2, 100, 2184.5},
		{"without facade metabox", 4, false, SlideMetabox, 3, 50, (4*360 + 90) * 0.5},
		{"no slides", 1, true, SlideMetabox, 0, 20, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ComputeDiscountAmount(tt.area, tt.facade, tt.slideType, tt.count, tt.percent)
			if math.Abs(got-tt.expect) > eps {
				t.Errorf("ComputeDiscountAmount() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestComputeDiscountAmount_Bounds(t *testing.T) {
	e := newTestEngine(t)
	for _, facade := range []bool{true, false} {
		for _, st := range SlideTypes {
			area := ComputeArea(1.2, 2.6, true)
			if got := e.ComputeDiscountAmount(area, facade, st, 7, 0); got != 0 {
				t.Errorf("facade=%v slide=%s: 0%% discount = %v, want exactly 0", facade, st, got)
			}
			base := area*e.Tariff().RateFor(facade) + e.Tariff().PriceFor(st)*7
			if got := e.ComputeDiscountAmount(area, facade, st, 7, 100); got != base {
				t.Errorf("facade=%v slide=%s: 100%% discount = %v, want exactly %v", facade, st, got, base)
			}
		}
	}
}

func TestCompute_ReferenceScenarios(t *testing.T) {
	e := newTestEngine(t)

	withoutChambranle := referenceInput()
	withoutChambranle.HasChambranle = false

	discounted := referenceInput()
	discounted.DiscountPercent = 10

	tests := []struct {
		name        string
		input       CalculationInput
		expectArea  float64
		expectDisc  float64
		expectTotal float64
	}{
		{"chambranle facade scala tunis", referenceInput(), 4.41, 0, 2908.717},
		{"without chambranle", withoutChambranle, 4, 0, 2674.525},
		{"ten percent discount", discounted, 4.41, 218.45, 2648.7615},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Compute(tt.input)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if math.Abs(got.Area-tt.expectArea) > eps {
				t.Errorf("Area = %v, want %v", got.Area, tt.expectArea)
			}
			if math.Abs(got.DiscountAmount-tt.expectDisc) > eps {
				t.Errorf("DiscountAmount = %v, want %v", got.DiscountAmount, tt.expectDisc)
			}
			if math.Abs(got.TotalPrice-tt.expectTotal) > eps {
				t.Errorf("TotalPrice = %v, want %v", got.TotalPrice, tt.expectTotal)
			}
			if got.TransportFee != 127.5 {
				t.Errorf("TransportFee = %v, want 127.5", got.TransportFee)
			}
			pretax := got.BaseMaterialCost + got.SlidesCost - got.DiscountAmount + got.Surcharge + got.TransportFee
			if math.Abs(pretax+got.TaxAmount-got.TotalPrice) > eps {
				t.Errorf("pre-tax %v + tax %v != total %v", pretax, got.TaxAmount, got.TotalPrice)
			}
		})
	}
}

func TestComputeTotalPrice_SingleMultiplierEquivalence(t *testing.T) {
	e := newTestEngine(t)
	input := referenceInput()
	for _, chambranle := range []bool{true, false} {
		input.HasChambranle = chambranle
		area := ComputeArea(input.Width, input.Height, chambranle)
		disc := e.ComputeDiscountAmount(area, input.HasFacade, input.SlideType, input.SlideCount, 15)
		got := e.ComputeTotalPrice(input, disc)
		want := 1.19 * ((area*450 + 200 - disc) + area*30 + 127.5)
		if math.Abs(got-want) > eps {
			t.Errorf("chambranle=%v: total = %v, want %v", chambranle, got, want)
		}
	}
}

func TestComputeTotalPrice_Monotonic(t *testing.T) {
	e := newTestEngine(t)

	total := func(in CalculationInput) float64 {
		b, err := e.Compute(in)
		if err != nil {
			t.Fatalf("Compute(%+v) error = %v", in, err)
		}
		return b.TotalPrice
	}

	t.Run("width", func(t *testing.T) {
		in := referenceInput()
		prev := math.Inf(-1)
		for w := 0.1; w < 5; w += 0.3 {
			in.Width = w
			cur := total(in)
			if cur < prev {
				t.Errorf("width %v: total %v < previous %v", w, cur, prev)
			}
			prev = cur
		}
	})

	t.Run("height", func(t *testing.T) {
		in := referenceInput()
		prev := math.Inf(-1)
		for h := 0.1; h < 5; h += 0.3 {
			in.Height = h
			cur := total(in)
			if cur < prev {
				t.Errorf("height %v: total %v < previous %v", h, cur, prev)
			}
			prev = cur
		}
	})

	t.Run("slide count", func(t *testing.T) {
		in := referenceInput()
		prev := math.Inf(-1)
		for n := 0; n <= 20; n++ {
			in.SlideCount = n
			cur := total(in)
			if cur < prev {
				t.Errorf("slides %d: total %v < previous %v", n, cur, prev)
			}
			prev = cur
		}
	})

	t.Run("transport fee", func(t *testing.T) {
		in := referenceInput()
		prev := math.Inf(-1)
		for _, id := range []ZoneID{"tunis", "capbon", "sousse", "djerba"} {
			in.TransportZone = id
			cur := total(in)
			if cur < prev {
				t.Errorf("zone %s: total %v < previous %v", id, cur, prev)
			}
			prev = cur
		}
	})

	t.Run("discount", func(t *testing.T) {
		in := referenceInput()
		prev := math.Inf(1)
		for p := 0.0; p <= 100; p += 5 {
			in.DiscountPercent = p
			cur := total(in)
			if cur > prev {
				t.Errorf("discount %v: total %v > previous %v", p, cur, prev)
			}
			prev = cur
		}
	})
}

func TestComputeTotalPrice_NegativeAreaClamped(t *testing.T) {
	e := newTestEngine(t)
	in := referenceInput()
	in.HasChambranle = false
	in.Width = -1
	in.Height = 2
	in.SlideCount = 0

	got := e.ComputeTotalPrice(in, 0)
	want := 127.5 * 1.19
	if math.Abs(got-want) > eps {
		t.Errorf("ComputeTotalPrice() with negative area = %v, want %v", got, want)
	}
}

func TestComputeTotalPrice_UnknownZoneAddsNoFee(t *testing.T) {
	e := newTestEngine(t)
	in := referenceInput()
	in.TransportZone = "paris"

	zone, _ := e.Tariff().Zone(referenceInput().TransportZone)
	want := e.ComputeTotalPrice(referenceInput(), 0) - zone.Fee*e.Tariff().TaxMultiplier
	if got := e.ComputeTotalPrice(in, 0); math.Abs(got-want) > eps {
		t.Errorf("ComputeTotalPrice() with unknown zone = %v, want %v", got, want)
	}
}

func TestCompute_ValidationErrors(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name   string
		mutate func(*CalculationInput)
		kind   ErrorKind
		field  string
	}{
		{"zero width", func(in *CalculationInput) { in.Width = 0 }, NonPositive, FieldWidth},
		{"negative height", func(in *CalculationInput) { in.Height = -2 }, NonPositive, FieldHeight},
		{"NaN width", func(in *CalculationInput) { in.Width = math.NaN() }, NonPositive, FieldWidth},
		{"infinite width", func(in *CalculationInput) { in.Width = math.Inf(1) }, OutOfRange, FieldWidth},
		{"infinite height", func(in *CalculationInput) { in.Height = math.Inf(1) }, OutOfRange, FieldHeight},
		{"area overflow", func(in *CalculationInput) { in.Width, in.Height = 1e200, 1e200 }, OutOfRange, FieldWidth},
		{"material cost overflow", func(in *CalculationInput) { in.Height = 1e307 }, OutOfRange, FieldHeight},
		{"infinite discount", func(in *CalculationInput) { in.DiscountPercent = math.Inf(1) }, OutOfRange, FieldDiscountPercent},
		{"NaN discount", func(in *CalculationInput) { in.DiscountPercent = math.NaN() }, OutOfRange, FieldDiscountPercent},
		{"negative slides", func(in *CalculationInput) { in.SlideCount = -1 }, NegativeCount, FieldSlideCount},
		{"discount over 100", func(in *CalculationInput) { in.DiscountPercent = 150 }, OutOfRange, FieldDiscountPercent},
		{"negative discount", func(in *CalculationInput) { in.DiscountPercent = -1 }, OutOfRange, FieldDiscountPercent},
		{"unknown zone", func(in *CalculationInput) { in.TransportZone = "paris" }, UnknownOption, FieldTransportZone},
		{"unknown slide type", func(in *CalculationInput) { in.SlideType = SlideType(9) }, UnknownOption, FieldSlideType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceInput()
			tt.mutate(&in)
			got, err := e.Compute(in)
			if err == nil {
				t.Fatalf("Compute() error = nil, breakdown = %+v", got)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Compute() error type = %T, want *ValidationError", err)
			}
			if verr.Kind != tt.kind || verr.Field != tt.field {
				t.Errorf("Compute() error = %v/%s, want %v/%s", verr.Kind, verr.Field, tt.kind, tt.field)
			}
			if got != (PriceBreakdown{}) {
				t.Errorf("Compute() returned a partial breakdown %+v", got)
			}
		})
	}
}

func TestNewEngine_RejectsInvalidTariff(t *testing.T) {
	tariff := DefaultTariff()
	tariff.Zones = nil
	if _, err := NewEngine(tariff); err == nil {
		t.Fatal("NewEngine() with no zones error = nil, want error")
	}
}
