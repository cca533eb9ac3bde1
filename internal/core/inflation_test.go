package core

import (
	"errors"
	"math"
	"testing"
)

func TestBuildPriceIndexAnchor(t *testing.T) {
	rates := map[int]float64{2010: 3.17, 2011: 3.73}
	index := BuildPriceIndex(rates)

	if got := index[2009]; got != 100 {
		t.Fatalf("anchor year index = %v, want 100", got)
	}
	want2010 := 100 * 1.0317
	if math.Abs(index[2010]-want2010) > 1e-9 {
		t.Errorf("index[2010] = %v, want %v", index[2010], want2010)
	}
	want2011 := want2010 * 1.0373
	if math.Abs(index[2011]-want2011) > 1e-9 {
		t.Errorf("index[2011] = %v, want %v", index[2011], want2011)
	}
}

func TestBuildPriceIndexEmpty(t *testing.T) {
	if index := BuildPriceIndex(nil); len(index) != 0 {
		t.Fatalf("expected empty index, got %v", index)
	}
}

func TestDeflationFactors(t *testing.T) {
	rates := map[int]float64{2010: 3.17, 2011: 3.73}
	factors, err := DeflationFactors(rates, 2011)
	if err != nil {
		t.Fatal(err)
	}

	if factors[2011] != 1.0 {
		t.Errorf("factor at base year = %v, want exactly 1.0", factors[2011])
	}
	// With a positive 2011 rate, a 2010 peso is worth more than a 2011 peso.
	if factors[2010] <= 1 {
		t.Errorf("factor[2010] = %v, want > 1", factors[2010])
	}
}

func TestDeflationFactorsMissingBaseYear(t *testing.T) {
	_, err := DeflationFactors(map[int]float64{2010: 3.17}, 1999)
	if !errors.Is(err, ErrBaseYearMissing) {
		t.Fatalf("expected ErrBaseYearMissing, got %v", err)
	}
}

func TestDeflationRoundTrip(t *testing.T) {
	factors, err := DeflationFactors(DefaultCPIRates, DefaultBaseYear)
	if err != nil {
		t.Fatal(err)
	}
	index := BuildPriceIndex(DefaultCPIRates)

	const nominal = 123456789.0
	for year := range DefaultCPIRates {
		roundTrip := nominal * factors[year] * (index[year] / index[DefaultBaseYear])
		if math.Abs(roundTrip-nominal) > 1e-6*nominal {
			t.Errorf("round trip for %d: got %v, want %v", year, roundTrip, nominal)
		}
	}
}
