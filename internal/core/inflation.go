package core

import (
	"errors"
	"fmt"
	"sort"
)

// Annual CPI variation for Colombia (percent), as published by DANE.
// 2024 may be partial/projected.
var DefaultCPIRates = map[int]float64{
	2010: 3.17, 2011: 3.73, 2012: 2.44, 2013: 1.94, 2014: 3.66, 2015: 6.77,
	2016: 5.75, 2017: 4.09, 2018: 3.18, 2019: 3.80, 2020: 1.61, 2021: 5.62,
	2022: 13.12, 2023: 9.28, 2024: 5.20,
}

// DefaultBaseYear is the reference year nominal amounts are deflated to.
const DefaultBaseYear = 2023

var ErrBaseYearMissing = errors.New("base year missing from price index")

// PriceIndex is a cumulative price level per year, anchored so the year
// before the earliest rate has index 100.
type PriceIndex map[int]float64

// BuildPriceIndex compounds annual percentage rates into a cumulative index.
// No rounding is applied; only displayed currency figures are rounded, by
// the presentation layer.
func BuildPriceIndex(rates map[int]float64) PriceIndex {
	if len(rates) == 0 {
		return PriceIndex{}
	}
	years := make([]int, 0, len(rates))
	for y := range rates {
		years = append(years, y)
	}
	sort.Ints(years)

	index := PriceIndex{years[0] - 1: 100}
	for _, y := range years {
		index[y] = index[y-1] * (1 + rates[y]/100)
	}
	return index
}

// DeflationFactors maps each year to the multiplier that converts a nominal
// amount of that year into base-year purchasing power. The factor at the
// base year is exactly 1.
func DeflationFactors(rates map[int]float64, baseYear int) (map[int]float64, error) {
	index := BuildPriceIndex(rates)
	base, ok := index[baseYear]
	if !ok {
		return nil, fmt.Errorf("deflation factors for base year %d: %w", baseYear, ErrBaseYearMissing)
	}
	factors := make(map[int]float64, len(index))
	for year, val := range index {
		factors[year] = base / val
	}
	return factors, nil
}
