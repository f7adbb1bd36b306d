// Package shipping resolves a delivery address to a flat shipping fee. The
// fee is an opaque non-negative amount as far as pricing is concerned.
package shipping

import "strings"

type Calculator struct {
	zones      map[string]int64
	defaultFee int64
}

// NewCalculator builds a calculator from a province-to-fee table. Lookups are
// case-insensitive; unknown provinces get the default fee.
func NewCalculator(zones map[string]int64, defaultFee int64) *Calculator {
	normalized := make(map[string]int64, len(zones))
	for province, fee := range zones {
		normalized[normalize(province)] = fee
	}
	return &Calculator{zones: normalized, defaultFee: defaultFee}
}

func normalize(province string) string {
	return strings.ToLower(strings.TrimSpace(province))
}

func (c *Calculator) FeeFor(province string) int64 {
	if fee, ok := c.zones[normalize(province)]; ok {
		return fee
	}
	return c.defaultFee
}
