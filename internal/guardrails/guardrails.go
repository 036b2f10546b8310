// Package guardrails holds the pay-floor and location predicates applied
// before a posting is allowed into the digest. Pay fails closed (unparseable
// means reject); location fails open (unknown means accept), since location
// strings are noisy and often missing.
package guardrails

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultMinHourly is the pay floor in $/hr.
const DefaultMinHourly = 25

var payPattern = regexp.MustCompile(`(?i)^\$?\s*(\d+)(?:\s*-\s*\$?\s*(\d+))?\s*/\s*(hr|yr)`)

// hoursPerYear converts annual salaries to hourly: 40 hours over 52 weeks.
const hoursPerYear = 2080

// MeetsMinPay reports whether salary indicates at least minHourly $/hr.
// Accepted forms: "$25/hr", "$25-$30/hr", "$66362-$83000/yr". Ranges use the
// lower bound. Empty, "N/A", or anything unparseable is rejected.
func MeetsMinPay(salary string, minHourly float64) bool {
	s := strings.TrimSpace(salary)
	if s == "" {
		return false
	}
	switch strings.ToUpper(s) {
	case "N/A", "NA":
		return false
	}
	m := payPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	low, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return false
	}
	if strings.EqualFold(m[3], "yr") {
		low /= hoursPerYear
	}
	return low >= minHourly
}

// nonUSTokens reject a location outright; substring match, lowercased input.
var nonUSTokens = []string{
	"canada", "ontario", "quebec", "uk", "united kingdom", "london",
	"europe", "india", "australia", "toronto", "vancouver", "calgary",
	"brisbane",
}

// IsUSALocation reports whether location looks US-based. The blocklist wins;
// everything else, including the empty string, is accepted. Positive US
// markers ("remote", state abbreviations, "United States") need no explicit
// check under the fail-open default, so only the rejections are listed.
func IsUSALocation(location string) bool {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return true
	}
	lower := strings.ToLower(loc)
	for _, token := range nonUSTokens {
		if strings.Contains(lower, token) {
			return false
		}
	}
	return true
}
