package service

import (
	"regexp"
	"strconv"
	"strings"

	"hitechhomes/internal/model"
)

// Patterns applied in fixed order: BHK, price ceiling, price range, city.
// The range pattern runs after the ceiling pattern and overwrites both bounds
// when both match. The trigger phrases of the ceiling pattern are grouped so a
// quantity is captured after any of them.
var (
	bhkPattern     = regexp.MustCompile(`(?i)(\d+)\s*(?:bhk|bedroom|bed)`)
	ceilingPattern = regexp.MustCompile(`(?i)(?:under|below|less than|up to)\s*(\d+(?:\.\d+)?)\s*(lakh|l|cr|crore)`)
	rangePattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*(lakh|l|cr|crore)`)
	cityPattern    = regexp.MustCompile(`(?i)in\s+(\w+)|(\w+)\s+city|near\s+(\w+)`)
)

// ExtractIntent parses a free-text chat message into structured filters.
// Pure function: no store or network access, and calling it twice on the same
// message yields identical results. A message with no recognizable tokens
// yields an empty intent, which is a valid state handled by the search layer.
func ExtractIntent(message string) model.ParsedIntent {
	var intent model.ParsedIntent

	if m := bhkPattern.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			intent.BHK = &n
		}
	}

	if m := ceilingPattern.FindStringSubmatch(message); m != nil {
		if amount, err := strconv.ParseFloat(m[1], 64); err == nil {
			max := amount * unitMultiplier(m[2])
			intent.MaxPrice = &max
		}
	}

	if m := rangePattern.FindStringSubmatch(message); m != nil {
		lo, errLo := strconv.ParseFloat(m[1], 64)
		hi, errHi := strconv.ParseFloat(m[2], 64)
		if errLo == nil && errHi == nil {
			mult := unitMultiplier(m[3])
			min := lo * mult
			max := hi * mult
			intent.MinPrice = &min
			intent.MaxPrice = &max
		}
	}

	// City keeps the original casing of the input word; matching against
	// stored city names is case-insensitive downstream.
	if m := cityPattern.FindStringSubmatch(message); m != nil {
		for _, group := range m[1:] {
			if group != "" {
				city := group
				intent.City = &city
				break
			}
		}
	}

	return intent
}

// unitMultiplier converts an Indian price unit token to currency units:
// crore is 10,000,000, lakh (and its short form) is 100,000.
func unitMultiplier(unit string) float64 {
	if strings.HasPrefix(strings.ToLower(unit), "cr") {
		return 1e7
	}
	return 1e5
}
