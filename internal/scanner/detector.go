package scanner

import (
	"strconv"
	"strings"

	"github.com/pancakebitgit/escaner/pkg/contracts/domain"
)

// Detect computes the dark pool activity metric for one matched contract
// pair. All three inputs must coerce to numbers; any coercion failure drops
// the pair silently. A result is produced only when
// activity = openInterestFirst - (volumeLast + openInterestLast) is
// strictly positive; zero is excluded.
func Detect(originDay, matchedDay string, origin domain.OriginAggregate, candidate domain.CandidateAggregate) (domain.MatchResult, bool) {
	volumeLast, ok := coerceNumeric(origin.VolumeLast)
	if !ok {
		return domain.MatchResult{}, false
	}
	openIntLast, ok := coerceNumeric(origin.OpenInterestLast)
	if !ok {
		return domain.MatchResult{}, false
	}
	openIntFirst, ok := coerceNumeric(candidate.OpenInterestFirst)
	if !ok {
		return domain.MatchResult{}, false
	}

	activity := openIntFirst - (volumeLast + openIntLast)
	if activity <= 0 {
		return domain.MatchResult{}, false
	}

	return domain.MatchResult{
		OriginDay:         originDay,
		MatchedDay:        matchedDay,
		ContractID:        origin.ContractID,
		VolumeLast:        volumeLast,
		OpenInterestLast:  openIntLast,
		OpenInterestFirst: openIntFirst,
		Activity:          activity,
	}, true
}

// coerceNumeric parses a raw cell value as a float, tolerating thousands
// separators and surrounding whitespace.
func coerceNumeric(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}
