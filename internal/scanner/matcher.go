package scanner

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pancakebitgit/escaner/internal/errors"
	"github.com/pancakebitgit/escaner/internal/files"
	"github.com/pancakebitgit/escaner/pkg/contracts/domain"
)

// ErrNoReadableInput is returned when not a single input file could be
// loaded. It is the only failure mode that ends a run; everything else
// degrades to fewer results.
var ErrNoReadableInput = errors.NewNotFoundError("readable snapshot input")

// SnapshotSource loads the snapshot for a file path. Matcher runs go
// through it so callers can substitute a fake in tests and count parses.
type SnapshotSource func(path string) (*domain.DailySnapshot, error)

// dayAggregates holds both aggregate forms for one snapshot file, computed
// at most once per run.
type dayAggregates struct {
	last  map[string]domain.OriginAggregate
	first map[string]domain.CandidateAggregate
	// order lists contracts by the position of their last row, which fixes
	// result order and makes reruns on identical input byte-identical.
	order []string
}

// runCache memoizes per-file aggregates for a single matcher run, keyed by
// file path. A nil entry records a failed load so each file is read at most
// once per run. The cache is owned by the run and never shared.
type runCache map[string]*dayAggregates

// Matcher scans an ascending sequence of daily snapshots and pairs each
// origin-day contract with the first later day on which it reappears.
type Matcher struct {
	logger *slog.Logger
	source SnapshotSource
}

// NewMatcher creates a matcher reading snapshots through source.
func NewMatcher(logger *slog.Logger, source SnapshotSource) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger, source: source}
}

// Run executes the scan over days, which must be in ascending date order.
// For each day taken as origin, every contract in its last-per-contract
// aggregate is searched for in strictly later days, in order; the first day
// containing the contract is its only candidate, regardless of the eventual
// activity sign. Contracts absent from every later day produce nothing.
// A single-day list is valid and yields zero results.
func (m *Matcher) Run(ctx context.Context, days []files.SnapshotFile) ([]domain.MatchResult, error) {
	cache := make(runCache, len(days))
	var results []domain.MatchResult

	for i, day := range days {
		origin := m.aggregates(ctx, cache, day)
		if origin == nil {
			continue
		}

		m.logger.InfoContext(ctx, "scanning origin day",
			slog.String("origin_day", day.Label),
			slog.Int("contract_count", len(origin.order)))

		for _, contractID := range origin.order {
			originAgg := origin.last[contractID]

			for j := i + 1; j < len(days); j++ {
				candidate := m.aggregates(ctx, cache, days[j])
				if candidate == nil {
					continue
				}

				candidateAgg, present := candidate.first[contractID]
				if !present {
					continue
				}

				if result, ok := Detect(day.Label, days[j].Label, originAgg, candidateAgg); ok {
					results = append(results, result)
				}
				// First reappearance wins; later days are never considered
				// for this (origin day, contract).
				break
			}
		}
	}

	if len(days) > 0 && !anyReadable(cache) {
		return nil, ErrNoReadableInput
	}

	return results, nil
}

// RunPair is the two-snapshot entry point: the first file is the sole
// origin and the second the sole candidate. It is the length-2 case of Run
// and shares its implementation.
func (m *Matcher) RunPair(ctx context.Context, origin, candidate files.SnapshotFile) ([]domain.MatchResult, error) {
	return m.Run(ctx, []files.SnapshotFile{origin, candidate})
}

// aggregates returns the cached aggregate pair for a file, loading and
// reducing the snapshot on first use. Failed loads are cached as nil so a
// file is parsed at most once per run.
func (m *Matcher) aggregates(ctx context.Context, cache runCache, day files.SnapshotFile) *dayAggregates {
	if aggs, seen := cache[day.Path]; seen {
		return aggs
	}

	snap, err := m.source(day.Path)
	if err != nil {
		m.logger.WarnContext(ctx, "skipping unreadable snapshot file",
			slog.String("path", day.Path),
			slog.String("error", err.Error()))
		cache[day.Path] = nil
		return nil
	}

	aggs := &dayAggregates{
		last:  LastPerContract(snap),
		first: FirstPerContract(snap),
		order: contractsInLastRowOrder(snap),
	}
	cache[day.Path] = aggs
	return aggs
}

// contractsInLastRowOrder lists a snapshot's contracts ordered by the row
// position of each contract's final transaction.
func contractsInLastRowOrder(snap *domain.DailySnapshot) []string {
	lastRow := make(map[string]int, len(snap.Records))
	for i, rec := range snap.Records {
		lastRow[rec.ContractID] = i
	}

	contracts := make([]string, 0, len(lastRow))
	for id := range lastRow {
		contracts = append(contracts, id)
	}
	sort.Slice(contracts, func(i, j int) bool {
		return lastRow[contracts[i]] < lastRow[contracts[j]]
	})
	return contracts
}

func anyReadable(cache runCache) bool {
	for _, aggs := range cache {
		if aggs != nil {
			return true
		}
	}
	return false
}
