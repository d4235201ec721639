package scanner

import (
	"github.com/pancakebitgit/escaner/pkg/contracts/domain"
)

// LastPerContract reduces a snapshot to each contract's structurally-last
// transaction, keyed by contract identifier. Selection follows file row
// order, not the Timestamp field. The snapshot is never mutated; empty
// input yields an empty map.
func LastPerContract(snap *domain.DailySnapshot) map[string]domain.OriginAggregate {
	last := make(map[string]domain.OriginAggregate, len(snap.Records))
	for _, rec := range snap.Records {
		// Later rows overwrite earlier ones, leaving the final row per contract.
		last[rec.ContractID] = domain.OriginAggregate{
			ContractID:       rec.ContractID,
			VolumeLast:       rec.Volume,
			OpenInterestLast: rec.OpenInterest,
		}
	}
	return last
}

// FirstPerContract reduces a snapshot to the open interest of each
// contract's structurally-first transaction, keyed by contract identifier.
// Selection follows file row order, not the Timestamp field.
func FirstPerContract(snap *domain.DailySnapshot) map[string]domain.CandidateAggregate {
	first := make(map[string]domain.CandidateAggregate, len(snap.Records))
	for _, rec := range snap.Records {
		if _, seen := first[rec.ContractID]; seen {
			continue
		}
		first[rec.ContractID] = domain.CandidateAggregate{
			ContractID:        rec.ContractID,
			OpenInterestFirst: rec.OpenInterest,
		}
	}
	return first
}
