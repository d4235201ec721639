package domain

// MatchResult pairs a contract's origin-day aggregate with the first later
// day on which the contract reappeared. It is created only when all three
// inputs coerced to numbers and Activity is strictly positive.
type MatchResult struct {
	OriginDay  string  `json:"origin_day"`
	MatchedDay string  `json:"matched_day"`
	ContractID string  `json:"contract_id"`

	VolumeLast        float64 `json:"volume_last"`
	OpenInterestLast  float64 `json:"open_interest_last"`
	OpenInterestFirst float64 `json:"open_interest_first"`

	// Activity = OpenInterestFirst - (VolumeLast + OpenInterestLast).
	// Positive values flag open interest unaccounted for by visible
	// trade-plus-open-interest movement.
	Activity float64 `json:"activity"`
}
