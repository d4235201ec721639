package domain

// TransactionRecord is a single options transaction row as produced by the
// snapshot loader. Volume and OpenInterest are kept as the raw cell text so
// numeric coercion happens exactly once, at detection time; values that fail
// to coerce drop the affected contract pair rather than the whole file.
type TransactionRecord struct {
	ContractID   string
	Volume       string
	OpenInterest string
	Timestamp    string
}

// DailySnapshot is the ordered set of transactions observed on one trading
// day. Records preserve file row order; the Timestamp field is carried
// through but never used for ordering.
type DailySnapshot struct {
	// Date is the day label derived from the source filename (YYYY-MM-DD).
	Date    string
	Path    string
	Records []TransactionRecord
}

// OriginAggregate holds the values of a contract's structurally-last
// transaction within an origin day.
type OriginAggregate struct {
	ContractID       string
	VolumeLast       string
	OpenInterestLast string
}

// CandidateAggregate holds the open interest of a contract's
// structurally-first transaction within a candidate day.
type CandidateAggregate struct {
	ContractID        string
	OpenInterestFirst string
}
