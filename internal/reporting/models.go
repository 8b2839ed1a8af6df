package reporting

import "loadboard/internal/loads"

// AssignmentStats splits the filtered load set by which channel last wrote
// each record. JSON keys match the public stats endpoint contract.
type AssignmentStats struct {
	Manual ChannelSummary `json:"manual"`
	URLAPI ChannelSummary `json:"url_api"`
}

// ChannelSummary aggregates one provenance group.
type ChannelSummary struct {
	Count int `json:"count"`

	// TotalAgreedPrice sums agreed_price over loads that have one.
	TotalAgreedPrice float64 `json:"total_agreed_price"`

	// TotalAgreedMinusLoadboard sums (agreed_price - loadboard_rate) over
	// loads that have both.
	TotalAgreedMinusLoadboard float64 `json:"total_agreed_minus_loadboard"`

	// AvgTimePerCallSeconds averages the load-level time_per_call_seconds
	// field over loads where it is set; zero when no load has one.
	AvgTimePerCallSeconds float64 `json:"avg_time_per_call_seconds"`

	// PhoneCalls buckets the group's calls by call type. Both known types are
	// always present so clients never need existence checks.
	PhoneCalls map[loads.CallType]CallTypeSummary `json:"phone_calls"`
}

// CallTypeSummary aggregates the calls of one call type within a group.
type CallTypeSummary struct {
	Count        int     `json:"count"`
	AgreedCount  int     `json:"agreed_count"`
	TotalSeconds float64 `json:"total_seconds"`

	Sentiment SentimentCounts `json:"sentiment"`
}

type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}
