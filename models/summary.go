package models

// Metric is one headline figure: the raw value plus its compact display
// form ("2.15B", "₹1.23T").
type Metric struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// Summary carries the home-screen quick stats.
type Summary struct {
	TotalTransactions Metric `json:"total_transactions"`
	TotalAmount       Metric `json:"total_amount"`
	RegisteredUsers   Metric `json:"registered_users"`
}

// NoData is the renderable placeholder for both source failures and valid
// queries with zero rows. Reason distinguishes the two.
type NoData struct {
	NoData bool   `json:"no_data"`
	Reason string `json:"reason"`
}

const (
	// ReasonUnavailable: the source was unreachable or the table missing.
	ReasonUnavailable = "data_unavailable"
	// ReasonEmpty: the query was valid but matched zero rows.
	ReasonEmpty = "empty_result"
)
