package charts

// Chart payloads are pure render descriptions: the SPA (or the PNG
// renderer) does the actual drawing. Every builder returns Empty=true with
// a message for inputs with no rows, so callers always have something to
// render.

// Choropleth shades indexed regions by a numeric measure. Locations carry
// canonical region keys matched against the boundary file's feature id key;
// rows without a boundary are listed in Dropped and excluded from Z, but
// Total still covers them.
type Choropleth struct {
	Title         string    `json:"title"`
	FeatureIDKey  string    `json:"feature_id_key"`
	Locations     []string  `json:"locations"`
	Z             []float64 `json:"z"`
	ZMin          float64   `json:"zmin"`
	ZMax          float64   `json:"zmax"`
	Colorscale    string    `json:"colorscale"`
	ColorbarTitle string    `json:"colorbar_title"`
	Total         float64   `json:"total"`
	Dropped       []string  `json:"dropped,omitempty"`
	Empty         bool      `json:"empty"`
	Message       string    `json:"message,omitempty"`
}

// TrendLine is an ordered series over a categorical period axis, rendered
// point-by-point in the given order with markers.
type TrendLine struct {
	Title   string    `json:"title"`
	XTitle  string    `json:"x_title"`
	YTitle  string    `json:"y_title"`
	Labels  []string  `json:"labels"`
	Values  []float64 `json:"values"`
	Markers bool      `json:"markers"`
	Empty   bool      `json:"empty"`
	Message string    `json:"message,omitempty"`
}

// Share is a pie/donut split of one measure across categorical labels.
type Share struct {
	Title   string    `json:"title"`
	Labels  []string  `json:"labels"`
	Values  []float64 `json:"values"`
	Hole    float64   `json:"hole"`
	Empty   bool      `json:"empty"`
	Message string    `json:"message,omitempty"`
}

// BarSeries is one named series of a bar chart.
type BarSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// RankedBars renders one or more series over already-ranked categorical
// labels, stacked or grouped.
type RankedBars struct {
	Title   string      `json:"title"`
	YTitle  string      `json:"y_title"`
	Labels  []string    `json:"labels"`
	Series  []BarSeries `json:"series"`
	Stacked bool        `json:"stacked"`
	Empty   bool        `json:"empty"`
	Message string      `json:"message,omitempty"`
}
