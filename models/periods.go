package models

// Period is one (year, quarter) pair.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// PeriodYear lists the quarters available within one year.
type PeriodYear struct {
	Year     int   `json:"year"`
	Quarters []int `json:"quarters"`
}

// PeriodCatalog enumerates the selectable filter values and the latest
// period, which the home heatmap defaults to.
type PeriodCatalog struct {
	Years  []PeriodYear `json:"years"`
	Latest Period       `json:"latest"`
}
