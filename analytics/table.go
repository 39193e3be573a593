package analytics

import (
	"sort"
	"strconv"
)

// Record is one observation row: a fixed (Years, Quarter) period plus
// string dimensions and float64 measures keyed by canonical column name.
type Record struct {
	Year    int                `json:"year"`
	Quarter int                `json:"quarter"`
	Dims    map[string]string  `json:"dims"`
	Vals    map[string]float64 `json:"vals"`
}

// Dim returns a dimension value by column name. "Years" and "Quarter" are
// virtual dimensions derived from the period fields. An explicit Dims entry
// wins over the virtual fallback, so grouped output keyed under those names
// reads back through Dim.
func (r Record) Dim(col string) string {
	if v, ok := r.Dims[col]; ok {
		return v
	}
	switch col {
	case "Years":
		return strconv.Itoa(r.Year)
	case "Quarter":
		return strconv.Itoa(r.Quarter)
	}
	return ""
}

// Val returns a measure value by column name. Missing measures read as 0.
func (r Record) Val(col string) float64 {
	return r.Vals[col]
}

// PeriodKey orders periods chronologically: 2023 Q2 -> 8094.
func (r Record) PeriodKey() int {
	return r.Year*4 + r.Quarter
}

// Table is an ordered in-memory relation. Aggregation operations take and
// return Tables so they compose; an empty Table is a valid result, not an
// error.
type Table struct {
	Name    string
	Records []Record
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Records) == 0
}

// Len returns the row count.
func (t Table) Len() int {
	return len(t.Records)
}

// Years returns the distinct years present, ascending.
func (t Table) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, r := range t.Records {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)
	return years
}

// QuartersIn returns the distinct quarters present for a year, ascending.
func (t Table) QuartersIn(year int) []int {
	seen := make(map[int]bool)
	var quarters []int
	for _, r := range t.Records {
		if r.Year == year && !seen[r.Quarter] {
			seen[r.Quarter] = true
			quarters = append(quarters, r.Quarter)
		}
	}
	sort.Ints(quarters)
	return quarters
}

// LatestPeriod returns the most recent (year, quarter) in the table.
// ok is false for an empty table.
func (t Table) LatestPeriod() (year, quarter int, ok bool) {
	best := 0
	for _, r := range t.Records {
		if k := r.PeriodKey(); k > best {
			best = k
			year, quarter = r.Year, r.Quarter
			ok = true
		}
	}
	return year, quarter, ok
}

// Sum totals one measure across all rows.
func (t Table) Sum(measure string) float64 {
	var total float64
	for _, r := range t.Records {
		total += r.Val(measure)
	}
	return total
}

