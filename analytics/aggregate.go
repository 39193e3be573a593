package analytics

import (
	"math"
	"sort"
)

// FilterByPeriod keeps rows matching both year and quarter. A quarter of 0
// matches any quarter (used by year-scoped widgets). No matches is an empty
// table, never an error.
func FilterByPeriod(t Table, year, quarter int) Table {
	out := Table{Name: t.Name}
	for _, r := range t.Records {
		if r.Year != year {
			continue
		}
		if quarter != 0 && r.Quarter != quarter {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}

// GroupSum groups rows by the value of dimCol and sums each listed measure.
// Output order is first appearance of each dimension value; rows sharing a
// value are merged, never duplicated.
func GroupSum(t Table, dimCol string, measureCols ...string) Table {
	out := Table{Name: t.Name}
	index := make(map[string]int)
	for _, r := range t.Records {
		key := r.Dim(dimCol)
		i, ok := index[key]
		if !ok {
			i = len(out.Records)
			index[key] = i
			out.Records = append(out.Records, Record{
				Dims: map[string]string{dimCol: key},
				Vals: make(map[string]float64, len(measureCols)),
			})
		}
		for _, m := range measureCols {
			out.Records[i].Vals[m] += r.Val(m)
		}
	}
	return out
}

// GroupByPeriod sums a measure per distinct (year, quarter), ordered
// chronologically. Feeds the trend builders.
func GroupByPeriod(t Table, measureCol string) Table {
	out := Table{Name: t.Name}
	index := make(map[int]int)
	for _, r := range t.Records {
		key := r.PeriodKey()
		i, ok := index[key]
		if !ok {
			i = len(out.Records)
			index[key] = i
			out.Records = append(out.Records, Record{
				Year:    r.Year,
				Quarter: r.Quarter,
				Vals:    make(map[string]float64, 1),
			})
		}
		out.Records[i].Vals[measureCol] += r.Val(measureCol)
	}
	sort.SliceStable(out.Records, func(i, j int) bool {
		return out.Records[i].PeriodKey() < out.Records[j].PeriodKey()
	})
	return out
}

// TopN sorts descending by measureCol and truncates to n rows. The sort is
// stable, so rows with equal values keep their original relative order.
// Fewer than n rows returns all of them.
func TopN(t Table, measureCol string, n int) Table {
	out := Table{Name: t.Name, Records: make([]Record, len(t.Records))}
	copy(out.Records, t.Records)
	sort.SliceStable(out.Records, func(i, j int) bool {
		return out.Records[i].Val(measureCol) > out.Records[j].Val(measureCol)
	})
	if n > 0 && len(out.Records) > n {
		out.Records = out.Records[:n]
	}
	return out
}

// GrowthMeasure names the derived column produced by QuarterlyGrowth.
const GrowthMeasure = "Growth_Percentage"

// QuarterlyGrowth computes period-over-period percentage change of
// measureCol within each groupCol group, rows ordered by (year, quarter).
// The first period of every group has no prior value and is dropped. When
// the prior value is zero the change is NaN; renderers treat non-finite
// values as missing points.
func QuarterlyGrowth(t Table, groupCol, measureCol string) Table {
	grouped := make(map[string][]Record)
	var order []string
	for _, r := range t.Records {
		key := r.Dim(groupCol)
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], r)
	}

	out := Table{Name: t.Name}
	for _, key := range order {
		rows := collapsePeriods(grouped[key], measureCol)
		for i := 1; i < len(rows); i++ {
			prev := rows[i-1].Val(measureCol)
			curr := rows[i].Val(measureCol)
			pct := math.NaN()
			if prev != 0 {
				pct = (curr - prev) / prev * 100
			}
			out.Records = append(out.Records, Record{
				Year:    rows[i].Year,
				Quarter: rows[i].Quarter,
				Dims:    map[string]string{groupCol: key},
				Vals:    map[string]float64{GrowthMeasure: pct},
			})
		}
	}
	return out
}

// collapsePeriods merges duplicate periods within one group and returns the
// rows in chronological order.
func collapsePeriods(rows []Record, measureCol string) []Record {
	index := make(map[int]int)
	var out []Record
	for _, r := range rows {
		key := r.PeriodKey()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Record{
				Year:    r.Year,
				Quarter: r.Quarter,
				Vals:    make(map[string]float64, 1),
			})
		}
		out[i].Vals[measureCol] += r.Val(measureCol)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PeriodKey() < out[j].PeriodKey()
	})
	return out
}
