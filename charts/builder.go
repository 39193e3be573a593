package charts

import (
	"fmt"
	"math"
	"sort"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/geo"
)

// featureIDKey points at the State_Name property the server injects into
// every feature of the boundary collection it publishes (geo.RegionIndex
// Published), so Locations and feature ids join on the same normalized key.
const featureIDKey = "properties.State_Name"

// fallbackZMax anchors the color scale when a slice has no rows.
const fallbackZMax = 1000

// noDataMessage is the placeholder reason for empty inputs.
const noDataMessage = "No data available for the selected period."

// BuildChoropleth joins an aggregated table to the region index and encodes
// a shaded map. values are divided by scale for display only (the Total
// stays unscaled); regions missing from the index are dropped from the map
// but kept in Total.
func BuildChoropleth(title string, t analytics.Table, regionCol, measure string, idx *geo.RegionIndex, colorscale string, scale float64, unit string) Choropleth {
	c := Choropleth{
		Title:         title,
		FeatureIDKey:  featureIDKey,
		ZMin:          0,
		ZMax:          fallbackZMax,
		Colorscale:    colorscale,
		ColorbarTitle: unit,
	}
	if t.Empty() {
		c.Empty = true
		c.Message = noDataMessage
		return c
	}
	if scale <= 0 {
		scale = 1
	}

	for _, r := range t.Records {
		key := r.Dim(regionCol)
		value := r.Val(measure)
		c.Total += value
		if !idx.Has(key) {
			c.Dropped = append(c.Dropped, key)
			continue
		}
		c.Locations = append(c.Locations, key)
		c.Z = append(c.Z, value/scale)
	}

	if max := maxOf(c.Z); max > 0 {
		c.ZMax = max
	}
	return c
}

// BuildTrendLine encodes a period-ordered line with markers. The input is
// expected pre-grouped by period (analytics.GroupByPeriod); labels come out
// as "2023 Q1".
func BuildTrendLine(title, xTitle, yTitle string, t analytics.Table, measure string) TrendLine {
	l := TrendLine{Title: title, XTitle: xTitle, YTitle: yTitle, Markers: true}
	if t.Empty() {
		l.Empty = true
		l.Message = noDataMessage
		return l
	}
	for _, r := range t.Records {
		v := r.Val(measure)
		if !isFinite(v) {
			continue
		}
		l.Labels = append(l.Labels, PeriodLabel(r.Year, r.Quarter))
		l.Values = append(l.Values, v)
	}
	if len(l.Values) == 0 {
		l.Empty = true
		l.Message = noDataMessage
	}
	return l
}

// BuildShare encodes a donut split. Callers cap the input with TopN first;
// keeping a pie legible is their policy, not an aggregation rule.
func BuildShare(title string, t analytics.Table, labelCol, measure string) Share {
	s := Share{Title: title, Hole: 0.4}
	if t.Empty() {
		s.Empty = true
		s.Message = noDataMessage
		return s
	}
	for _, r := range t.Records {
		s.Labels = append(s.Labels, r.Dim(labelCol))
		s.Values = append(s.Values, r.Val(measure))
	}
	return s
}

// BuildRankedBars encodes one or more measures over ranked labels. values
// are divided by scale for display.
func BuildRankedBars(title, yTitle string, t analytics.Table, labelCol string, measures []string, stacked bool, scale float64) RankedBars {
	b := RankedBars{Title: title, YTitle: yTitle, Stacked: stacked}
	if t.Empty() {
		b.Empty = true
		b.Message = noDataMessage
		return b
	}
	if scale <= 0 {
		scale = 1
	}
	for _, r := range t.Records {
		b.Labels = append(b.Labels, r.Dim(labelCol))
	}
	for _, m := range measures {
		series := BarSeries{Name: m, Values: make([]float64, 0, t.Len())}
		for _, r := range t.Records {
			series.Values = append(series.Values, r.Val(m)/scale)
		}
		b.Series = append(b.Series, series)
	}
	return b
}

// BuildGroupedBars pivots a table into one bar series per distinct value of
// seriesCol (quarterly growth by state renders as one series per quarter).
// Rows with a non-finite measure are skipped entirely.
func BuildGroupedBars(title, yTitle string, t analytics.Table, labelCol, seriesCol, measure string) RankedBars {
	b := RankedBars{Title: title, YTitle: yTitle}
	if t.Empty() {
		b.Empty = true
		b.Message = noDataMessage
		return b
	}

	var labels []string
	labelIdx := make(map[string]int)
	values := make(map[string]map[string]float64)
	var seriesNames []string

	for _, r := range t.Records {
		v := r.Val(measure)
		if !isFinite(v) {
			continue
		}
		label := r.Dim(labelCol)
		if _, seen := labelIdx[label]; !seen {
			labelIdx[label] = len(labels)
			labels = append(labels, label)
		}
		name := r.Dim(seriesCol)
		if _, seen := values[name]; !seen {
			seriesNames = append(seriesNames, name)
			values[name] = make(map[string]float64)
		}
		values[name][label] += v
	}

	if len(labels) == 0 {
		b.Empty = true
		b.Message = noDataMessage
		return b
	}

	sort.Strings(seriesNames)
	b.Labels = labels
	for _, name := range seriesNames {
		series := BarSeries{Name: name, Values: make([]float64, len(labels))}
		for label, v := range values[name] {
			series.Values[labelIdx[label]] = v
		}
		b.Series = append(b.Series, series)
	}
	return b
}

// PeriodLabel renders the categorical trend axis label: "2023 Q1".
func PeriodLabel(year, quarter int) string {
	return fmt.Sprintf("%d Q%d", year, quarter)
}

func maxOf(xs []float64) float64 {
	max := 0.0
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	return max
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
