package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/models"
)

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
	}
}

// writeNoData renders the placeholder envelope. Data conditions are never
// 5xx: the dashboard shows "no data", it does not break.
func writeNoData(w http.ResponseWriter, reason string) {
	writeJSON(w, models.NoData{NoData: true, Reason: reason})
}

// selectedPeriod resolves the year and quarter query params against what
// the table actually contains, defaulting to the latest period the way the
// dashboard selectors do.
func selectedPeriod(r *http.Request, t analytics.Table) (year, quarter int) {
	latestYear, latestQuarter, ok := t.LatestPeriod()
	if !ok {
		latestYear, latestQuarter = 2023, 1
	}

	year = queryInt(r, "year", 0)
	if year == 0 {
		year = latestYear
	}
	quarter = queryInt(r, "quarter", 0)
	if quarter == 0 {
		if year == latestYear {
			quarter = latestQuarter
		} else if quarters := t.QuartersIn(year); len(quarters) > 0 {
			quarter = quarters[len(quarters)-1]
		} else {
			quarter = 1
		}
	}
	return year, quarter
}

// selectedYear resolves only the year param, for year-scoped widgets.
func selectedYear(r *http.Request, t analytics.Table) int {
	if year := queryInt(r, "year", 0); year != 0 {
		return year
	}
	if latestYear, _, ok := t.LatestPeriod(); ok {
		return latestYear
	}
	return 2023
}

func queryInt(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
