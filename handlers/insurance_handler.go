package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/charts"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/models"
)

// InsuranceMap renders the state choropleth of insurance amount.
func InsuranceMap(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_insurance")
		if err != nil {
			log.Printf("InsuranceMap: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year, quarter := selectedPeriod(r, table)
		slice := analytics.FilterByPeriod(table, year, quarter)
		byState := analytics.GroupSum(slice, "State", "Insurance_amount", "Insurance_count")

		payload := charts.BuildChoropleth(
			fmt.Sprintf("Insurance Transactions in %d Q%d", year, quarter),
			byState, "State", "Insurance_amount",
			dc.Regions, "Earth", 1e3, "Insurance Amount (₹K)")
		writeJSON(w, payload)
	}
}

// InsuranceTrend renders insurance amount by quarter within the selected
// year.
func InsuranceTrend(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_insurance")
		if err != nil {
			log.Printf("InsuranceTrend: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year := selectedYear(r, table)
		slice := analytics.FilterByPeriod(table, year, 0)
		trend := analytics.GroupByPeriod(slice, "Insurance_amount")

		payload := charts.BuildTrendLine(
			"Insurance Amount by Quarter",
			"Quarter", "Insurance Amount (₹)",
			trend, "Insurance_amount")
		writeJSON(w, payload)
	}
}
