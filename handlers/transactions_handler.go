package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/charts"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/models"
)

// TransactionsMap renders the state choropleth of transaction amount for
// the selected period.
func TransactionsMap(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_transaction")
		if err != nil {
			log.Printf("TransactionsMap: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year, quarter := selectedPeriod(r, table)
		slice := analytics.FilterByPeriod(table, year, quarter)
		byState := analytics.GroupSum(slice, "State", "Transaction_amount", "Transaction_count")

		payload := charts.BuildChoropleth(
			fmt.Sprintf("Transactions in %d Q%d", year, quarter),
			byState, "State", "Transaction_amount",
			dc.Regions, "Greens", 1e6, "Transaction Amount (₹M)")
		writeJSON(w, payload)
	}
}

// TransactionsTrend renders total transaction amount over every period.
func TransactionsTrend(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_transaction")
		if err != nil {
			log.Printf("TransactionsTrend: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		trend := analytics.GroupByPeriod(table, "Transaction_amount")
		payload := charts.BuildTrendLine(
			"Total Transaction Amount Over Time",
			"Year & Quarter", "Transaction Amount (₹)",
			trend, "Transaction_amount")
		writeJSON(w, payload)
	}
}

// TransactionTypes renders the top-5 payment-type share for the period.
// The cap keeps the donut legible; it is a presentation choice made here,
// not in the aggregation.
func TransactionTypes(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_transaction")
		if err != nil {
			log.Printf("TransactionTypes: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year, quarter := selectedPeriod(r, table)
		slice := analytics.FilterByPeriod(table, year, quarter)
		byType := analytics.GroupSum(slice, "Transaction_type", "Transaction_count")
		top := analytics.TopN(byType, "Transaction_count", 5)

		payload := charts.BuildShare("Transaction Count by Type", top, "Transaction_type", "Transaction_count")
		writeJSON(w, payload)
	}
}

// TopStates renders the top-10 states by transaction amount.
func TopStates(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_transaction")
		if err != nil {
			log.Printf("TopStates: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year, quarter := selectedPeriod(r, table)
		slice := analytics.FilterByPeriod(table, year, quarter)
		byState := analytics.GroupSum(slice, "State", "Transaction_amount")
		top := analytics.TopN(byState, "Transaction_amount", 10)

		payload := charts.BuildRankedBars(
			"Top 10 States", "Transaction Amount (₹T)",
			top, "State", []string{"Transaction_amount"}, false, 1e12)
		writeJSON(w, payload)
	}
}

// TransactionsGrowth renders quarter-over-quarter growth by state within
// the selected year, from the district-level relation.
func TransactionsGrowth(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "map_transaction")
		if err != nil {
			log.Printf("TransactionsGrowth: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year := selectedYear(r, table)
		slice := analytics.FilterByPeriod(table, year, 0)
		growth := analytics.QuarterlyGrowth(slice, "State", "Transaction_amount")

		payload := charts.BuildGroupedBars(
			"Quarterly Growth by State", "Growth (%)",
			growth, "State", "Quarter", analytics.GrowthMeasure)
		writeJSON(w, payload)
	}
}
