package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/charts"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/models"
)

// UserBrands renders the top-5 device brand share for the period.
func UserBrands(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_user")
		if err != nil {
			log.Printf("UserBrands: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year, quarter := selectedPeriod(r, table)
		slice := analytics.FilterByPeriod(table, year, quarter)
		byBrand := analytics.GroupSum(slice, "Brands", "Transaction_count")
		top := analytics.TopN(byBrand, "Transaction_count", 5)

		payload := charts.BuildShare("Top Device Brands", top, "Brands", "Transaction_count")
		writeJSON(w, payload)
	}
}

// AppOpensByDistrict renders the top-10 districts by app opens.
func AppOpensByDistrict(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "map_user")
		if err != nil {
			log.Printf("AppOpensByDistrict: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year, quarter := selectedPeriod(r, table)
		slice := analytics.FilterByPeriod(table, year, quarter)
		byDistrict := analytics.GroupSum(slice, "District", "AppOpens")
		top := analytics.TopN(byDistrict, "AppOpens", 10)

		payload := charts.BuildRankedBars(
			"Top 10 Districts by App Opens", "App Opens",
			top, "District", []string{"AppOpens"}, false, 1)
		writeJSON(w, payload)
	}
}

// UsersMap renders the state choropleth of registered users.
func UsersMap(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "map_user")
		if err != nil {
			log.Printf("UsersMap: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year, quarter := selectedPeriod(r, table)
		slice := analytics.FilterByPeriod(table, year, quarter)
		byState := analytics.GroupSum(slice, "State", "RegisteredUsers", "AppOpens")

		payload := charts.BuildChoropleth(
			fmt.Sprintf("Registered Users in %d Q%d", year, quarter),
			byState, "State", "RegisteredUsers",
			dc.Regions, "Portland", 1e3, "Registered Users (K)")
		writeJSON(w, payload)
	}
}

// UserEngagement renders registered users vs app opens by state, stacked.
func UserEngagement(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "map_user")
		if err != nil {
			log.Printf("UserEngagement: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		year, quarter := selectedPeriod(r, table)
		slice := analytics.FilterByPeriod(table, year, quarter)
		byState := analytics.GroupSum(slice, "State", "RegisteredUsers", "AppOpens")

		payload := charts.BuildRankedBars(
			"Registered Users vs. App Opens by State", "Count",
			byState, "State", []string{"RegisteredUsers", "AppOpens"}, true, 1)
		writeJSON(w, payload)
	}
}
