package handlers

import (
	"log"
	"net/http"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/models"
)

// Periods enumerates the selectable (year, quarter) pairs from the primary
// transaction relation, plus the latest period for default selection.
func Periods(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_transaction")
		if err != nil {
			log.Printf("Periods: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}
		if table.Empty() {
			writeNoData(w, models.ReasonEmpty)
			return
		}

		catalog := models.PeriodCatalog{}
		for _, year := range table.Years() {
			catalog.Years = append(catalog.Years, models.PeriodYear{
				Year:     year,
				Quarters: table.QuartersIn(year),
			})
		}
		latestYear, latestQuarter, _ := table.LatestPeriod()
		catalog.Latest = models.Period{Year: latestYear, Quarter: latestQuarter}

		writeJSON(w, catalog)
	}
}
