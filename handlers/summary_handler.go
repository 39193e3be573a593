package handlers

import (
	"log"
	"net/http"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/models"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/utils"
)

// Summary renders the quick stats: total transactions, total amount,
// registered users. Unreachable relations count as zero here, matching the
// dashboard's home screen; each widget endpoint reports its own no-data
// state.
func Summary(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var totalCount, totalAmount, totalUsers float64

		if transactions, err := dc.Tables.Load(r.Context(), "aggregated_transaction"); err == nil {
			totalCount = transactions.Sum("Transaction_count")
			totalAmount = transactions.Sum("Transaction_amount")
		} else {
			log.Printf("Summary: %v", err)
		}
		if users, err := dc.Tables.Load(r.Context(), "top_user"); err == nil {
			totalUsers = users.Sum("Registered_Users")
		} else {
			log.Printf("Summary: %v", err)
		}

		writeJSON(w, models.Summary{
			TotalTransactions: models.Metric{
				Label:   "Total Transactions",
				Value:   totalCount,
				Display: utils.Compact(totalCount),
			},
			TotalAmount: models.Metric{
				Label:   "Total Amount",
				Value:   totalAmount,
				Display: utils.INR(totalAmount),
			},
			RegisteredUsers: models.Metric{
				Label:   "Registered Users",
				Value:   totalUsers,
				Display: utils.Compact(totalUsers),
			},
		})
	}
}
