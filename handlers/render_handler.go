package handlers

import (
	"log"
	"net/http"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/charts"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/models"
)

// RenderTrendPNG draws the transaction trend server-side for consumers
// that cannot run the SPA's chart library (emails, reports).
func RenderTrendPNG(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := dc.Tables.Load(r.Context(), "aggregated_transaction")
		if err != nil {
			log.Printf("RenderTrendPNG: %v", err)
			writeNoData(w, models.ReasonUnavailable)
			return
		}

		trend := analytics.GroupByPeriod(table, "Transaction_amount")
		line := charts.BuildTrendLine(
			"Total Transaction Amount Over Time",
			"Year & Quarter", "Transaction Amount (₹)",
			trend, "Transaction_amount")
		if line.Empty {
			writeNoData(w, models.ReasonEmpty)
			return
		}

		xs := make([]float64, len(line.Values))
		ticks := make([]chart.Tick, len(line.Values))
		for i, label := range line.Labels {
			xs[i] = float64(i)
			ticks[i] = chart.Tick{Value: float64(i), Label: label}
		}

		graph := chart.Chart{
			Title:  line.Title,
			Width:  960,
			Height: 400,
			XAxis: chart.XAxis{
				Name:  line.XTitle,
				Ticks: ticks,
			},
			YAxis: chart.YAxis{
				Name: line.YTitle,
			},
			Series: []chart.Series{
				chart.ContinuousSeries{
					Name:    line.Title,
					XValues: xs,
					YValues: line.Values,
					Style: chart.Style{
						StrokeWidth: 2,
						DotWidth:    4,
					},
				},
			},
		}

		w.Header().Set("Content-Type", chart.ContentTypePNG)
		if err := graph.Render(chart.PNG, w); err != nil {
			log.Printf("RenderTrendPNG: render failed: %v", err)
		}
	}
}
