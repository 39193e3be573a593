package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/charts"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/geo"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/models"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/store"
)

const testGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"NAME_1": "Karnataka"},
			"geometry": {"type": "Polygon", "coordinates": [[[74,12],[78,12],[78,16],[74,12]]]}
		},
		{
			"type": "Feature",
			"properties": {"NAME_1": "Goa"},
			"geometry": {"type": "Polygon", "coordinates": [[[73,14],[74,14],[74,15],[73,14]]]}
		}
	]
}`

// stubLoader serves canned tables, standing in for the SQL-backed store.
type stubLoader struct {
	tables map[string]analytics.Table
}

func (s stubLoader) Load(ctx context.Context, name string) (analytics.Table, error) {
	table, ok := s.tables[name]
	if !ok {
		return analytics.Table{Name: name}, fmt.Errorf("%w: unknown table %q", store.ErrDataUnavailable, name)
	}
	return table, nil
}

func txRow(year, quarter int, state, txType string, count, amount float64) analytics.Record {
	return analytics.Record{
		Year:    year,
		Quarter: quarter,
		Dims:    map[string]string{"State": state, "Transaction_type": txType},
		Vals:    map[string]float64{"Transaction_count": count, "Transaction_amount": amount},
	}
}

func testContext(t *testing.T, tables map[string]analytics.Table) *DataContext {
	t.Helper()
	idx, err := geo.ParseRegionIndex([]byte(testGeoJSON))
	require.NoError(t, err)
	return &DataContext{Tables: stubLoader{tables: tables}, Regions: idx}
}

func TestTransactionsMap(t *testing.T) {
	dc := testContext(t, map[string]analytics.Table{
		"aggregated_transaction": {Name: "aggregated_transaction", Records: []analytics.Record{
			txRow(2023, 1, "karnataka", "Peer-to-peer payments", 10, 2_000_000),
			txRow(2023, 1, "karnataka", "Recharge & bill payments", 5, 1_000_000),
			txRow(2023, 1, "atlantis", "Peer-to-peer payments", 1, 500_000),
		}},
	})

	t.Run("joins and drops unmatched regions", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/transactions/map?year=2023&quarter=1", nil)
		rec := httptest.NewRecorder()
		TransactionsMap(dc)(rec, req)

		require.Equal(t, 200, rec.Code)
		var payload charts.Choropleth
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, []string{"karnataka"}, payload.Locations)
		assert.Equal(t, []string{"atlantis"}, payload.Dropped)
		assert.Equal(t, 3_500_000.0, payload.Total)
		assert.Equal(t, "Transactions in 2023 Q1", payload.Title)
	})

	t.Run("defaults to the latest period", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/transactions/map", nil)
		rec := httptest.NewRecorder()
		TransactionsMap(dc)(rec, req)

		var payload charts.Choropleth
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.False(t, payload.Empty)
	})

	t.Run("an out-of-range period renders an empty chart", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/transactions/map?year=2019&quarter=3", nil)
		rec := httptest.NewRecorder()
		TransactionsMap(dc)(rec, req)

		require.Equal(t, 200, rec.Code)
		var payload charts.Choropleth
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.True(t, payload.Empty)
	})
}

func TestRegionBoundaries(t *testing.T) {
	dc := testContext(t, map[string]analytics.Table{})

	req := httptest.NewRequest("GET", "/api/v1/geo/boundaries", nil)
	rec := httptest.NewRecorder()
	RegionBoundaries(dc)(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	// Every feature must expose the key the choropleth payload joins on.
	var fc struct {
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	require.Len(t, fc.Features, 2)
	for _, f := range fc.Features {
		_, ok := f.Properties["State_Name"].(string)
		assert.True(t, ok)
	}
}

func TestUnavailableSourceIsNoDataNotFailure(t *testing.T) {
	dc := testContext(t, map[string]analytics.Table{})

	req := httptest.NewRequest("GET", "/api/v1/transactions/map", nil)
	rec := httptest.NewRecorder()
	TransactionsMap(dc)(rec, req)

	require.Equal(t, 200, rec.Code)
	var payload models.NoData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.NoData)
	assert.Equal(t, models.ReasonUnavailable, payload.Reason)
}

func TestTransactionTypesCapsAtFive(t *testing.T) {
	records := make([]analytics.Record, 0, 7)
	for i := 0; i < 7; i++ {
		records = append(records, txRow(2023, 1, "karnataka", fmt.Sprintf("type-%d", i), float64(i+1), 100))
	}
	dc := testContext(t, map[string]analytics.Table{
		"aggregated_transaction": {Records: records},
	})

	req := httptest.NewRequest("GET", "/api/v1/transactions/types?year=2023&quarter=1", nil)
	rec := httptest.NewRecorder()
	TransactionTypes(dc)(rec, req)

	var payload charts.Share
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Labels, 5)
	assert.Equal(t, "type-6", payload.Labels[0])
}

func TestSummary(t *testing.T) {
	dc := testContext(t, map[string]analytics.Table{
		"aggregated_transaction": {Records: []analytics.Record{
			txRow(2023, 1, "karnataka", "Peer-to-peer payments", 2_000_000_000, 1_500_000_000_000),
		}},
		"top_user": {Records: []analytics.Record{{
			Year: 2023, Quarter: 1,
			Dims: map[string]string{"State": "karnataka", "Pincodes": "560001"},
			Vals: map[string]float64{"Registered_Users": 45_000_000},
		}}},
	})

	req := httptest.NewRequest("GET", "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	Summary(dc)(rec, req)

	var payload models.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "2.00B", payload.TotalTransactions.Display)
	assert.Equal(t, "₹1.50T", payload.TotalAmount.Display)
	assert.Equal(t, "45.00M", payload.RegisteredUsers.Display)
}

func TestSummaryToleratesMissingRelations(t *testing.T) {
	dc := testContext(t, map[string]analytics.Table{})

	req := httptest.NewRequest("GET", "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	Summary(dc)(rec, req)

	require.Equal(t, 200, rec.Code)
	var payload models.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 0.0, payload.TotalAmount.Value)
}

func TestPeriods(t *testing.T) {
	dc := testContext(t, map[string]analytics.Table{
		"aggregated_transaction": {Records: []analytics.Record{
			txRow(2022, 3, "goa", "x", 1, 1),
			txRow(2022, 4, "goa", "x", 1, 1),
			txRow(2023, 1, "goa", "x", 1, 1),
		}},
	})

	req := httptest.NewRequest("GET", "/api/v1/periods", nil)
	rec := httptest.NewRecorder()
	Periods(dc)(rec, req)

	var payload models.PeriodCatalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Years, 2)
	assert.Equal(t, []int{3, 4}, payload.Years[0].Quarters)
	assert.Equal(t, models.Period{Year: 2023, Quarter: 1}, payload.Latest)
}

func TestTransactionsGrowth(t *testing.T) {
	mapRow := func(year, quarter int, state string, amount float64) analytics.Record {
		return analytics.Record{
			Year: year, Quarter: quarter,
			Dims: map[string]string{"State": state, "District": state + " district"},
			Vals: map[string]float64{"Transaction_count": 1, "Transaction_amount": amount},
		}
	}
	dc := testContext(t, map[string]analytics.Table{
		"map_transaction": {Records: []analytics.Record{
			mapRow(2023, 1, "karnataka", 100),
			mapRow(2023, 2, "karnataka", 150),
			mapRow(2023, 3, "karnataka", 90),
		}},
	})

	req := httptest.NewRequest("GET", "/api/v1/transactions/growth?year=2023", nil)
	rec := httptest.NewRecorder()
	TransactionsGrowth(dc)(rec, req)

	var payload charts.RankedBars
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Series, 2)
	assert.Equal(t, []string{"karnataka"}, payload.Labels)
	assert.InDelta(t, 50.0, payload.Series[0].Values[0], 1e-9)
	assert.InDelta(t, -40.0, payload.Series[1].Values[0], 1e-9)
}
