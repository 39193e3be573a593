package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(year, quarter int, state string, amount float64) Record {
	return Record{
		Year:    year,
		Quarter: quarter,
		Dims:    map[string]string{"State": state},
		Vals:    map[string]float64{"Transaction_amount": amount},
	}
}

func TestFilterByPeriod(t *testing.T) {
	table := Table{Records: []Record{
		row(2022, 4, "karnataka", 10),
		row(2023, 1, "karnataka", 20),
		row(2023, 2, "karnataka", 30),
		row(2023, 2, "goa", 40),
	}}

	t.Run("exact period match", func(t *testing.T) {
		got := FilterByPeriod(table, 2023, 2)
		require.Equal(t, 2, got.Len())
		for _, r := range got.Records {
			assert.Equal(t, 2023, r.Year)
			assert.Equal(t, 2, r.Quarter)
		}
	})

	t.Run("quarter zero matches the whole year", func(t *testing.T) {
		got := FilterByPeriod(table, 2023, 0)
		assert.Equal(t, 3, got.Len())
	})

	t.Run("no matches is an empty table, not an error", func(t *testing.T) {
		got := FilterByPeriod(table, 2019, 1)
		assert.True(t, got.Empty())
	})
}

func TestGroupSum(t *testing.T) {
	table := Table{Records: []Record{
		row(2023, 1, "karnataka", 100),
		row(2023, 1, "goa", 25),
		row(2023, 1, "karnataka", 50),
	}}

	got := GroupSum(table, "State", "Transaction_amount")

	t.Run("ties are merged, never duplicated", func(t *testing.T) {
		require.Equal(t, 2, got.Len())
		assert.Equal(t, "karnataka", got.Records[0].Dim("State"))
		assert.Equal(t, 150.0, got.Records[0].Val("Transaction_amount"))
	})

	t.Run("first-seen order is preserved", func(t *testing.T) {
		assert.Equal(t, "goa", got.Records[1].Dim("State"))
	})

	t.Run("measure totals are conserved", func(t *testing.T) {
		assert.Equal(t, table.Sum("Transaction_amount"), got.Sum("Transaction_amount"))
	})

	t.Run("virtual period dimensions group too", func(t *testing.T) {
		byYear := GroupSum(table, "Years", "Transaction_amount")
		require.Equal(t, 1, byYear.Len())
		assert.Equal(t, "2023", byYear.Records[0].Dim("Years"))
		assert.Equal(t, 175.0, byYear.Records[0].Val("Transaction_amount"))

		multi := Table{Records: []Record{
			row(2022, 4, "goa", 10),
			row(2023, 1, "goa", 20),
			row(2023, 2, "goa", 30),
		}}
		byYear = GroupSum(multi, "Years", "Transaction_amount")
		require.Equal(t, 2, byYear.Len())
		assert.Equal(t, "2022", byYear.Records[0].Dim("Years"))
		assert.Equal(t, "2023", byYear.Records[1].Dim("Years"))
		assert.Equal(t, 50.0, byYear.Records[1].Val("Transaction_amount"))

		byQuarter := GroupSum(multi, "Quarter", "Transaction_amount")
		require.Equal(t, 3, byQuarter.Len())
		assert.Equal(t, "4", byQuarter.Records[0].Dim("Quarter"))
	})
}

func TestTopN(t *testing.T) {
	table := Table{Records: []Record{
		row(2023, 1, "a", 5),
		row(2023, 1, "b", 9),
		row(2023, 1, "c", 9),
		row(2023, 1, "d", 1),
	}}

	t.Run("descending with stable ties", func(t *testing.T) {
		got := TopN(table, "Transaction_amount", 3)
		require.Equal(t, 3, got.Len())
		assert.Equal(t, "b", got.Records[0].Dim("State"))
		assert.Equal(t, "c", got.Records[1].Dim("State"))
		assert.Equal(t, "a", got.Records[2].Dim("State"))
	})

	t.Run("fewer rows than n returns all of them", func(t *testing.T) {
		got := TopN(table, "Transaction_amount", 10)
		assert.Equal(t, 4, got.Len())
	})

	t.Run("input order is untouched", func(t *testing.T) {
		TopN(table, "Transaction_amount", 2)
		assert.Equal(t, "a", table.Records[0].Dim("State"))
	})
}

func TestQuarterlyGrowth(t *testing.T) {
	t.Run("first period is dropped, changes are percentages", func(t *testing.T) {
		table := Table{Records: []Record{
			row(2023, 1, "karnataka", 100),
			row(2023, 2, "karnataka", 150),
			row(2023, 3, "karnataka", 90),
		}}

		got := QuarterlyGrowth(table, "State", "Transaction_amount")
		require.Equal(t, 2, got.Len())
		assert.Equal(t, 2, got.Records[0].Quarter)
		assert.InDelta(t, 50.0, got.Records[0].Val(GrowthMeasure), 1e-9)
		assert.Equal(t, 3, got.Records[1].Quarter)
		assert.InDelta(t, -40.0, got.Records[1].Val(GrowthMeasure), 1e-9)
	})

	t.Run("zero prior value yields NaN", func(t *testing.T) {
		table := Table{Records: []Record{
			row(2023, 1, "goa", 0),
			row(2023, 2, "goa", 10),
		}}

		got := QuarterlyGrowth(table, "State", "Transaction_amount")
		require.Equal(t, 1, got.Len())
		assert.True(t, math.IsNaN(got.Records[0].Val(GrowthMeasure)))
	})

	t.Run("groups are independent", func(t *testing.T) {
		table := Table{Records: []Record{
			row(2023, 1, "goa", 10),
			row(2023, 1, "karnataka", 100),
			row(2023, 2, "goa", 20),
			row(2023, 2, "karnataka", 110),
		}}

		got := QuarterlyGrowth(table, "State", "Transaction_amount")
		require.Equal(t, 2, got.Len())
		assert.InDelta(t, 100.0, got.Records[0].Val(GrowthMeasure), 1e-9)
		assert.InDelta(t, 10.0, got.Records[1].Val(GrowthMeasure), 1e-9)
	})

	t.Run("duplicate periods collapse before differencing", func(t *testing.T) {
		table := Table{Records: []Record{
			row(2023, 1, "goa", 40),
			row(2023, 1, "goa", 60),
			row(2023, 2, "goa", 150),
		}}

		got := QuarterlyGrowth(table, "State", "Transaction_amount")
		require.Equal(t, 1, got.Len())
		assert.InDelta(t, 50.0, got.Records[0].Val(GrowthMeasure), 1e-9)
	})
}

func TestGroupByPeriod(t *testing.T) {
	table := Table{Records: []Record{
		row(2023, 2, "goa", 5),
		row(2022, 4, "goa", 1),
		row(2023, 2, "karnataka", 7),
		row(2023, 1, "goa", 3),
	}}

	got := GroupByPeriod(table, "Transaction_amount")
	require.Equal(t, 3, got.Len())
	assert.Equal(t, 2022, got.Records[0].Year)
	assert.Equal(t, 4, got.Records[0].Quarter)
	assert.Equal(t, 12.0, got.Records[2].Val("Transaction_amount"))
	assert.Equal(t, table.Sum("Transaction_amount"), got.Sum("Transaction_amount"))
}

func TestTableHelpers(t *testing.T) {
	table := Table{Records: []Record{
		row(2023, 2, "goa", 5),
		row(2022, 4, "goa", 1),
		row(2023, 1, "goa", 3),
	}}

	assert.Equal(t, []int{2022, 2023}, table.Years())
	assert.Equal(t, []int{1, 2}, table.QuartersIn(2023))

	year, quarter, ok := table.LatestPeriod()
	require.True(t, ok)
	assert.Equal(t, 2023, year)
	assert.Equal(t, 2, quarter)

	_, _, ok = Table{}.LatestPeriod()
	assert.False(t, ok)
}
