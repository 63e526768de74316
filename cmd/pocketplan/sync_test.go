package main

import (
	"testing"
	"time"

	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange_ExplicitDates(t *testing.T) {
	viper.Set("sync.start_date", "2025-01-01")
	viper.Set("sync.end_date", "2025-03-31")
	t.Cleanup(viper.Reset)

	start, end, err := parseDateRange()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestParseDateRange_EndBeforeStart(t *testing.T) {
	viper.Set("sync.start_date", "2025-03-31")
	viper.Set("sync.end_date", "2025-01-01")
	t.Cleanup(viper.Reset)

	_, _, err := parseDateRange()
	assert.Error(t, err)
}

func TestParseDateRange_InvalidFormat(t *testing.T) {
	viper.Set("sync.start_date", "01/01/2025")
	viper.Set("sync.end_date", "2025-03-31")
	t.Cleanup(viper.Reset)

	_, _, err := parseDateRange()
	assert.Error(t, err)
}

func TestParseDateRange_DaysDefault(t *testing.T) {
	viper.Set("sync.days", 30)
	t.Cleanup(viper.Reset)

	start, end, err := parseDateRange()
	require.NoError(t, err)

	span := end.Sub(start)
	assert.InDelta(t, 30*24*time.Hour, span, float64(time.Minute))
}

func TestFilterTransactionsByAccount(t *testing.T) {
	transactions := []model.Transaction{
		{ID: "txn-1", AccountID: "acc-checking"},
		{ID: "txn-2", AccountID: "acc-credit"},
		{ID: "txn-3", AccountID: "acc-checking"},
		{ID: "txn-4", AccountID: "acc-savings"},
	}

	filtered := filterTransactionsByAccount(transactions, []string{"acc-checking", "acc-savings"})

	require.Len(t, filtered, 3)
	for _, tx := range filtered {
		assert.NotEqual(t, "acc-credit", tx.AccountID)
	}
}

func TestFilterTransactionsByAccount_NoMatches(t *testing.T) {
	transactions := []model.Transaction{
		{ID: "txn-1", AccountID: "acc-checking"},
	}

	filtered := filterTransactionsByAccount(transactions, []string{"acc-unknown"})
	assert.Empty(t, filtered)
}
