package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hogarboard/internal/finance"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCategoriesToCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "categories.csv")
	cats := []finance.Category{
		{
			Name:        "Ocio",
			Budget:      decimal.NewFromInt(100),
			Actual:      decimal.NewFromInt(80),
			Remaining:   decimal.NewFromInt(20),
			PercentUsed: 80,
			Transactions: []finance.Transaction{
				{Description: "cine"},
			},
		},
	}

	require.NoError(t, WriteCategoriesToCSV(cats, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Category,Budget,Actual,Remaining,Percent Used,Transactions", lines[0])
	assert.Equal(t, "Ocio,100.00,80.00,20.00,80,1", lines[1])
}

func TestWriteHistoryToCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "history.csv")
	history := []finance.HistoryPoint{
		{
			Month:            "mayo",
			Income:           decimal.NewFromInt(1200),
			ActualExpense:    decimal.NewFromInt(1000),
			PlannedExpense:   decimal.NewFromInt(1100),
			NetSaving:        decimal.NewFromInt(200),
			CumulativeSaving: decimal.NewFromInt(250),
		},
	}

	require.NoError(t, WriteHistoryToCSV(history, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mayo,1200.00,1000.00,1100.00,200.00,250.00")
}

func TestWriteRespectsDelimiter(t *testing.T) {
	orig := Delimiter
	SetDelimiter(';')
	defer SetDelimiter(orig)

	out := filepath.Join(t.TempDir(), "categories.csv")
	require.NoError(t, WriteCategoriesToCSV([]finance.Category{{Name: "Casa"}}, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Category;Budget")
}

func TestWriteEmptySliceStillWritesHeader(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteHistoryToCSV(nil, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Month")
}
