package finance

import (
	"strings"
	"testing"

	"hogarboard/internal/sheetfetch"
	"hogarboard/internal/sheetgrid"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromLines(lines ...string) *sheetfetch.Document {
	return &sheetfetch.Document{Grid: sheetgrid.Parse(strings.Join(lines, "\n"))}
}

func TestDeriveAbsentWithoutData(t *testing.T) {
	_, ok := Derive(nil, Options{})
	assert.False(t, ok)

	_, ok = Derive(docFromLines("Fecha;Desc;Monto;Cat"), Options{})
	assert.False(t, ok, "header-only document yields no report")
}

func TestDeriveEndToEnd(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		"01/05;Compra;-45,00;Ocio",
		";;;;;Mes;Categoria;Presupuesto;Real",
		";;;;;mayo;Ocio;100,00;80,00",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "mayo"})
	require.True(t, ok)

	require.Len(t, report.Categories, 1)
	cat := report.Categories[0]
	assert.Equal(t, "Ocio", cat.Name)
	assert.True(t, decimal.NewFromInt(100).Equal(cat.Budget))
	assert.True(t, decimal.NewFromInt(80).Equal(cat.Actual))
	assert.True(t, decimal.NewFromInt(20).Equal(cat.Remaining))
	assert.Equal(t, 80, cat.PercentUsed)

	require.Len(t, cat.Transactions, 1)
	assert.Equal(t, "Compra", cat.Transactions[0].Description)
	assert.True(t, decimal.NewFromInt(-45).Equal(cat.Transactions[0].Amount))
}

func TestDeriveActiveMonthAccentInsensitive(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		";;;;;Mes;Categoria;Presupuesto;Real",
		";;;;;MAYO ;Ocio;100;50",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "Mayo"})
	require.True(t, ok)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, 50, report.Categories[0].PercentUsed)
}

func TestDeriveOverBudgetPercentNotClamped(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		";;;;;mayo;Ocio;100;120",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "mayo"})
	require.True(t, ok)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, 120, report.Categories[0].PercentUsed)
}

func TestDeriveZeroBudgetPercentIsZero(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		";;;;;mayo;Ocio;0;120",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "mayo"})
	require.True(t, ok)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, 0, report.Categories[0].PercentUsed)
}

func TestDeriveSentinelRowsExcluded(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		";;;;;mayo;Subtotal;500;400",
		";;;;;mayo;Total;500;400",
		";;;;;mayo;Categoría;;",
		";;;;;mayo;Ocio;100;10",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "mayo"})
	require.True(t, ok)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, "Ocio", report.Categories[0].Name)
}

func TestDeriveUnnamedCategoryDefaults(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		";;;;;mayo;;100;10",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "mayo"})
	require.True(t, ok)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, "Sin nombre", report.Categories[0].Name)
}

func TestDeriveCategoriesSortedByPercentDescending(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		";;;;;mayo;Casa;100;40",
		";;;;;mayo;Ocio;100;90",
		";;;;;mayo;Coche;100;70",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "mayo"})
	require.True(t, ok)
	require.Len(t, report.Categories, 3)
	assert.Equal(t, []string{"Ocio", "Coche", "Casa"}, []string{
		report.Categories[0].Name, report.Categories[1].Name, report.Categories[2].Name,
	})
}

func TestDeriveTransactionRowCap(t *testing.T) {
	lines := []string{"Fecha;Desc;Monto;Cat"}
	for i := 0; i < 10; i++ {
		lines = append(lines, "01/05;Compra;1;Ocio")
	}

	report, ok := Derive(docFromLines(lines...), Options{ActiveMonth: "mayo", TxRowCap: 3})
	require.True(t, ok)
	assert.Len(t, report.Transactions, 3)
}

func TestDeriveHistoryCumulativeSaving(t *testing.T) {
	// income minus actual expense gives net savings of 100, -50, 200
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		";;;;;Mes;;;;Ingresos;Gasto real;Gasto previsto",
		";;;;;marzo;;;;1100;1000;1050",
		";;;;;abril;;;;950;1000;900",
		";;;;;mayo;;;;1200;1000;1100",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "mayo"})
	require.True(t, ok)
	require.Len(t, report.History, 3)

	cumulative := []int64{100, 50, 250}
	for i, h := range report.History {
		assert.True(t, decimal.NewFromInt(cumulative[i]).Equal(h.CumulativeSaving),
			"row %d: got %s", i, h.CumulativeSaving)
	}

	// current stats match the active month
	assert.Equal(t, "mayo", report.CurrentStats.Month)
	assert.True(t, decimal.NewFromInt(200).Equal(report.CurrentStats.NetSaving))

	// round(200/1200*100) = 17, round(1000/1100*100) = 91
	assert.Equal(t, 17, report.SavingsEfficiencyPct)
	assert.Equal(t, 91, report.ExpenseExecutionPct)
}

func TestDeriveCurrentStatsFallsBackToLastRow(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		";;;;;marzo;;;;1100;1000;1050",
		";;;;;abril;;;;950;1000;900",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "diciembre"})
	require.True(t, ok)
	assert.Equal(t, "abril", report.CurrentStats.Month)
}

func TestDeriveCustomWidgetsAndNetWorth(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat;Patrimonio",
		"01/05;Compra;-45,00;Ocio;12.345,67",
	)

	report, ok := Derive(doc, Options{
		ActiveMonth:  "mayo",
		NetWorthCell: "E2",
		Widgets: []WidgetDef{
			{Cell: "E2", Title: "Patrimonio", Unit: "€", Color: "#4caf50"},
			{Cell: "Z99", Title: "Missing"},
		},
	})
	require.True(t, ok)

	assert.True(t, decimal.NewFromFloat(12345.67).Equal(report.NetWorth))
	require.Len(t, report.CustomKPIs, 2)
	assert.True(t, decimal.NewFromFloat(12345.67).Equal(report.CustomKPIs[0].Value))
	assert.True(t, report.CustomKPIs[1].Value.IsZero(), "missing cell resolves to zero")
}

func TestDeriveToleratesMalformedRows(t *testing.T) {
	doc := docFromLines(
		"Fecha;Desc;Monto;Cat",
		"01/05;Compra;not-a-number;Ocio",
		";;;;;mayo;Ocio;garbage;also-garbage",
	)

	report, ok := Derive(doc, Options{ActiveMonth: "mayo"})
	require.True(t, ok, "malformed rows degrade to zero, never abort")
	require.Len(t, report.Transactions, 1)
	assert.True(t, report.Transactions[0].Amount.IsZero())
	require.Len(t, report.Categories, 1)
	assert.True(t, report.Categories[0].Budget.IsZero())
	assert.Equal(t, 0, report.Categories[0].PercentUsed)
}

func TestRelatedTransactionsBidirectionalSubstring(t *testing.T) {
	txs := []Transaction{
		{Description: "cine", Category: "Ocio"},
		{Description: "alquiler", Category: "Casa Extra"},
		{Description: "sin categoria", Category: ""},
	}

	assert.Len(t, relatedTransactions("Ocio y viajes", txs), 1)
	// "Casa" is a substring of "Casa Extra": loose match by design
	assert.Len(t, relatedTransactions("Casa", txs), 1)
	assert.Empty(t, relatedTransactions("Transporte", txs))
}
