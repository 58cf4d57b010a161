// Package finance derives view-ready budget aggregates from a parsed sheet
// document: per-category budget versus actual spend for the active month,
// transactions, month-over-month history with running cumulative savings, and
// user-configured single-cell KPIs.
package finance

import (
	"github.com/shopspring/decimal"
)

// ColumnMap names the positional layout of the source sheet. The positions
// are an opaque contract with the spreadsheet owner and must stay stable for
// the derivation to be meaningful; they are configured once instead of being
// scattered as magic indices.
type ColumnMap struct {
	// Transaction block (rows 1..cap)
	TxDate        int `mapstructure:"tx_date" yaml:"tx_date"`
	TxDescription int `mapstructure:"tx_description" yaml:"tx_description"`
	TxAmount      int `mapstructure:"tx_amount" yaml:"tx_amount"`
	TxCategory    int `mapstructure:"tx_category" yaml:"tx_category"`

	// Category block, keyed by month
	Month        int `mapstructure:"month" yaml:"month"`
	CategoryName int `mapstructure:"category_name" yaml:"category_name"`
	Budget       int `mapstructure:"budget" yaml:"budget"`
	Actual       int `mapstructure:"actual" yaml:"actual"`

	// History block, sharing the month column
	Income         int `mapstructure:"income" yaml:"income"`
	ActualExpense  int `mapstructure:"actual_expense" yaml:"actual_expense"`
	PlannedExpense int `mapstructure:"planned_expense" yaml:"planned_expense"`
}

// DefaultColumnMap matches the sheet layout this dashboard was built around.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		TxDate:        0,
		TxDescription: 1,
		TxAmount:      2,
		TxCategory:    3,

		Month:        5,
		CategoryName: 6,
		Budget:       7,
		Actual:       8,

		Income:         9,
		ActualExpense:  10,
		PlannedExpense: 11,
	}
}

// Transaction is a single spend row from the sheet. Recomputed on every
// derivation pass; never persisted.
type Transaction struct {
	Date        string
	Description string
	AmountRaw   string
	Category    string
	Amount      decimal.Decimal
}

// Category is a budget line item for the active month.
type Category struct {
	Name        string
	Budget      decimal.Decimal
	Actual      decimal.Decimal
	Remaining   decimal.Decimal
	PercentUsed int
	// Transactions whose category text loosely matches the name.
	Transactions []Transaction
}

// HistoryPoint is one month of income versus expense, with the running
// cumulative saving across all history rows in source order.
type HistoryPoint struct {
	Month            string
	Income           decimal.Decimal
	ActualExpense    decimal.Decimal
	PlannedExpense   decimal.Decimal
	NetSaving        decimal.Decimal
	CumulativeSaving decimal.Decimal
}

// WidgetDef is a user-configured finance widget bound to a single cell,
// resolved independently of category and history derivation.
type WidgetDef struct {
	Cell  string `mapstructure:"cell" yaml:"cell"`
	Title string `mapstructure:"title" yaml:"title"`
	Unit  string `mapstructure:"unit" yaml:"unit"`
	Color string `mapstructure:"color" yaml:"color"`
}

// WidgetValue is a widget definition with its resolved cell value.
type WidgetValue struct {
	WidgetDef
	Value decimal.Decimal
}

// Report is the derived, view-ready aggregate handed to the dashboard.
// It is a value object: no field outlives the document it was computed from.
type Report struct {
	ActiveMonth string

	Categories   []Category
	Transactions []Transaction
	History      []HistoryPoint
	CurrentStats HistoryPoint

	NetWorth              decimal.Decimal
	SavingsEfficiencyPct  int
	ExpenseExecutionPct   int
	CustomKPIs            []WidgetValue
}
