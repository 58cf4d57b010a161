package finance

import (
	"sort"
	"time"

	"hogarboard/internal/numcoerce"
	"hogarboard/internal/sheetfetch"
	"hogarboard/internal/textnorm"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultTxRowCap bounds the transaction scan. The source sheet reserves the
// first 150 rows for the transaction block.
const DefaultTxRowCap = 149

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// categorySentinels are row labels that look like categories in the sheet but
// are headers or aggregate rows; they never become Category entries. Compared
// after normalization.
var categorySentinels = map[string]bool{
	"categoria": true,
	"mes":       true,
	"subtotal":  true,
	"total":     true,
}

// txHeaderSentinels are date-column values marking the transaction header row.
var txHeaderSentinels = map[string]bool{
	"fecha": true,
	"date":  true,
}

// monthHeaderSentinels are month-column values marking header rows in the
// category and history blocks.
var monthHeaderSentinels = map[string]bool{
	"mes":   true,
	"month": true,
}

// Options tunes a derivation pass. The zero value is usable: the clock
// defaults to time.Now, the column layout to DefaultColumnMap and the caps to
// their package defaults.
type Options struct {
	// ActiveMonth overrides clock-based month resolution when non-empty.
	ActiveMonth string
	Clock       func() time.Time
	RolloverDay int
	// TxRowCap is the last row index scanned for transactions.
	TxRowCap int
	Columns  ColumnMap
	// NetWorthCell is a single-cell address ("B2"); blank skips the lookup.
	NetWorthCell string
	Widgets      []WidgetDef
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.RolloverDay <= 0 {
		o.RolloverDay = DefaultRolloverDay
	}
	if o.TxRowCap <= 0 {
		o.TxRowCap = DefaultTxRowCap
	}
	if o.Columns == (ColumnMap{}) {
		o.Columns = DefaultColumnMap()
	}
	return o
}

// Derive computes the full report from a fetched document. It returns
// (nil, false) when the document holds no data beyond a header row; any
// single malformed row inside the document is tolerated and coerces to
// zero/empty instead of aborting the pass. Derive is pure and performs no
// I/O, so it is safe to re-run on every poll tick.
func Derive(doc *sheetfetch.Document, opts Options) (*Report, bool) {
	if doc == nil || doc.Grid.NumRows() < 2 {
		return nil, false
	}
	opts = opts.withDefaults()

	activeMonth := opts.ActiveMonth
	if activeMonth == "" {
		activeMonth = ActiveMonth(opts.Clock(), opts.RolloverDay)
	}

	report := &Report{ActiveMonth: activeMonth}
	report.Transactions = extractTransactions(doc, opts)
	report.Categories = extractCategories(doc, opts, activeMonth, report.Transactions)
	report.History = extractHistory(doc, opts)
	report.CurrentStats = currentStats(report.History, activeMonth)

	report.SavingsEfficiencyPct = percentOf(report.CurrentStats.NetSaving, report.CurrentStats.Income)
	report.ExpenseExecutionPct = percentOf(report.CurrentStats.ActualExpense, report.CurrentStats.PlannedExpense)

	if opts.NetWorthCell != "" {
		report.NetWorth = numcoerce.Parse(doc.Cell(opts.NetWorthCell))
	}
	for _, def := range opts.Widgets {
		report.CustomKPIs = append(report.CustomKPIs, WidgetValue{
			WidgetDef: def,
			Value:     numcoerce.Parse(doc.Cell(def.Cell)),
		})
	}

	log.WithFields(logrus.Fields{
		"month":        activeMonth,
		"categories":   len(report.Categories),
		"transactions": len(report.Transactions),
		"history":      len(report.History),
	}).Debug("Derived finance report")
	return report, true
}

// extractTransactions scans rows 1 through the cap, keeping rows whose date
// column is populated and not the header token.
func extractTransactions(doc *sheetfetch.Document, opts Options) []Transaction {
	cols := opts.Columns
	last := opts.TxRowCap
	if max := doc.Grid.NumRows() - 1; last > max {
		last = max
	}

	var txs []Transaction
	for r := 1; r <= last; r++ {
		date := doc.Grid.At(r, cols.TxDate)
		if date == "" || txHeaderSentinels[textnorm.Fold(date)] {
			continue
		}
		amountRaw := doc.Grid.At(r, cols.TxAmount)
		txs = append(txs, Transaction{
			Date:        date,
			Description: doc.Grid.At(r, cols.TxDescription),
			AmountRaw:   amountRaw,
			Category:    doc.Grid.At(r, cols.TxCategory),
			Amount:      numcoerce.Parse(amountRaw),
		})
	}
	return txs
}

// extractCategories keeps rows whose month column matches the active month,
// excluding header/subtotal/total sentinel rows, and sorts the result by
// percent consumed, highest first.
func extractCategories(doc *sheetfetch.Document, opts Options, activeMonth string, txs []Transaction) []Category {
	cols := opts.Columns
	activeFold := textnorm.Fold(activeMonth)

	var cats []Category
	for r := 0; r < doc.Grid.NumRows(); r++ {
		if textnorm.Fold(doc.Grid.At(r, cols.Month)) != activeFold {
			continue
		}
		name := doc.Grid.At(r, cols.CategoryName)
		if name == "" {
			name = "Sin nombre"
		}
		if categorySentinels[textnorm.Fold(name)] {
			continue
		}

		budget := numcoerce.ParseAbs(doc.Grid.At(r, cols.Budget))
		actual := numcoerce.ParseAbs(doc.Grid.At(r, cols.Actual))
		cats = append(cats, Category{
			Name:         name,
			Budget:       budget,
			Actual:       actual,
			Remaining:    budget.Sub(actual),
			PercentUsed:  percentOf(actual, budget),
			Transactions: relatedTransactions(name, txs),
		})
	}

	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].PercentUsed > cats[j].PercentUsed
	})
	return cats
}

// relatedTransactions associates transactions by bidirectional substring
// match on the normalized category text. The match is intentionally loose to
// tolerate abbreviations in the sheet; a transaction may land in more than
// one category when names contain each other.
func relatedTransactions(categoryName string, txs []Transaction) []Transaction {
	var related []Transaction
	for _, tx := range txs {
		if textnorm.ContainsFold(tx.Category, categoryName) {
			related = append(related, tx)
		}
	}
	return related
}

// extractHistory scans all rows with a populated, non-header month column and
// accumulates the running cumulative saving in source order. The series is a
// lifetime total; it is never reset per year.
func extractHistory(doc *sheetfetch.Document, opts Options) []HistoryPoint {
	cols := opts.Columns

	var history []HistoryPoint
	cumulative := decimal.Zero
	for r := 0; r < doc.Grid.NumRows(); r++ {
		month := doc.Grid.At(r, cols.Month)
		if month == "" || monthHeaderSentinels[textnorm.Fold(month)] {
			continue
		}
		income := numcoerce.Parse(doc.Grid.At(r, cols.Income))
		actual := numcoerce.Parse(doc.Grid.At(r, cols.ActualExpense))
		planned := numcoerce.Parse(doc.Grid.At(r, cols.PlannedExpense))
		net := income.Sub(actual)
		cumulative = cumulative.Add(net)
		history = append(history, HistoryPoint{
			Month:            month,
			Income:           income,
			ActualExpense:    actual,
			PlannedExpense:   planned,
			NetSaving:        net,
			CumulativeSaving: cumulative,
		})
	}
	return history
}

// currentStats picks the history row for the active month, falling back to
// the last row when no month matches.
func currentStats(history []HistoryPoint, activeMonth string) HistoryPoint {
	if len(history) == 0 {
		return HistoryPoint{Month: activeMonth}
	}
	for _, h := range history {
		if textnorm.EqualFold(h.Month, activeMonth) {
			return h
		}
	}
	return history[len(history)-1]
}

// percentOf returns round(num/den*100) as an integer, 0 when den is not
// positive. Over-budget values are representable; nothing is clamped.
func percentOf(num, den decimal.Decimal) int {
	if !den.IsPositive() {
		return 0
	}
	return int(num.Div(den).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
