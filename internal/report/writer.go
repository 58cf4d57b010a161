// Package report writes derived finance aggregates to CSV files so they can
// be inspected or fed to other tools.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"hogarboard/internal/finance"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Delimiter used for CSV output; configurable for locales whose spreadsheet
// tools expect ';'.
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// categoryRow maps a derived Category onto CSV columns.
type categoryRow struct {
	Name        string `csv:"Category"`
	Budget      string `csv:"Budget"`
	Actual      string `csv:"Actual"`
	Remaining   string `csv:"Remaining"`
	PercentUsed int    `csv:"Percent Used"`
	TxCount     int    `csv:"Transactions"`
}

// historyRow maps a HistoryPoint onto CSV columns.
type historyRow struct {
	Month            string `csv:"Month"`
	Income           string `csv:"Income"`
	ActualExpense    string `csv:"Actual Expense"`
	PlannedExpense   string `csv:"Planned Expense"`
	NetSaving        string `csv:"Net Saving"`
	CumulativeSaving string `csv:"Cumulative Saving"`
}

// WriteCategoriesToCSV writes the derived categories for the active month.
func WriteCategoriesToCSV(categories []finance.Category, csvFile string) error {
	rows := make([]categoryRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, categoryRow{
			Name:        c.Name,
			Budget:      c.Budget.StringFixed(2),
			Actual:      c.Actual.StringFixed(2),
			Remaining:   c.Remaining.StringFixed(2),
			PercentUsed: c.PercentUsed,
			TxCount:     len(c.Transactions),
		})
	}
	return writeRows(rows, csvFile, len(categories))
}

// WriteHistoryToCSV writes the month-over-month history series.
func WriteHistoryToCSV(history []finance.HistoryPoint, csvFile string) error {
	rows := make([]historyRow, 0, len(history))
	for _, h := range history {
		rows = append(rows, historyRow{
			Month:            h.Month,
			Income:           h.Income.StringFixed(2),
			ActualExpense:    h.ActualExpense.StringFixed(2),
			PlannedExpense:   h.PlannedExpense.StringFixed(2),
			NetSaving:        h.NetSaving.StringFixed(2),
			CumulativeSaving: h.CumulativeSaving.StringFixed(2),
		})
	}
	return writeRows(rows, csvFile, len(history))
}

// writeRows marshals any row slice to csvFile with the configured delimiter.
func writeRows[T any](rows []T, csvFile string, count int) error {
	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": count,
	}).Info("Writing report to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal report rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}
