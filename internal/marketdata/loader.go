package marketdata

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
)

// Loader reads and cleans CSV price files.
type Loader struct {
	logger *logger.Logger
}

// NewLoader creates a new CSV loader.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{logger: log}
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Load reads a CSV price file and returns a cleaned Series:
// sorted chronologically, forward-filled, with any rows that remain
// incomplete after the fill dropped. The first column must be the
// Date column; every other column is an asset price series.
func (l *Loader) Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("price file %s has no data rows", path)
	}

	header := records[0]
	if !strings.EqualFold(strings.TrimSpace(header[0]), "Date") {
		return nil, fmt.Errorf("CSV must contain a 'Date' column as its first column, got %q", header[0])
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("CSV must contain at least one asset column besides Date")
	}

	assets := make([]string, len(header)-1)
	for i, name := range header[1:] {
		assets[i] = strings.TrimSpace(name)
	}

	dates := make([]time.Time, 0, len(records)-1)
	prices := make([][]float64, 0, len(records)-1)

	for rowNum, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", rowNum+2, len(rec), len(header))
		}

		date, err := parseDate(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}

		row := make([]float64, len(assets))
		for j, cell := range rec[1:] {
			row[j] = parsePrice(cell)
		}

		dates = append(dates, date)
		prices = append(prices, row)
	}

	l.logger.WithFields(map[string]interface{}{
		"path":   path,
		"rows":   len(dates),
		"assets": len(assets),
	}).Info("Price file loaded")

	series := &Series{Dates: dates, Assets: assets, Prices: prices}

	// Sort chronologically
	sortByDate(series)

	// Duplicate dates violate the series invariant
	for i := 1; i < len(series.Dates); i++ {
		if series.Dates[i].Equal(series.Dates[i-1]) {
			return nil, fmt.Errorf("duplicate trading day %s", series.Dates[i].Format("2006-01-02"))
		}
	}

	// Forward fill, then drop rows that still contain missing values
	// (typically leading rows where no prior price exists)
	missingBefore := countMissing(series)
	forwardFill(series)
	dropped := dropIncompleteRows(series)

	l.logger.WithFields(map[string]interface{}{
		"missing_before": missingBefore,
		"rows_dropped":   dropped,
		"trading_days":   series.Len(),
	}).Info("Price data cleaned")

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("cleaned series invalid: %w", err)
	}

	return series, nil
}

// Save writes the Series back out as a clean CSV.
func (l *Loader) Save(series *Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create clean CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"Date"}, series.Assets...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, date := range series.Dates {
		rec := make([]string, 0, len(series.Assets)+1)
		rec = append(rec, date.Format("2006-01-02"))
		for _, p := range series.Prices[i] {
			rec = append(rec, strconv.FormatFloat(p, 'f', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	l.logger.WithField("path", path).Info("Clean data saved")
	return nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// parsePrice returns NaN for empty or malformed cells; the cleaning
// pass decides what to do with them.
func parsePrice(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func sortByDate(s *Series) {
	idx := make([]int, len(s.Dates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.Dates[idx[a]].Before(s.Dates[idx[b]])
	})

	dates := make([]time.Time, len(idx))
	prices := make([][]float64, len(idx))
	for i, j := range idx {
		dates[i] = s.Dates[j]
		prices[i] = s.Prices[j]
	}
	s.Dates = dates
	s.Prices = prices
}

func countMissing(s *Series) int {
	count := 0
	for _, row := range s.Prices {
		for _, p := range row {
			if math.IsNaN(p) {
				count++
			}
		}
	}
	return count
}

// forwardFill carries the most recent price forward over gaps. The
// assumption is the last traded price holds until a new trade occurs.
func forwardFill(s *Series) {
	for j := range s.Assets {
		last := math.NaN()
		for i := range s.Prices {
			if math.IsNaN(s.Prices[i][j]) {
				s.Prices[i][j] = last
			} else {
				last = s.Prices[i][j]
			}
		}
	}
}

// dropIncompleteRows removes rows that still contain NaN after the
// forward fill and returns the number of rows dropped.
func dropIncompleteRows(s *Series) int {
	dates := s.Dates[:0]
	prices := s.Prices[:0]
	dropped := 0

	for i, row := range s.Prices {
		complete := true
		for _, p := range row {
			if math.IsNaN(p) {
				complete = false
				break
			}
		}
		if complete {
			dates = append(dates, s.Dates[i])
			prices = append(prices, row)
		} else {
			dropped++
		}
	}

	s.Dates = dates
	s.Prices = prices
	return dropped
}
