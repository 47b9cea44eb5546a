// Package stockcsv parses distributor stock CSV exports into medicine
// create params. The column layout is auto-detected by matching header rows
// against known distributor profiles.
package stockcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/carepoint/medibill/internal/encoding"
	"github.com/carepoint/medibill/internal/medicine"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]medicine.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching stock export format found")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Distributor exports often carry a report title and firm details above the
// actual header row, so every row is a candidate.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts medicines from data rows using the matched profile.
// Footer rows (totals, blank lines) have no parseable quantity and are
// skipped; a row with a quantity but no item name is a hard error.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]medicine.CreateParams, error) {
	var meds []medicine.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		qty, ok := parseQty(cellValue(row, cols[p.QtyCol]))
		if !ok {
			continue
		}

		name := cellValue(row, cols[p.ItemCol])
		if name == "" {
			return nil, fmt.Errorf("row %d: missing item name", rowNum)
		}

		mrp, err := parseRupeeAmount(cellValue(row, cols[p.MRPCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad MRP: %w", rowNum, err)
		}

		params := medicine.CreateParams{
			Name:        name,
			Price:       mrp,
			Quantity:    qty,
			BatchNumber: cellValue(row, cols[p.BatchCol]),
		}

		if p.RateCol != "" {
			if rate, err := parseRupeeAmount(cellValue(row, cols[p.RateCol])); err == nil {
				params.PurchasePrice = rate
			}
		}

		if p.ExpiryCol != "" {
			params.ExpiryDate = parseExpiry(cellValue(row, cols[p.ExpiryCol]))
		}

		if p.ManufacturerCol != "" {
			params.Manufacturer = cellValue(row, cols[p.ManufacturerCol])
		}

		if p.ScheduleCol != "" {
			if sch := medicine.Schedule(cellValue(row, cols[p.ScheduleCol])); sch.Valid() {
				params.Schedule = sch
			}
		}

		meds = append(meds, params)
	}

	return meds, nil
}

// expiryLayouts covers the month formats seen across distributor exports.
var expiryLayouts = []string{"01/2006", "01/06", "1/06", "Jan-06", "Jan-2006", "2006-01-02"}

// parseExpiry is best effort: a blank or unrecognised cell yields the zero
// time rather than failing the import.
func parseExpiry(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

func parseQty(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
