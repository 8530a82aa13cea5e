package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var requiredColumns = []string{"sale_date", "total_amount", "total_quantity", "invoices_count", "total_discount"}

// LoadCSV reads a daily sales file with a header row. Column order is
// not significant; extra columns are ignored.
func LoadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening series file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses daily sales records from r.
func ReadCSV(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []DailyRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}
		line++

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return New(records), nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (DailyRecord, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, err := parseDate(field("sale_date"))
	if err != nil {
		return DailyRecord{}, err
	}

	amount, err := parseNonNegativeFloat("total_amount", field("total_amount"))
	if err != nil {
		return DailyRecord{}, err
	}
	quantity, err := parseNonNegativeInt("total_quantity", field("total_quantity"))
	if err != nil {
		return DailyRecord{}, err
	}
	invoices, err := parseNonNegativeInt("invoices_count", field("invoices_count"))
	if err != nil {
		return DailyRecord{}, err
	}
	discount, err := parseNonNegativeFloat("total_discount", field("total_discount"))
	if err != nil {
		return DailyRecord{}, err
	}

	return DailyRecord{
		Date:          date,
		TotalAmount:   amount,
		TotalQuantity: quantity,
		InvoicesCount: invoices,
		TotalDiscount: discount,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid sale_date %q", value)
}

func parseNonNegativeFloat(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must be non-negative, got %v", name, v)
	}
	return v, nil
}

func parseNonNegativeInt(name, value string) (int64, error) {
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// Some exports write integer columns as decimals.
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil {
			return 0, fmt.Errorf("invalid %s %q", name, value)
		}
		v = int64(f)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must be non-negative, got %d", name, v)
	}
	return v, nil
}
