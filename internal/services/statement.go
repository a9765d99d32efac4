package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "finboard/internal/errors"
)

var statementDateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006"}

// parseStatement reads a date,description,amount CSV export. A header row is
// optional; ';' is accepted as delimiter when the first line uses it.
func parseStatement(content []byte) ([]ImportRow, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	firstLine, _, _ := bytes.Cut(content, []byte("\n"))
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		r.Comma = ';'
	}

	var rows []ImportRow
	for line := 1; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidFile, err)
		}
		if isBlankRecord(record) {
			continue
		}
		if line == 1 && isHeader(record) {
			continue
		}
		if len(record) < 3 {
			return nil, invalidLine(line, "expected date, description and amount")
		}

		date, err := parseStatementDate(record[0])
		if err != nil {
			return nil, invalidLine(line, "invalid date "+strconv.Quote(record[0]))
		}
		description := strings.TrimSpace(record[1])
		if description == "" {
			return nil, invalidLine(line, "empty description")
		}
		amount, err := parseAmount(record[2])
		if err != nil {
			return nil, invalidLine(line, "invalid amount "+strconv.Quote(record[2]))
		}

		rows = append(rows, ImportRow{Date: date, Description: description, Amount: amount})
	}

	if len(rows) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidFile, "The file contains no transactions")
	}
	return rows, nil
}

func invalidLine(line int, reason string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidFile, fmt.Sprintf("line %d: %s", line, reason))
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func isHeader(record []string) bool {
	return strings.EqualFold(strings.TrimSpace(record[0]), "date") ||
		strings.EqualFold(strings.TrimSpace(record[0]), "fecha")
}

func parseStatementDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseAmount converts a decimal amount to cents. Whichever of '.' or ','
// appears last is the decimal separator; the other is a thousands separator.
func parseAmount(value string) (int64, error) {
	value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "$"))
	value = strings.ReplaceAll(value, " ", "")
	if value == "" {
		return 0, fmt.Errorf("empty amount")
	}

	decimalSep := "."
	if strings.LastIndex(value, ",") > strings.LastIndex(value, ".") {
		decimalSep = ","
	}
	thousandsSep := ","
	if decimalSep == "," {
		thousandsSep = "."
	}
	value = strings.ReplaceAll(value, thousandsSep, "")

	whole, frac, hasFrac := strings.Cut(value, decimalSep)
	negative := strings.HasPrefix(whole, "-")
	whole = strings.TrimLeft(whole, "+-")
	if whole == "" {
		whole = "0"
	}
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("amount %q has an invalid fractional part", value)
		}
		frac += strings.Repeat("0", 2-len(frac))
	} else {
		frac = "00"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || cents < 0 {
		return 0, fmt.Errorf("amount %q has an invalid fractional part", value)
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return total, nil
}
