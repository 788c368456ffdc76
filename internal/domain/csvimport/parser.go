// Package csvimport parses the vendor ticket CSV export and materializes
// tickets from it. The export format: a header row whose column names are
// matched by substring (tolerant of reordering), quoted fields that may
// contain commas (one quote layer, no escaped quotes), and a multi-valued
// People cell. Each person on a row becomes one ticket carrying the full
// row's hours; the hours are not divided between people.
package csvimport

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one parsed CSV line fanned out over its people later.
type Row struct {
	TicketNumber string   `json:"ticketNumber"`
	ProjectTitle string   `json:"projectTitle"`
	DIRNumber    string   `json:"dirNumber"`
	DateWorked   string   `json:"dateWorked"` // normalized YYYY-MM-DD
	TotalHours   float64  `json:"totalHours"`
	People       []string `json:"people"`
}

// Header substrings the importer looks for. Renamed columns are rejected
// with an explicit error rather than silently skipped.
var requiredHeaders = []string{
	"Ticket #",
	"Ticket Name",
	"DIR #",
	"Deliverable Due Date",
	"Total Man Hours",
	"People",
}

type columns struct {
	ticket, name, dir, date, hours, people int
}

// Parse reads the whole CSV text. Rows with no resolvable people are
// dropped; structurally broken rows produce per-row errors but do not
// abort the parse.
func Parse(text string) ([]Row, []error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, []error{fmt.Errorf("csv is empty")}
	}

	cols, err := locateColumns(splitLine(lines[0]))
	if err != nil {
		return nil, []error{err}
	}

	var rows []Row
	var rowErrs []error
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		row, err := parseRow(splitLine(lines[i]), cols)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		if len(row.People) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs
}

func locateColumns(headers []string) (columns, error) {
	find := func(substr string) int {
		for i, h := range headers {
			if strings.Contains(h, substr) {
				return i
			}
		}
		return -1
	}

	var missing []string
	for _, h := range requiredHeaders {
		if find(h) < 0 {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("csv header is missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns{
		ticket: find("Ticket #"),
		name:   find("Ticket Name"),
		dir:    find("DIR #"),
		date:   find("Deliverable Due Date"),
		hours:  find("Total Man Hours"),
		people: find("People"),
	}, nil
}

func parseRow(fields []string, cols columns) (Row, error) {
	max := cols.ticket
	for _, idx := range []int{cols.name, cols.dir, cols.date, cols.hours, cols.people} {
		if idx > max {
			max = idx
		}
	}
	if len(fields) <= max {
		return Row{}, fmt.Errorf("expected at least %d fields, got %d", max+1, len(fields))
	}

	date, err := normalizeDate(strings.TrimSpace(fields[cols.date]))
	if err != nil {
		return Row{}, err
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(fields[cols.hours]), 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid hours %q", fields[cols.hours])
	}
	if hours <= 0 {
		return Row{}, fmt.Errorf("hours must be positive, got %v", hours)
	}

	return Row{
		TicketNumber: strings.TrimSpace(fields[cols.ticket]),
		ProjectTitle: strings.TrimSpace(fields[cols.name]),
		DIRNumber:    strings.TrimSpace(fields[cols.dir]),
		DateWorked:   date,
		TotalHours:   hours,
		People:       splitPeople(fields[cols.people]),
	}, nil
}

// splitLine splits on commas while respecting double-quoted fields. There
// is no escaped-quote support; the vendor export never produces them.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, ch := range strings.TrimRight(line, "\r") {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())
	return fields
}

func splitPeople(cell string) []string {
	cell = strings.TrimSpace(cell)
	cell = strings.TrimPrefix(cell, `"`)
	cell = strings.TrimSuffix(cell, `"`)
	var people []string
	for _, p := range strings.Split(cell, ",") {
		if name := strings.TrimSpace(p); name != "" {
			people = append(people, name)
		}
	}
	return people
}

// normalizeDate converts M/D/YY or M/D/YYYY to YYYY-MM-DD. Two-digit years
// are assumed to be 2000+.
func normalizeDate(raw string) (string, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %q: expected M/D/YY or M/D/YYYY", raw)
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", fmt.Errorf("invalid date %q: non-numeric component", raw)
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("invalid date %q: out of range", raw)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}
