package explore

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	pretty "github.com/jedib0t/go-pretty/v6/table"

	"lobbyview/pkg/table"
)

const headRows = 5

func newTable(w io.Writer) pretty.Writer {
	t := pretty.NewWriter()
	t.SetStyle(pretty.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// columnType infers a pandas-style dtype name from the non-missing values
// of a column.
func columnType(values []string) string {
	isInt, isFloat, isBool := true, true, true
	seen := false
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		switch v {
		case "True", "False", "TRUE", "FALSE", "true", "false":
		default:
			isBool = false
		}
	}
	switch {
	case !seen:
		return "object"
	case isBool:
		return "bool"
	case isInt:
		return "int64"
	case isFloat:
		return "float64"
	default:
		return "object"
	}
}

func missingCount(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			n++
		}
	}
	return n
}

func numericColumn(values []string) ([]float64, bool) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, f)
	}
	return out, len(out) > 0
}

// Report prints a dataset overview: shape, per-column dtype and missing
// counts, the first rows, numeric summary statistics, and an approximate
// in-memory size.
func Report(w io.Writer, t *table.Table) {
	rows, cols := t.Shape()
	fmt.Fprintf(w, "\nRows: %d\nColumns: %d\n\n", rows, cols)

	// Column overview
	tw := newTable(w)
	tw.AppendHeader(pretty.Row{"#", "Column", "Type", "Missing", "Missing %"})
	for i, h := range t.Headers {
		values := t.Column(h)
		missing := missingCount(values)
		pct := 0.0
		if rows > 0 {
			pct = float64(missing) / float64(rows) * 100
		}
		tw.AppendRow(pretty.Row{i + 1, h, columnType(values), missing, fmt.Sprintf("%.2f", pct)})
	}
	tw.Render()

	// First rows
	if rows > 0 {
		fmt.Fprintf(w, "\nFirst %d rows:\n", min(headRows, rows))
		hw := newTable(w)
		header := make(pretty.Row, len(t.Headers))
		for i, h := range t.Headers {
			header[i] = h
		}
		hw.AppendHeader(header)
		for _, row := range t.Rows[:min(headRows, rows)] {
			r := make(pretty.Row, len(t.Headers))
			for i, h := range t.Headers {
				r[i] = row[h]
			}
			hw.AppendRow(r)
		}
		hw.Render()
	}

	// Numeric summary
	sw := newTable(w)
	sw.AppendHeader(pretty.Row{"Column", "Count", "Mean", "Min", "Max"})
	numeric := false
	for _, h := range t.Headers {
		values, ok := numericColumn(t.Column(h))
		if !ok {
			continue
		}
		numeric = true
		sum, minV, maxV := 0.0, values[0], values[0]
		for _, v := range values {
			sum += v
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		sw.AppendRow(pretty.Row{h, len(values), fmt.Sprintf("%.2f", sum/float64(len(values))),
			fmt.Sprintf("%.2f", minV), fmt.Sprintf("%.2f", maxV)})
	}
	if numeric {
		fmt.Fprintln(w, "\nSummary statistics:")
		sw.Render()
	}

	fmt.Fprintf(w, "\nApproximate memory: %.2f MB\n", float64(approxBytes(t))/(1024*1024))
}

func approxBytes(t *table.Table) int {
	n := 0
	for _, row := range t.Rows {
		for _, v := range row {
			n += len(v)
		}
	}
	return n
}
