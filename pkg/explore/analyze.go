package explore

import (
	"fmt"
	"io"
	"sort"

	pretty "github.com/jedib0t/go-pretty/v6/table"

	"lobbyview/pkg/table"
)

// Analyze prints the lobbying-specific example analyses. Each analysis is
// skipped when the column it needs is absent, so the command works on any
// of the LobbyView datasets.
func Analyze(w io.Writer, t *table.Table) {
	if t.HasColumn("amount") {
		if values, ok := numericColumn(t.Column("amount")); ok {
			total := 0.0
			for _, v := range values {
				total += v
			}
			sorted := append([]float64(nil), values...)
			sort.Float64s(sorted)
			median := sorted[len(sorted)/2]
			if len(sorted)%2 == 0 {
				median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
			}

			fmt.Fprintln(w, "\nTotal lobbying expenditures:")
			fmt.Fprintf(w, "  Total:   $%.2f\n", total)
			fmt.Fprintf(w, "  Average: $%.2f\n", total/float64(len(values)))
			fmt.Fprintf(w, "  Median:  $%.2f\n", median)
		}
	}

	if t.HasColumn("registrant_name") {
		fmt.Fprintln(w, "\nTop 10 lobbying registrants:")
		topCounts(w, t.Column("registrant_name"), 10)
	}

	if t.HasColumn("year") {
		fmt.Fprintln(w, "\nReports by year:")
		yearCounts(w, t.Column("year"))
	}
}

func topCounts(w io.Writer, values []string, n int) {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	tw := newTable(w)
	tw.AppendHeader(pretty.Row{"Name", "Reports"})
	for i, e := range entries {
		if i >= n {
			break
		}
		tw.AppendRow(pretty.Row{e.name, e.count})
	}
	tw.Render()
}

func yearCounts(w io.Writer, values []string) {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}

	years := make([]string, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Strings(years)

	tw := newTable(w)
	tw.AppendHeader(pretty.Row{"Year", "Reports"})
	for _, y := range years {
		tw.AppendRow(pretty.Row{y, counts[y]})
	}
	tw.Render()
}
