package transform

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"

	"lobbyview/pkg/config"
)

// Filter keeps only real activity: reports flagged as no-activity or as
// amendments are dropped.
func Filter(reports []Report) []Report {
	kept := make([]Report, 0, len(reports))
	for _, r := range reports {
		if r.NoActivity || r.Amendment {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Aggregate sums amount per (lob_id, filing_year). Missing amounts
// contribute nothing; a group whose every amount is missing sums to zero.
// The result is sorted by (lob_id, year) so output order never depends on
// input order.
func Aggregate(reports []Report) []FirmYear {
	type key struct {
		lobID string
		year  int
	}

	sums := make(map[key]float64)
	for _, r := range reports {
		k := key{r.LobID, r.FilingYear}
		if _, ok := sums[k]; !ok {
			sums[k] = 0
		}
		if r.HasAmount {
			sums[k] += r.Amount
		}
	}

	rows := make([]FirmYear, 0, len(sums))
	for k, sum := range sums {
		rows = append(rows, FirmYear{LobID: k.lobID, Year: k.year, Spend: sum})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LobID != rows[j].LobID {
			return rows[i].LobID < rows[j].LobID
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}

// JoinClients left-joins the aggregated rows with the client table on
// lob_id, then drops every row without a resolvable gvkey. A filer with
// several client records yields one output row per record, matching a
// relational left join.
func JoinClients(rows []FirmYear, clients []Client) []FirmYear {
	gvkeys := make(map[string][]string)
	for _, c := range clients {
		gvkeys[c.LobID] = append(gvkeys[c.LobID], c.GVKey)
	}

	out := make([]FirmYear, 0, len(rows))
	for _, row := range rows {
		for _, gvkey := range gvkeys[row.LobID] {
			if gvkey == "" {
				continue
			}
			row.GVKey = gvkey
			out = append(out, row)
		}
	}
	return out
}

// WriteOutput persists the firm-year table as CSV with a header row and no
// index column, overwriting any previous file.
func WriteOutput(path string, rows []FirmYear) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"lob_id", "year", "gvkey", "lobbying_spend"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.LobID,
			strconv.Itoa(row.Year),
			row.GVKey,
			strconv.FormatFloat(row.Spend, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Run executes the whole pipeline: load both raw tables, filter, aggregate
// to firm-year spend, attach gvkeys, and write the cleaned table. Any step
// failure is terminal; on failure a previous output file is left untouched.
func Run(cfg *config.Config, logger *log.Logger) error {
	reports, err := LoadReports(cfg.ReportsPath())
	if err != nil {
		return err
	}
	clients, err := LoadClients(cfg.ClientsPath())
	if err != nil {
		return err
	}
	logger.Info("loaded raw tables", "reports", len(reports), "clients", len(clients))

	kept := Filter(reports)
	logger.Info("dropped no-activity and amendment reports", "kept", len(kept), "dropped", len(reports)-len(kept))

	aggregated := Aggregate(kept)
	logger.Info("aggregated to firm-year", "groups", len(aggregated))

	cleaned := JoinClients(aggregated, clients)
	logger.Info("joined gvkeys and dropped unmatched rows", "rows", len(cleaned))

	if err := WriteOutput(cfg.OutputPath(), cleaned); err != nil {
		return err
	}
	logger.Info("saved cleaned dataset", "path", cfg.OutputPath(), "rows", len(cleaned))
	return nil
}
