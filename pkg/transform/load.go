package transform

import (
	"fmt"

	"lobbyview/pkg/table"
)

var reportColumns = []string{"lob_id", "filing_year", "amount", "is_no_activity", "is_amendment"}
var clientColumns = []string{"lob_id", "gvkey"}

func requireColumns(t *table.Table, cols []string) error {
	for _, col := range cols {
		if !t.HasColumn(col) {
			return fmt.Errorf("%s is missing required column %q", t.Source, col)
		}
	}
	return nil
}

// LoadReports reads the raw reports table. A missing file or malformed row
// is fatal here; the pipeline has no fallback.
func LoadReports(path string) ([]Report, error) {
	t, err := table.Load(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(t, reportColumns); err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(t.Rows))
	for i, row := range t.Rows {
		noActivity, err := ParseFlag(row["is_no_activity"])
		if err != nil {
			return nil, fmt.Errorf("row %d, is_no_activity: %w", i+1, err)
		}
		amendment, err := ParseFlag(row["is_amendment"])
		if err != nil {
			return nil, fmt.Errorf("row %d, is_amendment: %w", i+1, err)
		}
		year, err := parseYear(row["filing_year"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		amount, has, err := parseAmount(row["amount"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		reports = append(reports, Report{
			LobID:      row["lob_id"],
			FilingYear: year,
			Amount:     amount,
			HasAmount:  has,
			NoActivity: noActivity,
			Amendment:  amendment,
		})
	}
	return reports, nil
}

// LoadClients reads the raw clients table.
func LoadClients(path string) ([]Client, error) {
	t, err := table.Load(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(t, clientColumns); err != nil {
		return nil, err
	}

	clients := make([]Client, 0, len(t.Rows))
	for _, row := range t.Rows {
		clients = append(clients, Client{
			LobID: row["lob_id"],
			GVKey: row["gvkey"],
		})
	}
	return clients, nil
}
