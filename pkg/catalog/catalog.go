package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const website = "https://www.lobbyview.org"

// DownloadPage is where the datasets can be fetched by hand. The site
// serves downloads through a JavaScript interface, so the direct URLs in
// the default catalog are best-effort only.
const DownloadPage = website + "/data-download"

// Dataset is one named downloadable file.
type Dataset struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Catalog is an ordered, immutable set of datasets. Order is the declared
// order so that reporting output is stable across runs.
type Catalog struct {
	datasets []Dataset
}

// New builds a catalog from explicit entries, keeping their order.
func New(datasets []Dataset) *Catalog {
	return &Catalog{datasets: append([]Dataset(nil), datasets...)}
}

// Default returns the built-in catalog of LobbyView datasets.
func Default() *Catalog {
	return &Catalog{datasets: []Dataset{
		{Name: "reports", URL: website + "/data/reports.csv"},
		{Name: "issues", URL: website + "/data/issues.csv"},
		{Name: "bills", URL: website + "/data/bills.csv"},
		{Name: "clients", URL: website + "/data/clients.csv"},
		{Name: "networks", URL: website + "/data/networks.csv"},
	}}
}

// Load reads a catalog override from a yaml file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var raw struct {
		Datasets []Dataset `yaml:"datasets"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(raw.Datasets) == 0 {
		return nil, fmt.Errorf("catalog has no datasets")
	}
	for i, d := range raw.Datasets {
		if d.Name == "" || d.URL == "" {
			return nil, fmt.Errorf("catalog entry %d is missing a name or url", i)
		}
	}
	return &Catalog{datasets: raw.Datasets}, nil
}

// Datasets returns the entries in declared order.
func (c *Catalog) Datasets() []Dataset {
	out := make([]Dataset, len(c.datasets))
	copy(out, c.datasets)
	return out
}

// Len is the number of datasets in the catalog.
func (c *Catalog) Len() int {
	return len(c.datasets)
}

// ReportsURL returns the URL of the reports dataset, or an empty string if
// the catalog does not carry one.
func (c *Catalog) ReportsURL() string {
	for _, d := range c.datasets {
		if d.Name == "reports" {
			return d.URL
		}
	}
	return ""
}
