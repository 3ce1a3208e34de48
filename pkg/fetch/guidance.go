package fetch

import (
	"fmt"
	"io"
	"strings"

	"lobbyview/pkg/catalog"
)

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// ManualInstructions explains how to download the reports dataset by hand
// and where to place it so Locate will pick it up.
func ManualInstructions(w io.Writer) {
	fmt.Fprintln(w)
	rule(w)
	fmt.Fprintln(w, "MANUAL DOWNLOAD INSTRUCTIONS")
	rule(w)
	fmt.Fprintf(w, `
LobbyView serves its downloads through a JavaScript interface, so this
tool usually cannot fetch them directly. To download the Reports dataset:

1. Open: %s
2. Find the "Reports" dataset in the table
3. Click the download link and save the CSV file
4. Move it into your raw data directory (default: data/raw/)
5. Rename it to: lobbyview_reports.csv

Any of these names are also recognized as-is:
`, catalog.DownloadPage)
	for _, name := range AcceptedReportNames {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	fmt.Fprintln(w, `
Alternatively:
  - Contact LobbyView directly for data access
  - Check whether your institution has a data agreement with LobbyView
  - Look for the dataset on ICPSR or another data repository`)
	rule(w)
}

// Alternatives lists other places lobbying data can be sourced from when
// LobbyView itself is unreachable.
func Alternatives(w io.Writer) {
	fmt.Fprintln(w)
	rule(w)
	fmt.Fprintln(w, "ALTERNATIVE DATA SOURCES")
	rule(w)
	fmt.Fprintln(w, `
If you cannot access LobbyView directly, consider these alternatives:

1. OpenSecrets (Center for Responsive Politics)
   https://www.opensecrets.org — lobbying expenditure data

2. Congress.gov API
   https://api.congress.gov — congressional bills and legislative data

3. Data repositories (ICPSR, Zenodo)
   Search for "lobbying" datasets shared alongside academic publications

4. Direct contact with LobbyView
   Ask about download access or institutional agreements`)
}

// NextSteps is printed after a failed resolve so the user always has an
// actionable way forward.
func NextSteps(w io.Writer) {
	fmt.Fprintln(w)
	rule(w)
	fmt.Fprintln(w, "NEXT STEPS")
	rule(w)
	fmt.Fprintf(w, `
To proceed:
1. Visit: %s
2. Download the Reports dataset
3. Place the CSV file in your raw data directory
4. Rename it to: lobbyview_reports.csv

Or list alternative data sources:
  lobbyview fetch --alternatives
`, catalog.DownloadPage)
}
