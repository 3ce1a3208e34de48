package transform

import (
	"fmt"
	"strconv"
	"strings"
)

// Report is one lobbying disclosure filing.
type Report struct {
	LobID      string
	FilingYear int
	Amount     float64
	HasAmount  bool
	NoActivity bool
	Amendment  bool
}

// Client is a firm that retains lobbyists. GVKey is empty when the firm has
// no external identifier.
type Client struct {
	LobID string
	GVKey string
}

// FirmYear is one row of the cleaned output table: total lobbying spend for
// one filer in one filing year, tied to a firm identifier.
type FirmYear struct {
	LobID string
	Year  int
	GVKey string
	Spend float64
}

// flagValues maps the boolean spellings found in the raw data. The source
// files store flags as the Python reprs "True"/"False", but exports from
// other tooling show up with other casings or as 0/1.
var flagValues = map[string]bool{
	"True":  true,
	"TRUE":  true,
	"true":  true,
	"1":     true,
	"False": false,
	"FALSE": false,
	"false": false,
	"0":     false,
}

// ParseFlag converts a boolean-like cell into a bool. Unrecognized values
// are an error rather than silently counting as true or false.
func ParseFlag(s string) (bool, error) {
	v, ok := flagValues[strings.TrimSpace(s)]
	if !ok {
		return false, fmt.Errorf("unrecognized boolean value %q", s)
	}
	return v, nil
}

func parseAmount(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, true, nil
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid filing_year %q: %w", s, err)
	}
	return y, nil
}
