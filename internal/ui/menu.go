// Package ui implements the interactive terminal front end: a looping menu
// for generating reports, comparing them against published METARs, and
// managing saved airports and settings.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/wxforge/metgen/internal/airport"
	"github.com/wxforge/metgen/internal/config"
	"github.com/wxforge/metgen/internal/noaa"
	"github.com/wxforge/metgen/internal/provider"
	"github.com/wxforge/metgen/internal/storage/sqlite"
	"github.com/wxforge/metgen/internal/synth"
	"github.com/wxforge/metgen/pkg/logger"
)

// Color definitions using fatih/color
var (
	bannerColor = color.New(color.FgGreen, color.Bold)
	menuColor   = color.New(color.FgCyan)
	promptColor = color.New(color.FgGreen)
	reportColor = color.New(color.FgWhite, color.Bold)
	alertColor  = color.New(color.FgRed, color.Bold)
	errorColor  = color.New(color.FgRed)
	infoColor   = color.New(color.FgYellow)
)

const banner = `
 __  __ _____ _____ ____ _____ _   _
|  \/  | ____|_   _/ ___| ____| \ | |
| |\/| |  _|   | || |  _|  _| |  \| |
| |  | | |___  | || |_| | |___| |\  |
|_|  |_|_____| |_| \____|_____|_| \_|
`

// Menu is the interactive terminal session.
type Menu struct {
	generator *synth.Generator
	weather   *provider.Client
	resolver  *airport.Resolver
	official  *noaa.Client
	store     *sqlite.ReportStore // nil disables the history view
	cfg       *config.Config
	in        *bufio.Reader
	out       io.Writer
	logger    *logger.Logger
}

// NewMenu wires the interactive session. store may be nil.
func NewMenu(gen *synth.Generator, weather *provider.Client, resolver *airport.Resolver, official *noaa.Client, store *sqlite.ReportStore, cfg *config.Config, in io.Reader, out io.Writer, log *logger.Logger) *Menu {
	return &Menu{
		generator: gen,
		weather:   weather,
		resolver:  resolver,
		official:  official,
		store:     store,
		cfg:       cfg,
		in:        bufio.NewReader(in),
		out:       out,
		logger:    log.Named("ui"),
	}
}

// Run loops the main menu until the user quits or input is exhausted.
func (m *Menu) Run(ctx context.Context) error {
	m.logger.Debug("Interactive session started")
	bannerColor.Fprint(m.out, banner+"\n")
	infoColor.Fprintln(m.out, "METAR report generator")

	for {
		fmt.Fprintln(m.out)
		menuColor.Fprintln(m.out, "1. Generate report from ICAO code")
		menuColor.Fprintln(m.out, "2. Generate report from place name")
		menuColor.Fprintln(m.out, "3. Generate report from coordinates")
		menuColor.Fprintln(m.out, "4. Generate report for current location")
		menuColor.Fprintln(m.out, "5. Fetch official METAR")
		menuColor.Fprintln(m.out, "6. Saved airports")
		menuColor.Fprintln(m.out, "7. Recent reports")
		menuColor.Fprintln(m.out, "8. Settings")
		menuColor.Fprintln(m.out, "q. Quit")

		choice, err := m.prompt("Select an option: ")
		if err != nil {
			return nil // EOF ends the session
		}

		switch strings.ToLower(choice) {
		case "1":
			m.generateFromICAO(ctx)
		case "2":
			m.generateFromPlace(ctx)
		case "3":
			m.generateFromCoordinates(ctx)
		case "4":
			m.generateFromGeolocation(ctx)
		case "5":
			m.fetchOfficial(ctx)
		case "6":
			m.savedAirportsMenu(ctx)
		case "7":
			m.showHistory(ctx)
		case "8":
			m.settingsMenu()
		case "q", "quit", "exit":
			return nil
		default:
			errorColor.Fprintln(m.out, "Unknown option")
		}
	}
}

func (m *Menu) prompt(label string) (string, error) {
	promptColor.Fprint(m.out, label)
	input, err := m.in.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (m *Menu) promptStationCode() (string, error) {
	input, err := m.prompt("Enter ICAO airport code (e.g., KJFK, EGLL): ")
	if err != nil {
		return "", err
	}
	return normalizeStationCode(input)
}

func normalizeStationCode(input string) (string, error) {
	stationCode := strings.ToUpper(strings.TrimSpace(input))
	if len(stationCode) != 4 {
		return "", fmt.Errorf("invalid station code: must be 4 characters")
	}
	return stationCode, nil
}

// parseCoordinates accepts "lat, lon" or "lat lon".
func parseCoordinates(input string) (float64, float64, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected latitude and longitude, e.g. 60.32, 24.96")
	}

	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %s", fields[0])
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %s", fields[1])
	}
	if err := airport.ValidateLatLon(lat, lon); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func (m *Menu) generateFromICAO(ctx context.Context) {
	stationCode, err := m.promptStationCode()
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(m.out, "Generating report for %s...\n", stationCode)
	result, err := m.generator.ForICAO(ctx, stationCode)
	m.showResult(result, err)
}

func (m *Menu) generateFromPlace(ctx context.Context) {
	location, err := m.prompt("Enter a place name (e.g., Helsinki): ")
	if err != nil || location == "" {
		errorColor.Fprintln(m.out, "Error: no place name provided")
		return
	}

	stationID := stationLabel(location)
	fmt.Fprintf(m.out, "Generating report for %q...\n", location)
	result, err := m.generator.ForLocation(ctx, stationID, location)
	m.showResult(result, err)
}

func (m *Menu) generateFromCoordinates(ctx context.Context) {
	input, err := m.prompt("Enter coordinates (lat, lon): ")
	if err != nil {
		return
	}
	lat, lon, err := parseCoordinates(input)
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	result, err := m.generator.ForCoordinates(ctx, "ZZZZ", lat, lon)
	m.showResult(result, err)
}

func (m *Menu) generateFromGeolocation(ctx context.Context) {
	fmt.Fprintln(m.out, "Looking up your location...")
	loc, err := m.resolver.Geolocate(ctx)
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(m.out, "Found %s, %s (%.4f, %.4f)\n", loc.City, loc.Country, loc.Latitude, loc.Longitude)
	result, err := m.generator.ForCoordinates(ctx, stationLabel(loc.City), loc.Latitude, loc.Longitude)
	m.showResult(result, err)
}

func (m *Menu) fetchOfficial(ctx context.Context) {
	stationCode, err := m.promptStationCode()
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(m.out, "Fetching METAR for %s...\n", stationCode)
	raw, err := m.official.FetchMETAR(ctx, stationCode)
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(m.out)
	reportColor.Fprintln(m.out, raw)
}

func (m *Menu) showResult(result *synth.Result, err error) {
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(m.out)
	reportColor.Fprintln(m.out, result.Report)
	for _, alert := range result.Alerts {
		alertColor.Fprintf(m.out, "ALERT: %s\n", alert)
	}
}

// stationLabel derives a 4-character station identifier from a place name.
// Free-form locations have no ICAO code, so the label is only cosmetic.
func stationLabel(name string) string {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(name), ""))
	if len(cleaned) >= 4 {
		return cleaned[:4]
	}
	if cleaned == "" {
		return "ZZZZ"
	}
	return cleaned + strings.Repeat("Z", 4-len(cleaned))
}

func (m *Menu) showHistory(ctx context.Context) {
	if m.store == nil {
		infoColor.Fprintln(m.out, "History is disabled")
		return
	}

	records, err := m.store.Recent(ctx, m.cfg.Storage.HistoryLimit)
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	if len(records) == 0 {
		infoColor.Fprintln(m.out, "No reports generated yet")
		return
	}

	fmt.Fprintln(m.out)
	for _, rec := range records {
		menuColor.Fprintf(m.out, "%s  ", rec.GeneratedAt.Format("2006-01-02 15:04"))
		reportColor.Fprintln(m.out, rec.Report)
	}
}
