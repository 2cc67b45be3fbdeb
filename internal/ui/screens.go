package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/wxforge/metgen/pkg/metar"
)

// savedAirportsMenu manages the airports stored in the config file.
func (m *Menu) savedAirportsMenu(ctx context.Context) {
	for {
		fmt.Fprintln(m.out)
		menuColor.Fprintln(m.out, "1. List saved airports")
		menuColor.Fprintln(m.out, "2. Add airport")
		menuColor.Fprintln(m.out, "3. Remove airport")
		menuColor.Fprintln(m.out, "4. Generate report for a saved airport")
		menuColor.Fprintln(m.out, "b. Back")

		choice, err := m.prompt("Select an option: ")
		if err != nil {
			return
		}

		switch strings.ToLower(choice) {
		case "1":
			m.listAirports()
		case "2":
			m.addAirport(ctx)
		case "3":
			m.removeAirport()
		case "4":
			m.generateFromSaved(ctx)
		case "b", "back":
			return
		default:
			errorColor.Fprintln(m.out, "Unknown option")
		}
	}
}

func (m *Menu) listAirports() {
	if len(m.cfg.Airports) == 0 {
		infoColor.Fprintln(m.out, "No saved airports")
		return
	}
	for _, a := range m.cfg.Airports {
		fmt.Fprintf(m.out, "  %s  (%.4f, %.4f)\n", a.ICAO, a.Latitude, a.Longitude)
	}
}

func (m *Menu) addAirport(ctx context.Context) {
	stationCode, err := m.promptStationCode()
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	lat, lon, err := m.resolver.ResolveICAO(ctx, stationCode)
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	if !m.cfg.AddAirport(stationCode, lat, lon) {
		infoColor.Fprintf(m.out, "%s is already saved\n", stationCode)
		return
	}
	if err := m.cfg.Save(); err != nil {
		errorColor.Fprintf(m.out, "Error saving config: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Saved %s (%.4f, %.4f)\n", stationCode, lat, lon)
}

func (m *Menu) removeAirport() {
	stationCode, err := m.promptStationCode()
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	if !m.cfg.RemoveAirport(stationCode) {
		infoColor.Fprintf(m.out, "%s is not saved\n", stationCode)
		return
	}
	if err := m.cfg.Save(); err != nil {
		errorColor.Fprintf(m.out, "Error saving config: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Removed %s\n", stationCode)
}

func (m *Menu) generateFromSaved(ctx context.Context) {
	if len(m.cfg.Airports) == 0 {
		infoColor.Fprintln(m.out, "No saved airports")
		return
	}
	m.listAirports()

	stationCode, err := m.promptStationCode()
	if err != nil {
		errorColor.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	saved, ok := m.cfg.FindAirport(stationCode)
	if !ok {
		errorColor.Fprintf(m.out, "%s is not saved\n", stationCode)
		return
	}

	fmt.Fprintf(m.out, "Generating report for %s...\n", saved.ICAO)
	result, err := m.generator.ForCoordinates(ctx, saved.ICAO, saved.Latitude, saved.Longitude)
	m.showResult(result, err)
}

// settingsMenu edits API keys and units, persisting changes immediately.
func (m *Menu) settingsMenu() {
	for {
		fmt.Fprintln(m.out)
		menuColor.Fprintln(m.out, "1. Set OpenWeatherMap API key")
		menuColor.Fprintln(m.out, "2. Set One Call API key")
		menuColor.Fprintf(m.out, "3. Switch units (current: %s)\n", m.cfg.Units)
		menuColor.Fprintln(m.out, "b. Back")

		choice, err := m.prompt("Select an option: ")
		if err != nil {
			return
		}

		switch strings.ToLower(choice) {
		case "1":
			m.setAPIKey(false)
		case "2":
			m.setAPIKey(true)
		case "3":
			m.switchUnits()
		case "b", "back":
			return
		default:
			errorColor.Fprintln(m.out, "Unknown option")
		}
	}
}

func (m *Menu) setAPIKey(oneCall bool) {
	key, err := m.prompt("Enter API key: ")
	if err != nil || key == "" {
		errorColor.Fprintln(m.out, "Error: no key provided")
		return
	}

	if oneCall {
		m.cfg.SetOneCallKey(key)
	} else {
		m.cfg.SetAPIKey(key)
	}
	m.weather.SetKeys(m.cfg.APIKey(), m.cfg.OneCallKey())
	m.resolver.SetAPIKey(m.cfg.APIKey())

	if err := m.cfg.Save(); err != nil {
		errorColor.Fprintf(m.out, "Error saving config: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Key saved")
}

func (m *Menu) switchUnits() {
	if m.cfg.Units == "metric" {
		m.cfg.Units = "imperial"
	} else {
		m.cfg.Units = "metric"
	}
	m.generator.SetUnits(metar.Units(m.cfg.Units))

	if err := m.cfg.Save(); err != nil {
		errorColor.Fprintf(m.out, "Error saving config: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Units set to %s\n", m.cfg.Units)
}
