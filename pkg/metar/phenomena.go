package metar

// phenomenaAbbr maps provider weather-condition codes to METAR phenomena
// abbreviations: thunderstorms 2xx, drizzle 3xx, rain 5xx, snow/sleet 6xx,
// obscuration 7xx. The 8xx cloud-coverage codes stay in the table for
// completeness but are never rendered on the phenomena line, since cloud
// cover already has its own token. Read-only process-wide data.
var phenomenaAbbr = map[int]string{
	200: "TSRA", 201: "TSRA", 202: "+TSRA",
	210: "TS", 211: "TS", 212: "+TS",
	221: "TS", 230: "TSRA", 231: "TSRA", 232: "+TSRA",
	300: "-DZ", 301: "DZ", 302: "+DZ", 310: "-DZRA",
	311: "DZRA", 312: "+DZRA", 313: "SHRA", 314: "+SHRA",
	321: "SHRA", 500: "-RA", 501: "RA", 502: "+RA",
	503: "+RA", 504: "+RA", 511: "FZRA", 520: "-SHRA",
	521: "SHRA", 522: "+SHRA", 531: "SHRA", 600: "-SN",
	601: "SN", 602: "+SN", 611: "SLT", 612: "-SHSL",
	613: "SHSL", 615: "-RASN", 616: "RASN", 620: "-SHSN",
	621: "SHSN", 622: "+SHSN", 701: "BR", 711: "FU",
	721: "HZ", 731: "DU", 741: "FG", 751: "SA",
	761: "DU", 762: "VA", 771: "SQ", 781: "+FC",
	800: "CLR", 801: "FEW", 802: "SCT", 803: "BKN", 804: "OVC",
}

// PhenomenaAbbreviation returns the METAR abbreviation for a provider weather
// code. Lookup is exact-match only; unmapped codes report ok=false and are
// silently dropped by the formatter.
func PhenomenaAbbreviation(code int) (abbr string, ok bool) {
	abbr, ok = phenomenaAbbr[code]
	return abbr, ok
}
