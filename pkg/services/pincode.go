package services

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"unicode"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/util"
)

// PincodeDetails is the city/state pair a pincode resolves to.
type PincodeDetails struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// PincodeDirectory maps pincodes to their city/state. The backing JSON file
// is loaded once per process (Warm from main, or lazily on first lookup) and
// is read-only afterwards. There is no refresh or invalidation policy; a
// changed file requires a restart.
type PincodeDirectory struct {
	path    string
	once    sync.Once
	loadErr error
	entries map[string]PincodeDetails
}

func NewPincodeDirectory(path string) *PincodeDirectory {
	return &PincodeDirectory{path: path}
}

// Warm loads the directory. Safe to call repeatedly; only the first call
// does work.
func (d *PincodeDirectory) Warm() error {
	d.once.Do(d.load)
	return d.loadErr
}

func (d *PincodeDirectory) load() {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		d.loadErr = apperr.Wrap(apperr.External, err, "unable to read pincode data file")
		util.LogError("loading pincode directory", err)
		return
	}

	var parsed map[string]PincodeDetails
	if err := json.Unmarshal(raw, &parsed); err != nil {
		d.loadErr = apperr.Wrap(apperr.External, err, "unable to parse pincode data file")
		util.LogError("parsing pincode directory", err)
		return
	}

	entries := make(map[string]PincodeDetails, len(parsed))
	for code, details := range parsed {
		entries[code] = PincodeDetails{
			City:  strings.ToLower(details.City),
			State: strings.ToLower(details.State),
		}
	}
	d.entries = entries
	util.LogInfo("pincode directory loaded")
}

// Lookup resolves a pincode. Returned city/state are title-cased for
// display; comparisons elsewhere are case-insensitive.
func (d *PincodeDirectory) Lookup(code string) (PincodeDetails, bool) {
	if err := d.Warm(); err != nil {
		return PincodeDetails{}, false
	}

	details, ok := d.entries[code]
	if !ok {
		return PincodeDetails{}, false
	}

	return PincodeDetails{
		City:  capitalizeWords(details.City),
		State: capitalizeWords(details.State),
	}, true
}

// Len reports how many pincodes are loaded.
func (d *PincodeDirectory) Len() int {
	if err := d.Warm(); err != nil {
		return 0
	}
	return len(d.entries)
}

func capitalizeWords(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(prev) {
			prev = r
			return unicode.ToUpper(r)
		}
		prev = r
		return r
	}, s)
}
