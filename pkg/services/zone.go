package services

import (
	"strings"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
)

// Shipping zones, ordered by increasing logistics distance.
const (
	ZoneLocal    = "a" // same city
	ZoneRegional = "b" // same or neighboring state
	ZoneMetro    = "c" // metro to metro
	ZoneNational = "d" // rest of country, default
	ZoneSpecial  = "e" // remote / special destinations
)

// neighborStates is the static classification table for zone b: states whose
// shared border keeps shipments on regional lanes.
var neighborStates = map[string][]string{
	"andhra pradesh":    {"telangana", "chhattisgarh", "odisha", "tamil nadu", "karnataka"},
	"arunachal pradesh": {"assam", "nagaland"},
	"assam":             {"arunachal pradesh", "nagaland", "manipur", "meghalaya", "mizoram", "tripura", "west bengal"},
	"bihar":             {"uttar pradesh", "jharkhand", "west bengal"},
	"chhattisgarh":      {"madhya pradesh", "maharashtra", "telangana", "andhra pradesh", "odisha", "jharkhand", "uttar pradesh"},
	"goa":               {"maharashtra", "karnataka"},
	"gujarat":           {"rajasthan", "madhya pradesh", "maharashtra", "dadra and nagar haveli and daman and diu"},
	"haryana":           {"punjab", "himachal pradesh", "uttarakhand", "uttar pradesh", "rajasthan", "delhi"},
	"himachal pradesh":  {"jammu and kashmir", "ladakh", "punjab", "haryana", "uttarakhand"},
	"jharkhand":         {"bihar", "west bengal", "odisha", "chhattisgarh", "uttar pradesh"},
	"karnataka":         {"goa", "maharashtra", "telangana", "andhra pradesh", "tamil nadu", "kerala"},
	"kerala":            {"karnataka", "tamil nadu"},
	"madhya pradesh":    {"uttar pradesh", "chhattisgarh", "maharashtra", "gujarat", "rajasthan"},
	"maharashtra":       {"gujarat", "madhya pradesh", "chhattisgarh", "telangana", "karnataka", "goa"},
	"manipur":           {"nagaland", "mizoram", "assam"},
	"meghalaya":         {"assam"},
	"mizoram":           {"assam", "manipur", "tripura"},
	"nagaland":          {"assam", "arunachal pradesh", "manipur"},
	"odisha":            {"west bengal", "jharkhand", "chhattisgarh", "andhra pradesh"},
	"punjab":            {"jammu and kashmir", "himachal pradesh", "haryana", "rajasthan"},
	"rajasthan":         {"punjab", "haryana", "uttar pradesh", "madhya pradesh", "gujarat"},
	"sikkim":            {"west bengal"},
	"tamil nadu":        {"andhra pradesh", "karnataka", "kerala"},
	"telangana":         {"maharashtra", "chhattisgarh", "andhra pradesh", "karnataka"},
	"tripura":           {"assam", "mizoram"},
	"uttar pradesh":     {"uttarakhand", "himachal pradesh", "haryana", "delhi", "rajasthan", "madhya pradesh", "chhattisgarh", "jharkhand", "bihar"},
	"uttarakhand":       {"himachal pradesh", "uttar pradesh", "haryana"},
	"west bengal":       {"bihar", "jharkhand", "odisha", "sikkim", "assam"},

	"andaman and nicobar islands":              {},
	"chandigarh":                               {"punjab", "haryana"},
	"dadra and nagar haveli and daman and diu": {"gujarat", "maharashtra"},
	"delhi":                                    {"haryana", "uttar pradesh"},
	"jammu and kashmir":                        {"ladakh", "himachal pradesh", "punjab"},
	"ladakh":                                   {"jammu and kashmir", "himachal pradesh"},
	"lakshadweep":                              {},
	"puducherry":                               {"tamil nadu"},
}

var metroCities = []string{
	"mumbai", "bengaluru", "chennai", "delhi", "hyderabad",
	"kolkata", "ahmedabad", "pune", "surat",
}

// specialZoneStates route every inbound shipment onto zone e lanes.
var specialZoneStates = []string{
	"jammu and kashmir", "ladakh", "arunachal pradesh", "assam", "manipur",
	"meghalaya", "mizoram", "nagaland", "sikkim", "tripura",
}

// ZoneResult carries the destination-side zone letter plus both resolved
// ends for display.
type ZoneResult struct {
	Zone        string
	Origin      models.ZoneDetails
	Destination models.ZoneDetails
}

// ZoneResolver classifies an origin/destination pincode pair into a zone.
// The policy table is static and not user-configurable.
type ZoneResolver struct {
	pincodes *PincodeDirectory
}

func NewZoneResolver(pincodes *PincodeDirectory) *ZoneResolver {
	return &ZoneResolver{pincodes: pincodes}
}

func (r *ZoneResolver) Resolve(originZip, destinationZip string) (*ZoneResult, error) {
	origin, ok := r.pincodes.Lookup(originZip)
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "unknown origin pincode: %s", originZip)
	}
	destination, ok := r.pincodes.Lookup(destinationZip)
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "unknown destination pincode: %s", destinationZip)
	}

	return &ZoneResult{
		Zone:        classifyZone(origin, destination),
		Origin:      models.ZoneDetails{City: origin.City, State: origin.State},
		Destination: models.ZoneDetails{City: destination.City, State: destination.State},
	}, nil
}

func classifyZone(origin, destination PincodeDetails) string {
	originCity := strings.ToLower(origin.City)
	destinationCity := strings.ToLower(destination.City)
	if originCity == "" || destinationCity == "" {
		return ZoneNational
	}
	if originCity == destinationCity {
		return ZoneLocal
	}

	originState := strings.ToLower(origin.State)
	destinationState := strings.ToLower(destination.State)
	if originState == "" || destinationState == "" {
		return ZoneNational
	}
	if originState == destinationState {
		return ZoneRegional
	}
	for _, neighbor := range neighborStates[originState] {
		if neighbor == destinationState {
			return ZoneRegional
		}
	}

	if containsString(metroCities, originCity) && containsString(metroCities, destinationCity) {
		return ZoneMetro
	}

	if containsString(specialZoneStates, destinationState) {
		return ZoneSpecial
	}

	return ZoneNational
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
