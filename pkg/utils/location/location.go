package location

import (
	_ "embed"
	"encoding/json"
)

type Country struct {
	Name         string `json:"name"`
	ISO2         string `json:"iso2"`
	PhoneCode    string `json:"phonecode"`
	Currency     string `json:"currency"`
	CurrencyName string `json:"currency_name"`
}

// Region is a first-level subdivision: Portuguese district, Spanish province.
type Region struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	RegionCode  string `json:"region_code"`
}

//go:embed data/countries.json
var countriesData []byte

//go:embed data/regions.json
var regionsData []byte

var (
	countries []Country
	regions   []Region
)

// Init parses the bundled datasets.
func Init() error {
	if err := json.Unmarshal(countriesData, &countries); err != nil {
		return err
	}
	return json.Unmarshal(regionsData, &regions)
}

func GetCountries() []Country {
	return countries
}

// GetRegionsByCountry returns the subdivisions of a country code.
func GetRegionsByCountry(countryCode string) []Region {
	var out []Region
	for _, r := range regions {
		if r.CountryCode == countryCode {
			out = append(out, r)
		}
	}
	return out
}

// IsKnownCountry reports whether the code appears in the dataset.
func IsKnownCountry(countryCode string) bool {
	for _, c := range countries {
		if c.ISO2 == countryCode {
			return true
		}
	}
	return false
}
