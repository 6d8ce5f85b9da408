package cfg

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// defaultCountryCodes is the built-in market list, in processing order.
var defaultCountryCodes = []string{
	"US", "GB", "FR", "DE", "IT", "TR", "IN", "JP", "KR", "HK",
	"TW", "MY", "SG", "AU", "CA", "MX", "BR", "AR", "ZA",
}

type countriesFile struct {
	Countries []countryEntry `yaml:"countries"`
}

type countryEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// loadCountries returns the market list, either the built-in default or the
// contents of an override file. Order is preserved; it is the order markets
// are ingested in.
func loadCountries(path string) ([]Country, error) {
	if path == "" {
		return defaultCountries()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read countries file: %w", err)
	}

	var file countriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse countries file: %w", err)
	}

	if len(file.Countries) == 0 {
		return nil, fmt.Errorf("no countries defined in %s", path)
	}

	countries := make([]Country, 0, len(file.Countries))
	seen := make(map[string]bool, len(file.Countries))
	for _, entry := range file.Countries {
		name, err := regionName(entry.Code)
		if err != nil {
			return nil, err
		}
		if seen[entry.Code] {
			return nil, fmt.Errorf("duplicate country code %q in %s", entry.Code, path)
		}
		seen[entry.Code] = true

		if entry.Name != "" {
			name = entry.Name
		}
		countries = append(countries, Country{Code: entry.Code, Name: name})
	}

	return countries, nil
}

func defaultCountries() ([]Country, error) {
	countries := make([]Country, 0, len(defaultCountryCodes))
	for _, code := range defaultCountryCodes {
		name, err := regionName(code)
		if err != nil {
			return nil, err
		}
		countries = append(countries, Country{Code: code, Name: name})
	}
	return countries, nil
}

// regionName resolves an ISO 3166-1 alpha-2 code to its English display name.
func regionName(code string) (string, error) {
	region, err := language.ParseRegion(code)
	if err != nil {
		return "", fmt.Errorf("invalid country code %q: %w", code, err)
	}
	if name := display.English.Regions().Name(region); name != "" {
		return name, nil
	}
	return code, nil
}
