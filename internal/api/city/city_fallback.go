package city

import "github.com/FACorreiaa/green-city-pages/internal/types"

// fallbackSlugs lists the fallback cities in static path order.
var fallbackSlugs = []string{"new-york-city", "tokyo", "sydney"}

// fallbackCities is served only when the dataset is missing, unreadable or empty.
var fallbackCities = map[string]types.CityRecord{
	"new-york-city": {
		Name:                       "New York City",
		Latitude:                   "40.71427",
		Longitude:                  "-74.00597",
		URL:                        "https://hugsi.green/cities/New_York_City",
		Radius:                     "100",
		GreenSpacePercentage:       "0",
		VegetationHealth:           "0",
		VegetationHealthLeft:       "0",
		VegetationIndicatorColor:   "#FDBA74",
		GreenSpaceDistribution:     "0",
		GreenSpaceDistributionLeft: "0",
		DistributionIndicatorColor: "#b9c3ab",
	},
	"tokyo": {
		Name:                       "Tokyo",
		Latitude:                   "35.6895",
		Longitude:                  "139.69171",
		URL:                        "https://hugsi.green/cities/Tokyo",
		Radius:                     "100",
		GreenSpacePercentage:       "7.5",
		VegetationHealth:           "0.58",
		VegetationHealthLeft:       "154",
		VegetationIndicatorColor:   "#d7bd51",
		GreenSpaceDistribution:     "0.42",
		GreenSpaceDistributionLeft: "13",
		DistributionIndicatorColor: "#bec1b7",
	},
	"sydney": {
		Name:                       "Sydney",
		Latitude:                   "-33.865143",
		Longitude:                  "151.2099",
		URL:                        "https://hugsi.green/cities/Sydney",
		Radius:                     "100",
		GreenSpacePercentage:       "46",
		VegetationHealth:           "0.81",
		VegetationHealthLeft:       "160",
		VegetationIndicatorColor:   "#d1bd4e",
		GreenSpaceDistribution:     "0.75",
		GreenSpaceDistributionLeft: "85.8",
		DistributionIndicatorColor: "#9fc26b",
	},
}

// columnFields pairs each dataset column with the record field it fills.
var columnFields = []struct {
	column string
	field  func(*types.CityRecord) *string
}{
	{types.ColumnName, func(c *types.CityRecord) *string { return &c.Name }},
	{types.ColumnLatitude, func(c *types.CityRecord) *string { return &c.Latitude }},
	{types.ColumnLongitude, func(c *types.CityRecord) *string { return &c.Longitude }},
	{types.ColumnURL, func(c *types.CityRecord) *string { return &c.URL }},
	{types.ColumnRadius, func(c *types.CityRecord) *string { return &c.Radius }},
	{types.ColumnGreenSpacePercentage, func(c *types.CityRecord) *string { return &c.GreenSpacePercentage }},
	{types.ColumnVegetationHealthValue, func(c *types.CityRecord) *string { return &c.VegetationHealth }},
	{types.ColumnVegetationHealthLeft, func(c *types.CityRecord) *string { return &c.VegetationHealthLeft }},
	{types.ColumnVegetationHealthColor, func(c *types.CityRecord) *string { return &c.VegetationIndicatorColor }},
	{types.ColumnGreenSpaceDistributionValue, func(c *types.CityRecord) *string { return &c.GreenSpaceDistribution }},
	{types.ColumnGreenSpaceDistributionLeft, func(c *types.CityRecord) *string { return &c.GreenSpaceDistributionLeft }},
	{types.ColumnGreenSpaceDistributionColor, func(c *types.CityRecord) *string { return &c.DistributionIndicatorColor }},
}

// formatCityRecord starts from the override defaults and copies every column
// present in raw on top, so dataset values always win.
func formatCityRecord(raw types.RawCityRecord, defaults types.CityRecord) *types.CityRecord {
	record := defaults
	for _, cf := range columnFields {
		if v, ok := raw[cf.column]; ok {
			*cf.field(&record) = v
		}
	}
	return &record
}
