package types

// Column names of the city dataset header.
const (
	ColumnName                        = "Name"
	ColumnLatitude                    = "Latitude"
	ColumnLongitude                   = "Longitude"
	ColumnURL                         = "URL"
	ColumnRadius                      = "Radius"
	ColumnGreenSpacePercentage        = "GreenSpacePercentage"
	ColumnVegetationHealthValue       = "VegetationHealth_value"
	ColumnVegetationHealthLeft        = "VegetationHealth_left"
	ColumnVegetationHealthColor       = "VegetationHealth_color"
	ColumnGreenSpaceDistributionValue = "GreenSpaceDistribution_value"
	ColumnGreenSpaceDistributionLeft  = "GreenSpaceDistribution_left"
	ColumnGreenSpaceDistributionColor = "GreenSpaceDistribution_color"
)

// RawCityRecord is one dataset row keyed by header column.
// A column missing from the header or cut short in the row is absent from the map.
type RawCityRecord map[string]string

// Name returns the Name column, or "" when the row has none.
func (r RawCityRecord) Name() string {
	return r[ColumnName]
}

// CityRecord is the normalized shape handed to the page renderer.
// Empty fields are treated as undefined and left out of the JSON document.
type CityRecord struct {
	Name                       string `json:"name,omitempty" mapstructure:"name"`
	Latitude                   string `json:"latitude,omitempty" mapstructure:"latitude"`
	Longitude                  string `json:"longitude,omitempty" mapstructure:"longitude"`
	URL                        string `json:"url,omitempty" mapstructure:"url"`
	Radius                     string `json:"radius,omitempty" mapstructure:"radius"`
	GreenSpacePercentage       string `json:"greenSpacePercentage,omitempty" mapstructure:"greenSpacePercentage"`
	VegetationHealth           string `json:"vegetationHealth,omitempty" mapstructure:"vegetationHealth"`
	VegetationHealthLeft       string `json:"VegetationHealth_left,omitempty" mapstructure:"VegetationHealth_left"`
	VegetationIndicatorColor   string `json:"vegetationIndicatorColor,omitempty" mapstructure:"vegetationIndicatorColor"`
	GreenSpaceDistribution     string `json:"greenSpaceDistribution,omitempty" mapstructure:"greenSpaceDistribution"`
	GreenSpaceDistributionLeft string `json:"GreenSpaceDistribution_left,omitempty" mapstructure:"GreenSpaceDistribution_left"`
	DistributionIndicatorColor string `json:"distributionIndicatorColor,omitempty" mapstructure:"distributionIndicatorColor"`
}

// CityOverrides maps a slug to partial defaults applied before dataset values.
type CityOverrides map[string]CityRecord

// CityParam is one static path entry, i.e. a value for the {city} route parameter.
type CityParam struct {
	City string `json:"city"`
}

// CityParamsResponse lists every city page that can be rendered.
type CityParamsResponse struct {
	Cities []CityParam `json:"cities"`
}
