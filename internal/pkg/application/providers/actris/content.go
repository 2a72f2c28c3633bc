package actris

import (
	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/content"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/vocabulary"
	"github.com/rs/zerolog"
)

// fileTable maps the ECV taxonomy to the EBAS component names found as
// variable attributes in the underlying data files. This is a separate
// vocabulary from the catalog one: catalog records and data files use
// different naming schemes for the same quantities.
var fileTable = vocabulary.Table{
	{ECV: "Aerosol Optical Properties", Variables: []string{
		"aerosol_light_backscattering_coefficient",
		"aerosol_light_scattering_coefficient",
		"aerosol_absorption_coefficient",
		"aerosol_optical_depth",
	}},
	{ECV: "Aerosol Chemical Properties", Variables: []string{
		"elemental_carbon",
		"organic_carbon",
	}},
	{ECV: "Aerosol Physical Properties", Variables: []string{
		"particle_number_concentration",
		"cloud_condensation_nuclei_number_concentration",
		"particle_number_size_distribution",
		"cloud_condensation_nuclei_number_size_distribution",
	}},
	{ECV: "NO2", Variables: []string{
		"nitrogen_dioxide",
	}},
}

// staticParameters are geophysical context channels present in most
// EBAS files; they never count as climate content.
var staticParameters = []string{
	"latitude",
	"longitude",
	"air_pressure",
	"barometric_altitude",
	"pressure",
	"relative_humidity",
	"temperature",
}

// excludedNamePatterns mark derived statistics channels by naming
// convention: uncertainties, percentiles, detection limits and
// size distribution aggregates.
var excludedNamePatterns = []string{
	"uncertainty",
	"prec1587",
	"perc8413",
	"stddev",
	"min",
	"max",
	"ExpUnc2s",
	"det.lim.",
	"precision",
	"size_distribution",
	"coefficient_amean_",
}

// ContentFilter returns the content filter tuning for EBAS formatted
// ACTRIS data files.
func ContentFilter(logger zerolog.Logger) content.FilterConfig {
	return content.FilterConfig{
		Vocabulary:           vocabulary.New(fileTable, vocabulary.MatchExact, logger),
		ComponentAttribute:   "ebas_component",
		StatisticsAttribute:  "ebas_statistics",
		StaticParameters:     staticParameters,
		ExcludedNamePatterns: excludedNamePatterns,
		TimeDimension:        "time",
	}
}
