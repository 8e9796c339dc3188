package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/thoas/go-funk"

	api "github.com/crewup/crewup-api/api/v1"
)

// trades the marketplace recognizes, matched case-insensitively
var knownTrades = []string{
	"carpenter",
	"electrician",
	"plumber",
	"mason",
	"hvac technician",
	"roofer",
	"painter",
	"drywall installer",
	"welder",
	"equipment operator",
	"general laborer",
	"site supervisor",
	"project manager",
	"safety officer",
}

// tradeValidator backs the "trade" tag. Pointer fields are dereferenced by
// the validator before this runs; nil pointers are skipped via omitempty.
func tradeValidator(fl validator.FieldLevel) bool {
	needle := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return funk.ContainsString(knownTrades, needle)
}

// coordinateValidator backs the "coordinate" tag.
func coordinateValidator(fl validator.FieldLevel) bool {
	coord, ok := fl.Field().Interface().(api.Coordinate)
	if !ok {
		return false
	}

	return coord.Latitude >= -90 && coord.Latitude <= 90 &&
		coord.Longitude >= -180 && coord.Longitude <= 180
}
