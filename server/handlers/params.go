package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"ft-server/field"
	"ft-server/hexagg"
	"ft-server/models"
	"ft-server/util"

	"github.com/go-playground/validator/v10"
)

const (
	HOUR_QUERY_ARG       = "hour"
	DAY_QUERY_ARG        = "day"
	MINUTE_QUERY_ARG     = "minute"
	RESOLUTION_QUERY_ARG = "resolution"
	H3RES_QUERY_ARG      = "h3res"
	FORMAT_QUERY_ARG     = "format"
	LAT_QUERY_ARG        = "lat"
	LNG_QUERY_ARG        = "lng"
	RADIUS_QUERY_ARG     = "radius"
)

const (
	DEFAULT_HOUR      = 14
	DEFAULT_DAY       = 5
	DEFAULT_MINUTE    = 0
	DEFAULT_RADIUS_KM = 1.0
	FORMAT_GEOJSON    = "geojson"
)

// ParamError is an invalid query parameter, reported as 400.
type ParamError struct {
	Field   string
	Message string
}

func (e *ParamError) Error() string { return e.Message }

func isParamError(err error) bool {
	var pe *ParamError
	return errors.As(err, &pe)
}

// intArg reads name as an integer, falling back to def when absent.
func intArg(vals url.Values, name, label string, def int) (int, error) {
	s := strings.TrimSpace(vals.Get(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParamError{Field: name, Message: label + " must be an integer"}
	}
	return v, nil
}

func floatArg(vals url.Values, name, label string, def float64, required bool) (float64, error) {
	s := strings.TrimSpace(vals.Get(name))
	if s == "" {
		if required {
			return 0, &ParamError{Field: name, Message: label + " is required"}
		}
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParamError{Field: name, Message: label + " must be a number"}
	}
	return v, nil
}

func parseHour(vals url.Values) (int, error) {
	hour, err := intArg(vals, HOUR_QUERY_ARG, "Hour", DEFAULT_HOUR)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 {
		return 0, &ParamError{Field: HOUR_QUERY_ARG, Message: "Hour must be between 0 and 23"}
	}
	return hour, nil
}

func parseDay(vals url.Values) (int, error) {
	day, err := intArg(vals, DAY_QUERY_ARG, "Day", DEFAULT_DAY)
	if err != nil {
		return 0, err
	}
	if day < 0 || day > 6 {
		return 0, &ParamError{Field: DAY_QUERY_ARG, Message: "Day must be between 0 (Sunday) and 6 (Saturday)"}
	}
	return day, nil
}

func parseMinute(vals url.Values) (int, error) {
	minute, err := intArg(vals, MINUTE_QUERY_ARG, "Minute", DEFAULT_MINUTE)
	if err != nil {
		return 0, err
	}
	if minute < 0 || minute > 59 {
		return 0, &ParamError{Field: MINUTE_QUERY_ARG, Message: "Minute must be between 0 and 59"}
	}
	return minute, nil
}

func parseHourDay(vals url.Values) (hour, day int, err error) {
	if hour, err = parseHour(vals); err != nil {
		return
	}
	day, err = parseDay(vals)
	return
}

// parseDensityQuery reads hour, day, minute and resolution. Unknown
// resolutions resolve to the default tier.
func parseDensityQuery(vals url.Values) (models.DensityQuery, error) {
	var q models.DensityQuery
	var err error
	if q.Hour, q.Day, err = parseHourDay(vals); err != nil {
		return q, err
	}
	if q.Minute, err = parseMinute(vals); err != nil {
		return q, err
	}
	_, q.Resolution = field.TierStep(vals.Get(RESOLUTION_QUERY_ARG))
	return q, validationError(util.ValidateStruct(q))
}

func parseCellResolution(vals url.Values, name string) (int, error) {
	res, err := intArg(vals, name, "Resolution", hexagg.DEFAULT_RESOLUTION)
	if err != nil {
		return 0, err
	}
	if hexagg.ValidateResolution(res) != nil {
		return 0, &ParamError{
			Field:   name,
			Message: fmt.Sprintf("Resolution must be between %d and %d", hexagg.MIN_RESOLUTION, hexagg.MAX_RESOLUTION),
		}
	}
	return res, nil
}

// nearbyQuery is the validated form of /pois/nearby.
type nearbyQuery struct {
	Lat      float64 `validate:"min=-90,max=90"`
	Lng      float64 `validate:"min=-180,max=180"`
	RadiusKm float64 `validate:"gt=0,max=50"`
}

func parseNearbyQuery(vals url.Values) (nearbyQuery, error) {
	var q nearbyQuery
	var err error
	if q.Lat, err = floatArg(vals, LAT_QUERY_ARG, "Lat", 0, true); err != nil {
		return q, err
	}
	if q.Lng, err = floatArg(vals, LNG_QUERY_ARG, "Lng", 0, true); err != nil {
		return q, err
	}
	if q.RadiusKm, err = floatArg(vals, RADIUS_QUERY_ARG, "Radius", DEFAULT_RADIUS_KM, false); err != nil {
		return q, err
	}
	return q, validationError(util.ValidateStruct(q))
}

// validationError turns the first failed validator rule into a ParamError.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ParamError{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("%s is out of range", fe.Field()),
		}
	}
	return err
}
