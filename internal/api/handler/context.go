package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dateLayout is the wire format for birthday and other date form fields.
const dateLayout = "2006-01-02"

// formString returns the named form field when it was supplied, nil when
// absent. Presence matters for partial updates: an absent field must leave
// the stored value untouched.
func formString(c echo.Context, name string) *string {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	values, ok := params[name]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func formFloat(c echo.Context, name string) (*float64, error) {
	raw := formString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func formBool(c echo.Context, name string) (*bool, error) {
	raw := formString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func formDate(c echo.Context, name string) (*time.Time, error) {
	raw := formString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// pagination reads skip/limit query parameters with the API defaults.
func pagination(c echo.Context) (skip, limit int64) {
	skip, limit = 0, 10
	if v, err := strconv.ParseInt(c.QueryParam("skip"), 10, 64); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	return skip, limit
}
