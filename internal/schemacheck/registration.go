// Package schemacheck validates a sample registration payload and reports
// every failing field at once.
package schemacheck

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/validation"
)

const defaultType = "admin"

// Registration is the checked payload. Unknown input fields are dropped.
type Registration struct {
	Name     string     `json:"name" validate:"required,min=3,max=35"`
	Email    string     `json:"email" validate:"required,simpleemail"`
	Password string     `json:"password" validate:"required,min=8"`
	Phone    string     `json:"phone" validate:"required,digits10"`
	Address  *string    `json:"address,omitempty"`
	Age      *float64   `json:"age,omitempty"`
	Type     string     `json:"type" validate:"oneof=admin user"`
	Rating   *float64   `json:"rating" validate:"required,numin=1 2 3 4 5"`
	Date     *time.Time `json:"date" validate:"required,dateafter=2025-01-21,datebefore=2025-01-25"`
}

var fieldOrder = []string{"name", "email", "password", "phone", "address", "age", "type", "rating", "date"}

var messages = validation.Messages{
	"name.required":     "name is required",
	"name.min":          "minimum length of 3 is required",
	"name.max":          "maximum of 35 is possible",
	"email.required":    "email is required",
	"email.simpleemail": "Invalid email",
	"password.required": "password is required",
	"password.min":      "minimum length of 8 is needed",
	"phone.required":    "Phone number is required",
	"phone.digits10":    "Phone number must be exactly 10 digits",
	"type":              "It must be either 'admin' or 'user'",
	"rating.required":   "rating is required",
	"rating.numin":      "rating must be of 1,2,3,4 or 5",
	"date.required":     "Date is required",
	"date.dateafter":    "Date must be after 2025-01-21",
	"date.datebefore":   "Date must be before 2025-01-25",
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Check coerces raw into a Registration and validates it. Values of the
// wrong type are reported as type errors instead of being validated.
func Check(v *validation.Validator, raw map[string]any) (Registration, validation.Result) {
	var (
		reg      Registration
		typeErrs = map[string]string{}
	)

	reg.Name = coerceString(raw, "name", typeErrs)
	reg.Email = coerceString(raw, "email", typeErrs)
	reg.Password = coerceString(raw, "password", typeErrs)
	reg.Phone = coerceString(raw, "phone", typeErrs)
	if _, ok := present(raw, "address"); ok {
		addr := coerceString(raw, "address", typeErrs)
		reg.Address = &addr
	}
	reg.Age = coerceNumber(raw, "age", typeErrs)
	reg.Type = defaultType
	if _, ok := present(raw, "type"); ok {
		reg.Type = coerceString(raw, "type", typeErrs)
	}
	reg.Rating = coerceNumber(raw, "rating", typeErrs)
	reg.Date = coerceDate(raw, "date", typeErrs)

	checked := v.Check(&reg, validation.CollectAll, messages)

	var res validation.Result
	for _, field := range fieldOrder {
		if msg, ok := typeErrs[field]; ok {
			res.Add(field, msg)
			continue
		}
		for _, fe := range checked.Errors {
			if fe.Field == field {
				res.Add(fe.Field, fe.Message)
			}
		}
	}

	return reg, res
}

// present treats null like a missing key.
func present(raw map[string]any, key string) (any, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func typeError(field, kind string) string {
	return field + " must be a `" + kind + "` type"
}

func coerceString(raw map[string]any, field string, errs map[string]string) string {
	v, ok := present(raw, field)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	errs[field] = typeError(field, "string")
	return ""
}

func coerceNumber(raw map[string]any, field string, errs map[string]string) *float64 {
	v, ok := present(raw, field)
	if !ok {
		return nil
	}
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			errs[field] = typeError(field, "number")
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			errs[field] = typeError(field, "number")
			return nil
		}
		n = parsed
	default:
		errs[field] = typeError(field, "number")
		return nil
	}
	return &n
}

func coerceDate(raw map[string]any, field string, errs map[string]string) *time.Time {
	v, ok := present(raw, field)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				d = d.UTC()
				return &d
			}
		}
	case float64:
		// milliseconds since the epoch
		d := time.UnixMilli(int64(t)).UTC()
		return &d
	}
	errs[field] = typeError(field, "date")
	return nil
}

// decodeObject accepts only a JSON object body.
func decodeObject(body []byte) (map[string]any, bool) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, false
	}
	return raw, true
}

func knownField(name string) bool {
	return slices.Contains(fieldOrder, name)
}
