// Package validation runs struct validation with a per-endpoint policy and
// reports failures as an ordered list of field errors.
package validation

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Policy int

const (
	// CollectAll reports every failing field.
	CollectAll Policy = iota
	// FailFast reports only the first failing field in declaration order.
	FailFast
)

const dateLayout = "2006-01-02"

var (
	simpleEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	tenDigits   = regexp.MustCompile(`^\d{10}$`)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	Errors []FieldError
}

func (r Result) OK() bool {
	return len(r.Errors) == 0
}

func (r Result) First() (FieldError, bool) {
	if len(r.Errors) == 0 {
		return FieldError{}, false
	}
	return r.Errors[0], true
}

// Add appends a failure unless the field already failed.
func (r *Result) Add(field, message string) {
	for _, e := range r.Errors {
		if e.Field == field {
			return
		}
	}
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// Messages maps "field.tag" or "field" to a user-facing message.
type Messages map[string]string

func (m Messages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return field + " is invalid"
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "simpleemail", func(fl validator.FieldLevel) bool {
		return simpleEmail.MatchString(fl.Field().String())
	})
	mustRegister(v, "digits10", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(fl.Field().String())
	})
	mustRegister(v, "numin", numIn)
	mustRegister(v, "dateafter", dateBound(func(d, bound time.Time) bool { return !d.Before(bound) }))
	mustRegister(v, "datebefore", dateBound(func(d, bound time.Time) bool { return !d.After(bound) }))

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// Check validates s and converts failures into field errors.
func (v *Validator) Check(s any, policy Policy, msgs Messages) Result {
	var res Result

	err := v.v.Struct(s)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Add("body", "invalid request")
		return res
	}

	for _, fe := range verrs {
		field := fe.Field()
		res.Add(field, msgs.lookup(field, fe.Tag()))
		if policy == FailFast {
			break
		}
	}

	return res
}

// numIn accepts a number that equals one of the space separated params.
func numIn(fl validator.FieldLevel) bool {
	var got float64
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		got = f.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		got = float64(f.Int())
	default:
		return false
	}

	for _, p := range strings.Fields(fl.Param()) {
		want, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}
		if math.Abs(got-want) < 1e-9 {
			return true
		}
	}
	return false
}

func dateBound(ok func(d, bound time.Time) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, isTime := fl.Field().Interface().(time.Time)
		if !isTime {
			return false
		}
		bound, err := time.Parse(dateLayout, fl.Param())
		if err != nil {
			return false
		}
		return ok(d, bound)
	}
}
