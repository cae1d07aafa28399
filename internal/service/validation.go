package service

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"eventhub-be/internal/apperrors"
	"eventhub-be/internal/security"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or a nil func
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, err := parsePrice(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
		_, err := parseEventDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= security.MaxPasswordBytes
	})
	return v
}

// validationMessages maps a failed validator tag to the message returned to
// the client.
type validationMessages map[string]string

// check runs the validator over req and turns the first failure into a
// validation error. except lists top-level fields to skip.
func check(req interface{}, messages validationMessages, except ...string) error {
	var err error
	if len(except) > 0 {
		err = validate.StructExcept(req, except...)
	} else {
		err = validate.Struct(req)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Tag()]; ok {
			return apperrors.Validation(msg)
		}
		return apperrors.Validation(messages["required"])
	}
	return apperrors.Internal("validate request", err)
}

// plainNumber is a decimal with an optional exponent. It excludes the hex,
// underscore and Inf/NaN forms strconv also accepts.
var plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if !plainNumber.MatchString(raw) {
		return 0, strconv.ErrSyntax
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, strconv.ErrRange
	}
	return price, nil
}

var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseEventDate accepts RFC 3339 timestamps and the values produced by
// HTML date and datetime-local inputs. Results are in UTC.
func parseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
