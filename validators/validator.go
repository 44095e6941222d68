package validators

import (
	"errors"
	"incubator/middleware"
	achievementModels "incubator/models/achievement"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their json names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("datestr", func(fl validator.FieldLevel) bool {
		return datePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("requirement", func(fl validator.FieldLevel) bool {
		return achievementModels.RequirementType(fl.Field().String()).Valid()
	})
	return v
}

func ValidateStruct(s interface{}) map[string]string {
	if err := validate.Struct(s); err != nil {
		return FormatValidationErrors(err)
	}
	return nil
}

// FormatValidationErrors turns validator errors into a field -> message map
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["body"] = err.Error()
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = field + " is required!"
		case "max":
			errs[field] = field + " must be at most " + e.Param() + " characters long!"
		case "min":
			errs[field] = field + " must be at least " + e.Param() + " characters long!"
		case "oneof":
			errs[field] = field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ") + "!"
		case "gt":
			errs[field] = field + " must be greater than " + e.Param() + "!"
		case "gte", "lte":
			errs[field] = field + " is out of range!"
		case "requirement":
			errs[field] = field + " is not a known requirement type!"
		case "datestr":
			errs[field] = field + " must be a date (YYYY-MM-DD or ISO 8601)!"
		default:
			errs[field] = field + " is invalid!"
		}
	}
	return errs
}

// Body parses the JSON body into T, lets prepare normalize it, validates it and
// stores it in c.Locals under key. An empty body validates the zero value.
func Body[T any](key string, prepare func(c *fiber.Ctx, req *T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		if prepare != nil {
			prepare(c, reqData)
		}
		if errs := ValidateStruct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals(key, reqData)
		return c.Next()
	}
}

// Query is Body for query string parameters
func Query[T any](key string, prepare func(c *fiber.Ctx, req *T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		if prepare != nil {
			prepare(c, reqData)
		}
		if errs := ValidateStruct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals(key, reqData)
		return c.Next()
	}
}

// Trim trims surrounding whitespace from each string in place
func Trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
