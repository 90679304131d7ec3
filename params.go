package upstage

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")

		switch name {
		case "-":
			return "-"
		case "":
			return field.Name
		default:
			return name
		}
	})

	// required_when=Field a b c requires the field whenever the sibling Field
	// holds one of the listed values.
	_ = v.RegisterValidation("required_when", func(fl validator.FieldLevel) bool {
		args := strings.Fields(fl.Param())
		if len(args) < 2 {
			return true
		}

		discriminant := reflect.Indirect(fl.Parent()).FieldByName(args[0])
		if !discriminant.IsValid() || !lo.Contains(args[1:], fmt.Sprint(discriminant.Interface())) {
			return true
		}

		return !fl.Field().IsZero()
	}, true)

	return v
}

// DecodeParams decodes raw node parameters into out, which must be a pointer
// to a struct already holding the parameter defaults. Values are coerced
// weakly, so "0.5" and 0.5 are both accepted for a float parameter.
func DecodeParams(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "could not create parameter decoder")
	}

	if err := decoder.Decode(raw); err != nil {
		return Validation(errors.Wrap(err, "could not decode node parameters"))
	}

	return ValidateParams(out)
}

// ValidateParams checks the validation rules declared on a parameter struct.
func ValidateParams(params any) error {
	if err := validate.Struct(params); err != nil {
		var verrs validator.ValidationErrors

		if errors.As(err, &verrs) {
			return Validationf("%s", strings.Join(lo.Map(verrs, func(fe validator.FieldError, _ int) string {
				return describeFieldError(fe)
			}), "; "))
		}

		return Validation(errors.Wrap(err, "could not validate node parameters"))
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	name := fe.Namespace()
	if _, rest, ok := strings.Cut(name, "."); ok {
		name = rest
	}

	switch fe.Tag() {
	case "required", "required_if", "required_when":
		return fmt.Sprintf("missing required parameter %q", name)
	case "oneof":
		return fmt.Sprintf("parameter %q must be one of [%s], got %v", name, fe.Param(), fe.Value())
	case "min", "gte":
		return fmt.Sprintf("parameter %q must be at least %s", name, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("parameter %q must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("invalid value for parameter %q", name)
	}
}

// ParseSchema accepts a JSON schema given either as a JSON string or as an
// already decoded value.
func ParseSchema(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, Validationf("invalid JSON schema provided")

	case string:
		parsed, ok := ParseJson(v)
		if !ok {
			return nil, Validationf("invalid JSON schema provided")
		}

		return parsed, nil

	default:
		return v, nil
	}
}

// ParseJson decodes a JSON document. It reports false when the input is not
// valid JSON.
func ParseJson(raw string) (any, bool) {
	if !gjson.Valid(raw) {
		return nil, false
	}

	return gjson.Parse(raw).Value(), true
}

// ParameterSource is implemented by both ExecuteFunctions and SupplyFunctions.
type ParameterSource interface {
	NodeParameters(itemIndex int) (map[string]any, error)
}

// ReadParams reads the parameters of an item on top of the given defaults.
// Defaults must not share pointers or slices with other values, since decoding
// writes through them.
func ReadParams[T any](src ParameterSource, itemIndex int, defaults T) (T, error) {
	raw, err := src.NodeParameters(itemIndex)
	if err != nil {
		return defaults, errors.Wrap(err, "could not read node parameters")
	}

	params := defaults

	if err := DecodeParams(raw, &params); err != nil {
		return defaults, err
	}

	return params, nil
}
