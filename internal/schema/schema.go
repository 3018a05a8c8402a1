// Package schema validates prediction requests before they reach a model.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// IrisInput is one prediction request: the four iris measurements in
// centimeters. Upper bounds are generous plausibility limits, roughly twice
// the dataset maxima.
type IrisInput struct {
	SepalLength float64 `json:"sepal_length" validate:"gte=0,lte=15"`
	SepalWidth  float64 `json:"sepal_width" validate:"gte=0,lte=10"`
	PetalLength float64 `json:"petal_length" validate:"gte=0,lte=15"`
	PetalWidth  float64 `json:"petal_width" validate:"gte=0,lte=10"`
}

// Features returns the measurements in the canonical iris feature order.
func (in *IrisInput) Features() []float64 {
	return []float64{in.SepalLength, in.SepalWidth, in.PetalLength, in.PetalWidth}
}

// ValidationError names the first offending field of a rejected request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

var requiredFields = []string{"sepal_length", "sepal_width", "petal_length", "petal_width"}

var validate = validator.New()

// jsonFieldNames maps struct field names back to their wire names for error
// reporting.
var jsonFieldNames = map[string]string{
	"SepalLength": "sepal_length",
	"SepalWidth":  "sepal_width",
	"PetalLength": "petal_length",
	"PetalWidth":  "petal_width",
}

// Parse checks a raw field map for presence and numeric type, then applies
// the range rules. Pure function: the input map is not modified.
func Parse(raw map[string]interface{}) (*IrisInput, error) {
	values := make(map[string]float64, len(requiredFields))
	for _, field := range requiredFields {
		v, ok := raw[field]
		if !ok {
			return nil, &ValidationError{Field: field, Reason: "required field is missing"}
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("value %v is not numeric", v)}
		}
		values[field] = f
	}

	in := &IrisInput{
		SepalLength: values["sepal_length"],
		SepalWidth:  values["sepal_width"],
		PetalLength: values["petal_length"],
		PetalWidth:  values["petal_width"],
	}
	if err := Check(in); err != nil {
		return nil, err
	}
	return in, nil
}

// Check applies the range rules to an already-typed input.
func Check(in *IrisInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldNames[fe.StructField()]
		if field == "" {
			field = fe.StructField()
		}
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("value %v fails rule %s=%s", fe.Value(), fe.Tag(), fe.Param()),
		}
	}
	return err
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
