package form

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrRejectedInput is returned when text is not a number the field accepts.
// The field keeps its previous value.
var ErrRejectedInput = errors.New("rejected input")

// Field identifies one of the numeric text fields
type Field string

const (
	FieldWidth      Field = "width"
	FieldHeight     Field = "height"
	FieldSlideCount Field = "slideCount"
	FieldDiscount   Field = "discountPercent"
)

// NumericSpec describes how a numeric widget accepts and steps its value
type NumericSpec struct {
	Min     float64
	Max     float64
	Step    float64
	Integer bool
}

var numericSpecs = map[Field]NumericSpec{
	FieldWidth:      {Min: 0, Max: 1000, Step: 0.1},
	FieldHeight:     {Min: 0, Max: 1000, Step: 0.1},
	FieldSlideCount: {Min: 0, Max: 1000, Step: 1, Integer: true},
	FieldDiscount:   {Min: 0, Max: 100, Step: 1},
}

// SpecFor returns the widget bounds of a field
func SpecFor(field Field) (NumericSpec, bool) {
	spec, ok := numericSpecs[field]
	return spec, ok
}

var (
	decimalPattern = regexp.MustCompile(`^-?\d*\.?\d*$`)
	integerPattern = regexp.MustCompile(`^-?\d+$`)
)

// Sanitize normalises raw text for a numeric field: comma becomes a dot and
// integer fields drop their fractional part. Only the format is checked here;
// sign and range are validation concerns.
func Sanitize(text string, spec NumericSpec) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	sanitized := strings.Replace(text, ",", ".", 1)

	if spec.Integer {
		if integerPattern.MatchString(sanitized) {
			return sanitized, nil
		}
		// "3.7" becomes "3" and "-0.5" becomes "0", truncated toward zero
		if !decimalPattern.MatchString(sanitized) {
			return "", ErrRejectedInput
		}
		value, err := strconv.ParseFloat(sanitized, 64)
		if errors.Is(err, strconv.ErrRange) {
			whole, _, _ := strings.Cut(sanitized, ".")
			return whole, nil
		}
		if err != nil {
			return "", ErrRejectedInput
		}
		value = math.Trunc(value)
		if value == 0 {
			value = 0 // drops the sign of -0
		}
		return strconv.FormatFloat(value, 'f', 0, 64), nil
	}

	if !decimalPattern.MatchString(sanitized) {
		return "", ErrRejectedInput
	}
	// "-" or "." alone are intermediate keystrokes, kept as typed
	return sanitized, nil
}

// Step moves the numeric value of text by delta steps, clamped to the field's
// bounds. Empty or unparsable text counts as 0.
func Step(text string, spec NumericSpec, delta int) string {
	current, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(text), ",", ".", 1), 64)
	if err != nil || math.IsNaN(current) {
		current = 0
	}

	next := current + float64(delta)*spec.Step
	if spec.Integer {
		next = math.Floor(next)
	} else {
		next = math.Round(next*100) / 100
	}
	next = math.Max(spec.Min, math.Min(spec.Max, next))

	if spec.Integer {
		return strconv.FormatInt(int64(next), 10)
	}
	return strconv.FormatFloat(next, 'f', -1, 64)
}
