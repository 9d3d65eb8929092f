package form

import "dressing-calculator/pricing"

var messages = map[pricing.ErrorKind]map[string]string{
	pricing.NonPositive: {
		pricing.FieldWidth:  "width must be greater than 0",
		pricing.FieldHeight: "height must be greater than 0",
	},
	pricing.NegativeCount: {
		pricing.FieldSlideCount: "slide count must be non-negative",
	},
	pricing.OutOfRange: {
		pricing.FieldWidth:           "width is too large",
		pricing.FieldHeight:          "height is too large",
		pricing.FieldSlideCount:      "slide count is too large",
		pricing.FieldDiscountPercent: "discount must be between 0 and 100",
	},
	pricing.UnknownOption: {
		pricing.FieldTransportZone: "unknown transport zone",
		pricing.FieldSlideType:     "unknown slide type",
	},
	pricing.EmptyField: {
		pricing.FieldWidth:      "width is required",
		pricing.FieldHeight:     "height is required",
		pricing.FieldSlideCount: "slide count is required",
	},
}

// Message returns the label shown next to a field for err
func Message(err *pricing.ValidationError) string {
	if err == nil {
		return ""
	}
	if msg, ok := messages[err.Kind][err.Field]; ok {
		return msg
	}
	return err.Error()
}

// ErrorMessages returns field → message for the state's displayable error
func (s *State) ErrorMessages() map[string]string {
	out := map[string]string{}
	if s.Status == StatusInvalid && s.Err != nil {
		out[s.Err.Field] = Message(s.Err)
	}
	return out
}
