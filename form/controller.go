// Package form holds the editable state of the price calculator form. Every
// change re-validates the whole form and publishes a fresh State.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"dressing-calculator/pricing"
)

// Status of the last evaluation
type Status int

const (
	// StatusIncomplete means a required field is still empty; no errors are shown
	StatusIncomplete Status = iota
	// StatusInvalid means a value was rejected by validation
	StatusInvalid
	// StatusCalculated means Breakdown holds the current price
	StatusCalculated
)

func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusInvalid:
		return "invalid"
	case StatusCalculated:
		return "calculated"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Fields is the raw form content as typed by the user
type Fields struct {
	Width         string
	Height        string
	HasChambranle bool
	HasFacade     bool
	SlideType     pricing.SlideType
	SlideCount    string
	TransportZone pricing.ZoneID
	Discount      string
}

// DefaultFields returns the form as it opens: both options on, Scala slides,
// first delivery zone.
func DefaultFields(tariff *pricing.Tariff) Fields {
	return Fields{
		HasChambranle: true,
		HasFacade:     true,
		SlideType:     pricing.SlideScala,
		SlideCount:    "0",
		TransportZone: tariff.DefaultZone().ID,
		Discount:      "0",
	}
}

// State is one published evaluation. Published states are never mutated.
type State struct {
	Fields    Fields
	Status    Status
	Input     pricing.CalculationInput
	Breakdown *pricing.PriceBreakdown
	// Err is EmptyField while incomplete and the failing rule while invalid
	Err *pricing.ValidationError
}

// Calculated reports whether the state carries a price
func (s *State) Calculated() bool {
	return s.Status == StatusCalculated && s.Breakdown != nil
}

// FieldError returns the error to display next to field. Incomplete forms
// show none.
func (s *State) FieldError(field string) *pricing.ValidationError {
	if s.Status == StatusInvalid && s.Err != nil && s.Err.Field == field {
		return s.Err
	}
	return nil
}

// Evaluate runs the validation rules in order and prices the form when they
// all pass.
func Evaluate(engine *pricing.Engine, fields Fields) State {
	state := State{Fields: fields, Status: StatusIncomplete}

	width := strings.TrimSpace(fields.Width)
	height := strings.TrimSpace(fields.Height)
	slideCount := strings.TrimSpace(fields.SlideCount)
	switch {
	case width == "":
		state.Err = &pricing.ValidationError{Kind: pricing.EmptyField, Field: pricing.FieldWidth}
		return state
	case height == "":
		state.Err = &pricing.ValidationError{Kind: pricing.EmptyField, Field: pricing.FieldHeight}
		return state
	case slideCount == "":
		state.Err = &pricing.ValidationError{Kind: pricing.EmptyField, Field: pricing.FieldSlideCount}
		return state
	}

	// "-" or "." while typing: still incomplete. Values too long for their
	// type are invalid.
	widthValue, err := strconv.ParseFloat(width, 64)
	if err != nil {
		return state.rangeError(err, pricing.OutOfRange, pricing.FieldWidth)
	}
	heightValue, err := strconv.ParseFloat(height, 64)
	if err != nil {
		return state.rangeError(err, pricing.OutOfRange, pricing.FieldHeight)
	}
	slideCountValue, err := strconv.Atoi(slideCount)
	if err != nil {
		kind := pricing.OutOfRange
		if strings.HasPrefix(slideCount, "-") {
			kind = pricing.NegativeCount
		}
		return state.rangeError(err, kind, pricing.FieldSlideCount)
	}
	discountValue := 0.0
	if discount := strings.TrimSpace(fields.Discount); discount != "" {
		discountValue, err = strconv.ParseFloat(discount, 64)
		if err != nil {
			return state.rangeError(err, pricing.OutOfRange, pricing.FieldDiscountPercent)
		}
	}

	input := pricing.CalculationInput{
		Width:           widthValue,
		Height:          heightValue,
		HasChambranle:   fields.HasChambranle,
		HasFacade:       fields.HasFacade,
		SlideType:       fields.SlideType,
		SlideCount:      slideCountValue,
		TransportZone:   fields.TransportZone,
		DiscountPercent: discountValue,
	}
	state.Input = input

	breakdown, err := engine.Compute(input)
	if err != nil {
		state.Status = StatusInvalid
		errors.As(err, &state.Err)
		return state
	}

	state.Status = StatusCalculated
	state.Breakdown = &breakdown
	return state
}

// rangeError marks the state invalid when err is strconv.ErrRange. Any other
// parse error leaves it incomplete.
func (s State) rangeError(err error, kind pricing.ErrorKind, field string) State {
	if errors.Is(err, strconv.ErrRange) {
		s.Status = StatusInvalid
		s.Err = &pricing.ValidationError{Kind: kind, Field: field}
	}
	return s
}

// Controller owns one form. Setters are serialised; State can be read from
// any goroutine without blocking.
type Controller struct {
	engine *pricing.Engine

	mu        sync.Mutex
	fields    Fields
	observers map[int]func(*State)
	nextID    int

	current atomic.Pointer[State]
}

// NewController creates a controller with the default form content
func NewController(engine *pricing.Engine) *Controller {
	c := &Controller{
		engine:    engine,
		fields:    DefaultFields(engine.Tariff()),
		observers: make(map[int]func(*State)),
	}
	c.recompute()
	return c
}

// State returns the last published evaluation
func (c *Controller) State() *State {
	return c.current.Load()
}

// Subscribe registers fn to be called with every new state. fn runs on the
// writer's goroutine and must not call back into setters.
func (c *Controller) Subscribe(fn func(*State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// recompute must be called with mu held (or before the controller is shared)
func (c *Controller) recompute() {
	state := Evaluate(c.engine, c.fields)
	c.current.Store(&state)
	for _, fn := range c.observers {
		fn(&state)
	}
}

func (c *Controller) update(apply func(*Fields)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	apply(&c.fields)
	c.recompute()
}

func (c *Controller) setNumeric(field Field, text string) error {
	spec := numericSpecs[field]
	sanitized, err := Sanitize(text, spec)
	if err != nil {
		return fmt.Errorf("%s %q: %w", field, text, err)
	}
	c.update(func(f *Fields) {
		*f.text(field) = sanitized
	})
	return nil
}

func (f *Fields) text(field Field) *string {
	switch field {
	case FieldWidth:
		return &f.Width
	case FieldHeight:
		return &f.Height
	case FieldSlideCount:
		return &f.SlideCount
	case FieldDiscount:
		return &f.Discount
	}
	panic(fmt.Sprintf("form: unknown numeric field %q", field))
}

// SetWidth sets the width text in meters
func (c *Controller) SetWidth(text string) error { return c.setNumeric(FieldWidth, text) }

// SetHeight sets the height text in meters
func (c *Controller) SetHeight(text string) error { return c.setNumeric(FieldHeight, text) }

// SetSlideCount sets the number of slides
func (c *Controller) SetSlideCount(text string) error { return c.setNumeric(FieldSlideCount, text) }

// SetDiscount sets the discount percentage; empty means 0
func (c *Controller) SetDiscount(text string) error { return c.setNumeric(FieldDiscount, text) }

func (c *Controller) SetChambranle(on bool) {
	c.update(func(f *Fields) { f.HasChambranle = on })
}

func (c *Controller) SetFacade(on bool) {
	c.update(func(f *Fields) { f.HasFacade = on })
}

func (c *Controller) ToggleChambranle() {
	c.update(func(f *Fields) { f.HasChambranle = !f.HasChambranle })
}

func (c *Controller) ToggleFacade() {
	c.update(func(f *Fields) { f.HasFacade = !f.HasFacade })
}

func (c *Controller) SetSlideType(slideType pricing.SlideType) {
	c.update(func(f *Fields) { f.SlideType = slideType })
}

// SetTransportZone selects a delivery zone. Unknown ids are stored and
// reported by validation.
func (c *Controller) SetTransportZone(id pricing.ZoneID) {
	c.update(func(f *Fields) { f.TransportZone = id })
}

// Increment moves a numeric field up by one step, clamped to its bounds
func (c *Controller) Increment(field Field) error { return c.step(field, 1) }

// Decrement moves a numeric field down by one step, clamped to its bounds
func (c *Controller) Decrement(field Field) error { return c.step(field, -1) }

func (c *Controller) step(field Field, delta int) error {
	spec, ok := numericSpecs[field]
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	c.update(func(f *Fields) {
		p := f.text(field)
		*p = Step(*p, spec, delta)
	})
	return nil
}

// Load replaces every field at once and recomputes once. Numeric text is
// sanitised; the first rejected field aborts without changing state.
func (c *Controller) Load(fields Fields) error {
	for _, field := range []Field{FieldWidth, FieldHeight, FieldSlideCount, FieldDiscount} {
		p := fields.text(field)
		sanitized, err := Sanitize(*p, numericSpecs[field])
		if err != nil {
			return fmt.Errorf("%s %q: %w", field, *p, err)
		}
		*p = sanitized
	}
	c.update(func(f *Fields) { *f = fields })
	return nil
}
