package form

import (
	"errors"
	"net/url"
	"testing"

	"dressing-calculator/models"
	"dressing-calculator/pricing"
)

func TestFieldsFromRequest(t *testing.T) {
	engine, _ := pricing.NewEngine(nil)
	defaults := DefaultFields(engine.Tariff())
	off := false

	fields, err := FieldsFromRequest(models.CalculateRequest{
		Width:           "2,0",
		Height:          "2",
		HasChambranle:   &off,
		SlideType:       "Metabox",
		SlideCount:      "3",
		TransportZone:   "Djerba",
		DiscountPercent: "5",
	}, defaults)
	if err != nil {
		t.Fatalf("FieldsFromRequest() error = %v", err)
	}
	if fields.Width != "2.0" || fields.HasChambranle || !fields.HasFacade {
		t.Errorf("fields = %+v", fields)
	}
	if fields.SlideType != pricing.SlideMetabox || fields.TransportZone != "djerba" {
		t.Errorf("options = %v/%v", fields.SlideType, fields.TransportZone)
	}

	s := Evaluate(engine, fields)
	resp := s.Response("DT")
	if resp.Status != "calculated" || resp.Breakdown == nil {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Formatted["transportFee"] != "1 005,00 DT" {
		t.Errorf("formatted transport = %q", resp.Formatted["transportFee"])
	}
}

func TestFieldsFromRequest_Errors(t *testing.T) {
	defaults := DefaultFields(pricing.DefaultTariff())

	_, err := FieldsFromRequest(models.CalculateRequest{Width: "2", Height: "2", SlideCount: "1", SlideType: "blum"}, defaults)
	var verr *pricing.ValidationError
	if !errors.As(err, &verr) || verr.Field != pricing.FieldSlideType {
		t.Errorf("unknown slide type error = %v", err)
	}

	_, err = FieldsFromRequest(models.CalculateRequest{Width: "two", Height: "2", SlideCount: "1"}, defaults)
	if !errors.Is(err, ErrRejectedInput) {
		t.Errorf("text width error = %v, want ErrRejectedInput", err)
	}
}

func TestStateResponse_Invalid(t *testing.T) {
	engine, _ := pricing.NewEngine(nil)
	s := Evaluate(engine, Fields{Width: "2", Height: "2", SlideCount: "1", Discount: "150", TransportZone: "tunis"})
	resp := s.Response("DT")
	if resp.Status != "invalid" || resp.Breakdown != nil {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Errors[pricing.FieldDiscountPercent] == "" {
		t.Errorf("errors = %v, want discountPercent message", resp.Errors)
	}
}

func TestFieldsValuesRoundTrip(t *testing.T) {
	defaults := DefaultFields(pricing.DefaultTariff())
	in := Fields{
		Width:         "2.5",
		Height:        "2",
		HasChambranle: false,
		HasFacade:     true,
		SlideType:     pricing.SlideMetabox,
		SlideCount:    "4",
		TransportZone: "sousse",
		Discount:      "15",
	}

	out, err := FieldsFromRequest(RequestFromValues(in.Values()), defaults)
	if err != nil {
		t.Fatalf("FieldsFromRequest() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestRequestFromValues_MissingBooleans(t *testing.T) {
	req := RequestFromValues(url.Values{"width": {"2"}, "hasFacade": {"maybe"}})
	if req.HasChambranle != nil || req.HasFacade != nil {
		t.Errorf("booleans = %v/%v, want nil", req.HasChambranle, req.HasFacade)
	}
	if req.Width != "2" {
		t.Errorf("Width = %q", req.Width)
	}
}

func TestEvaluateRequest(t *testing.T) {
	engine, _ := pricing.NewEngine(nil)

	tests := []struct {
		name       string
		req        models.CalculateRequest
		wantStatus Status
		wantErr    bool
	}{
		{"calculated", models.CalculateRequest{Width: "2", Height: "2", SlideCount: "2", DiscountPercent: "10"}, StatusCalculated, false},
		{"incomplete", models.CalculateRequest{Width: "2", SlideCount: "2"}, StatusIncomplete, false},
		{"unknown slide type", models.CalculateRequest{Width: "2", Height: "2", SlideCount: "2", SlideType: "wood"}, StatusInvalid, false},
		{"unknown zone", models.CalculateRequest{Width: "2", Height: "2", SlideCount: "2", TransportZone: "mars"}, StatusInvalid, false},
		{"rejected text", models.CalculateRequest{Width: "abc", Height: "2", SlideCount: "2"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := EvaluateRequest(engine, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EvaluateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && s.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", s.Status, tt.wantStatus)
			}
		})
	}
}
