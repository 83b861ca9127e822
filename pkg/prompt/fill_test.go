package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/validation"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	textAreas []string
	info      []string

	inputPos  int
	selectPos int
	textPos   int

	inputConfigs  []InputConfig
	selectConfigs []SelectConfig
	textConfigs   []TextAreaConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.textConfigs = append(s.textConfigs, cfg)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func featureCard() component.Kind {
	return component.Kind{
		Name: "feature-card",
		Defaults: content.Model{
			"title":       "Advanced Analytics",
			"description": "Track usage trends across every workspace in real time.",
			"iconName":    "chart",
			"meta":        content.Model{"id": "x"},
		},
		Constraints: constraint.MustSet(map[string]constraint.Rule{
			"title":       {MaxLength: constraint.Int(30)},
			"description": {MinLength: constraint.Int(20), MaxLength: constraint.Int(120)},
			"iconName":    {Enum: []string{"chart", "lock", "globe", "users"}},
		}),
	}
}

func TestFill_AsksEveryField(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"An overly long title that breaks the thirty limit"},
		selectIdx: []int{2},
		textAreas: []string{"Short"},
	}

	got, err := Fill(context.Background(), driver, featureCard())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := content.Model{
		"title":       "An overly long title that breaks the thirty limit",
		"description": "Short",
		"iconName":    "globe",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}

	if len(driver.selectConfigs) != 1 || driver.selectConfigs[0].DefaultIndex != 0 {
		t.Fatalf("unexpected select config: %+v", driver.selectConfigs)
	}
	if driver.textConfigs[0].Help != "20 to 120 characters" {
		t.Fatalf("unexpected description help %q", driver.textConfigs[0].Help)
	}
	if driver.inputConfigs[0].Default != "Advanced Analytics" || driver.inputConfigs[0].Help != "at most 30 characters" {
		t.Fatalf("unexpected title prompt: %+v", driver.inputConfigs[0])
	}
}

func TestFill_PropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{}
	_, err := Fill(context.Background(), driver, featureCard())
	if err == nil {
		t.Fatalf("expected error when driver has no answers")
	}
}

func TestFill_RequiresDriver(t *testing.T) {
	if _, err := Fill(context.Background(), nil, featureCard()); err == nil {
		t.Fatalf("expected missing driver error")
	}
}

func TestReview_PrintsIssues(t *testing.T) {
	driver := &stubDriver{}
	issues := validation.New(validation.ModeDevelopment).Validate(
		content.Model{"iconName": "rocket", "description": "Track usage trends across every workspace."},
		featureCard().Constraints,
	)
	if err := Review(context.Background(), driver, issues); err != nil {
		t.Fatalf("review: %v", err)
	}
	if len(driver.info) != 1 {
		t.Fatalf("expected one message, got %v", driver.info)
	}
}
