package config

import (
	"strings"
	"testing"
)

func TestValidate_MaxEngineersBounds(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"zero", 0, true},
		{"negative", -1, true},
		{"one", 1, false},
		{"typical", 6, false},
		{"at cap", 50, false},
		{"over cap", 51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Planning.MaxEngineers = tt.value

			errs := cfg.Validate()
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidate_HeuristicRegexes(t *testing.T) {
	cfg := Default()
	cfg.Planning.Heuristics.FilePattern = `([unclosed`

	errs := cfg.Validate()
	if len(errs) == 0 {
		t.Fatal("Expected error for invalid file pattern")
	}
	if errs[0].Field != "planning.heuristics.file_pattern" {
		t.Errorf("Field = %s, want planning.heuristics.file_pattern", errs[0].Field)
	}

	cfg = Default()
	cfg.Planning.Heuristics.MultiFilePatterns = []string{`valid`, `*invalid`}

	errs = cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Field, "multi_file_patterns[1]") {
		t.Errorf("Field = %s, want multi_file_patterns[1]", errs[0].Field)
	}
}

func TestValidate_EmptyModelMapping(t *testing.T) {
	cfg := Default()
	cfg.Routing.Models.Medium = "  "

	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if errs[0].Field != "routing.models.medium" {
		t.Errorf("Field = %s, want routing.models.medium", errs[0].Field)
	}
}

func TestValidate_EmptyOverrideModel(t *testing.T) {
	cfg := Default()
	cfg.Routing.Overrides = map[string]string{"7": ""}

	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if errs[0].Field != "routing.overrides[7]" {
		t.Errorf("Field = %s, want routing.overrides[7]", errs[0].Field)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"

	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if errs[0].Field != "logging.level" {
		t.Errorf("Field = %s, want logging.level", errs[0].Field)
	}

	// Empty level is allowed; the logger defaults it to info.
	cfg.Logging.Level = ""
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Empty level should be valid, got %v", errs)
	}
}

func TestValidationErrors_Message(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Error() = %q, want aggregate header", msg)
	}
	if !strings.Contains(msg, "a: bad (got: 1)") {
		t.Errorf("Error() = %q, missing first error", msg)
	}

	single := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if single.Error() != "a: bad (got: 1)" {
		t.Errorf("single Error() = %q", single.Error())
	}
}
