package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/licitops/secop-scout/internal/secop"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func generateClassifierTenders() []*secop.Tender {
	return []*secop.Tender{
		{
			ID:           "CO1.NTC.100",
			Description:  "Servicios de apoyo a la gestión documental",
			ContractType: "Prestación de servicios",
			Phase:        "Presentación de oferta",
			Status:       "Publicado",
		},
		{
			ID:           "CO1.NTC.101",
			Description:  "Construcción de placa huella",
			ContractType: "Obra",
			Phase:        "Celebrado",
			Status:       "Celebrado",
		},
	}
}

func TestClassify(t *testing.T) {
	stub := &stubGenerator{response: `[
		{"id": "CO1.NTC.100", "corporate": false, "actionable": true, "advice": "Skip this one."},
		{"id": "CO1.NTC.101", "corporate": true, "actionable": false}
	]`}
	classifier := NewClassifier(stub, zap.NewNop(), 0)

	hints, err := classifier.Classify(context.Background(), generateClassifierTenders())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hints) != 2 {
		t.Fatalf("got %d hints, want 2", len(hints))
	}

	first := hints["CO1.NTC.100"]
	if first.Corporate == nil || *first.Corporate {
		t.Error("corporate=false not carried through")
	}
	if first.Actionable == nil || !*first.Actionable {
		t.Error("actionable=true not carried through")
	}
	if first.Advice == nil || *first.Advice != "Skip this one." {
		t.Error("advice not carried through")
	}

	second := hints["CO1.NTC.101"]
	if second.Advice != nil {
		t.Error("absent advice must stay nil")
	}
}

func TestClassifyPromptContainsTenders(t *testing.T) {
	stub := &stubGenerator{response: `[]`}
	classifier := NewClassifier(stub, zap.NewNop(), 0)

	if _, err := classifier.Classify(context.Background(), generateClassifierTenders()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(stub.prompts))
	}
	prompt := stub.prompts[0]
	if !strings.Contains(prompt, "CO1.NTC.100") || !strings.Contains(prompt, "CO1.NTC.101") {
		t.Error("tender ids missing from the prompt")
	}
	if strings.Contains(prompt, "{{TENDERS_JSON}}") {
		t.Error("template placeholder not substituted")
	}
}

func TestClassifyEmptyBatch(t *testing.T) {
	stub := &stubGenerator{}
	classifier := NewClassifier(stub, zap.NewNop(), 0)

	hints, err := classifier.Classify(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hints) != 0 {
		t.Fatal("expected no hints")
	}
	if len(stub.prompts) != 0 {
		t.Fatal("empty batches must not hit the model")
	}
}

func TestClassifyGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	classifier := NewClassifier(stub, zap.NewNop(), 0)

	if _, err := classifier.Classify(context.Background(), generateClassifierTenders()); err == nil {
		t.Fatal("expected the generator error to propagate")
	}
}

func TestParseResponseFenced(t *testing.T) {
	raw := "```json\n[{\"id\": \"CO1.NTC.1\", \"corporate\": true}]\n```"

	hints, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hint := hints["CO1.NTC.1"]
	if hint == nil || hint.Corporate == nil || !*hint.Corporate {
		t.Error("fenced response not parsed")
	}
}

func TestParseResponseSkipsRowsWithoutID(t *testing.T) {
	raw := `[{"corporate": true}, {"id": "CO1.NTC.2", "actionable": "no"}]`

	hints, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hints) != 1 {
		t.Fatalf("got %d hints, want the id-less row dropped", len(hints))
	}
	hint := hints["CO1.NTC.2"]
	if hint.Actionable == nil || *hint.Actionable {
		t.Error(`string "no" should coerce to false`)
	}
}

func TestParseResponseGarbage(t *testing.T) {
	if _, err := parseResponse("I cannot classify these tenders."); err == nil {
		t.Fatal("expected an error for non-JSON output")
	}
}

func TestCoerceOptionalBool(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want *bool
	}{
		{"bool true", true, boolPtr(true)},
		{"bool false", false, boolPtr(false)},
		{"string yes", "yes", boolPtr(true)},
		{"string False padded", "  False ", boolPtr(false)},
		{"unparseable string", "maybe", nil},
		{"number", 1.0, nil},
		{"nil", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := coerceOptionalBool(tc.in)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Errorf("got %v, want %v", *got, *tc.want)
			}
		})
	}
}

func boolPtr(v bool) *bool { return &v }
