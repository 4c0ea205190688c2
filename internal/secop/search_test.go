package secop

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	return New(context.Background(), zap.NewNop(), "")
}

func TestBuildParams(t *testing.T) {
	params := &SearchParams{
		Text:       "interventoría",
		Department: "Antioquia",
		Phases:     []string{"Presentación de oferta", "Seleccionado"},
		Category:   "V1.80111600",
		OrderBy:    "fecha_de_publicacion DESC",
		Limit:      500,
	}

	q := buildParams(params)

	if got := q.Get("$q"); got != "interventoría" {
		t.Errorf("$q = %q", got)
	}
	if got := q.Get("departamento_entidad"); got != "Antioquia" {
		t.Errorf("departamento_entidad = %q", got)
	}
	if got := q["fase"]; len(got) != 2 {
		t.Errorf("fase = %v, want both phases", got)
	}
	if got := q.Get("$order"); got != "fecha_de_publicacion DESC" {
		t.Errorf("$order = %q", got)
	}
	if got := q.Get("$limit"); got != "500" {
		t.Errorf("$limit = %q", got)
	}

	// Empty and zero-valued fields stay out of the query.
	if q.Has("entidad") || q.Has("ciudad_entidad") || q.Has("tipo_de_contrato") {
		t.Errorf("empty fields leaked into the query: %v", q)
	}
}

func TestBuildParamsEmpty(t *testing.T) {
	q := buildParams(&SearchParams{})
	if len(q) != 0 {
		t.Errorf("expected no params, got %v", q)
	}
}

func TestDecodeTenders(t *testing.T) {
	client := newTestClient(t)

	items := []Item{
		{
			"id_del_proceso":                "CO1.NTC.2000",
			"descripci_n_del_procedimiento": "Obras de mantenimiento vial",
			// The feed publishes amounts as strings.
			"precio_base": "120000000",
			"fase":        "Presentación de oferta",
			"urlproceso":  "https://community.secop.gov.co/Public/Tendering/2000",
		},
		{
			"id_del_proceso": "CO1.NTC.2001",
			"urlproceso":     map[string]any{"url": "https://community.secop.gov.co/Public/Tendering/2001"},
		},
	}

	tenders := client.decodeTenders(items)

	if tenders.Len() != 2 {
		t.Fatalf("got %d tenders, want 2", tenders.Len())
	}

	first := tenders.Items[0]
	if first.ID != "CO1.NTC.2000" {
		t.Errorf("ID = %q", first.ID)
	}
	if first.Budget != 120_000_000 {
		t.Errorf("Budget = %v, want numeric coercion from string", first.Budget)
	}
	if first.URL != "https://community.secop.gov.co/Public/Tendering/2000" {
		t.Errorf("URL = %q", first.URL)
	}

	second := tenders.Items[1]
	if second.URL != "https://community.secop.gov.co/Public/Tendering/2001" {
		t.Errorf("nested url not flattened: %q", second.URL)
	}
}

func TestDecodeTendersSkipsBadItems(t *testing.T) {
	client := newTestClient(t)

	items := []Item{
		{"id_del_proceso": "CO1.NTC.3000"},
		// precio_base cannot be coerced to a number.
		{"id_del_proceso": "CO1.NTC.3001", "precio_base": "no disponible"},
	}

	tenders := client.decodeTenders(items)

	if tenders.Len() != 1 {
		t.Fatalf("got %d tenders, want the bad row skipped", tenders.Len())
	}
	if tenders.Items[0].ID != "CO1.NTC.3000" {
		t.Errorf("wrong survivor: %q", tenders.Items[0].ID)
	}
}

func TestLinkHook(t *testing.T) {
	cases := []struct {
		name string
		data any
		want Link
	}{
		{"string", "https://example.test", "https://example.test"},
		{"map with url", map[string]any{"url": "https://example.test/2"}, "https://example.test/2"},
		{"map without url", map[string]any{"href": "x"}, ""},
		{"unexpected type", 42, ""},
	}

	linkType := reflect.TypeOf(Link(""))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := linkHook(nil, linkType, tc.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
