package secop

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const (
	TenderIDField       = "ID"
	TenderEntityIDField = "EntityID"
)

// Link is the process URL as published by the feed. The source is not
// consistent: sometimes the field is a bare string, sometimes an object with
// a nested "url" key. Both shapes are normalized here, at the ingestion
// boundary, so the rest of the code only ever sees a plain string.
type Link string

func (l *Link) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*l = Link(plain)
		return nil
	}

	var structured struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return fmt.Errorf("link field has unsupported shape: %w", err)
	}
	*l = Link(structured.URL)
	return nil
}

type Tenders struct {
	Items []*Tender
}

// Tender is one procurement process from the SECOP II open data feed.
// JSON tags follow the dataset column names on datos.gov.co.
type Tender struct {
	ID           string  `json:"id_del_proceso,omitempty"`
	Name         string  `json:"nombre_del_procedimiento,omitempty"`
	Description  string  `json:"descripci_n_del_procedimiento,omitempty"`
	Budget       float64 `json:"precio_base,omitempty"`
	ContractType string  `json:"tipo_de_contrato,omitempty"`
	Modality     string  `json:"modalidad_de_contratacion,omitempty"`
	Phase        string  `json:"fase,omitempty"`
	Status       string  `json:"estado_del_procedimiento,omitempty"`
	Entity       string  `json:"entidad,omitempty"`
	EntityID     string  `json:"nit_entidad,omitempty"`
	Department   string  `json:"departamento_entidad,omitempty"`
	City         string  `json:"ciudad_entidad,omitempty"`
	MainCategory string  `json:"codigo_principal_de_categoria,omitempty"`
	URL          Link    `json:"urlproceso,omitempty"`
	PublishedAt  string  `json:"fecha_de_publicacion,omitempty"`
}

// Location returns the city when present, falling back to the department.
func (t *Tender) Location() string {
	if t.City != "" {
		return t.City
	}
	return t.Department
}

func (t *Tender) GetStringField(name string) string {
	switch name {
	case TenderIDField:
		return t.ID
	case TenderEntityIDField:
		return t.EntityID

	default:
		return ""
	}
}

func (t *Tenders) Len() int {
	return len(t.Items)
}

func (t *Tenders) FindByID(id string) *Tender {
	for _, tender := range t.Items {
		if tender.ID == id {
			return tender
		}
	}
	return nil
}

// Exclude removes tenders from the list by matching the named field against targets.
func (t *Tenders) Exclude(name string, targets []string) []string {
	var excluded []string
	for _, target := range targets {
		for idx, tender := range t.Items {
			if tender.GetStringField(name) == target {
				t.RemoveByIndex(idx)
				excluded = append(excluded, tender.ID)
				break
			}
		}
	}
	return excluded
}

// RemoveByIndex removes a tender from the list by index. Do not preserve order.
func (t *Tenders) RemoveByIndex(idx int) {
	t.Items[idx] = t.Items[len(t.Items)-1]
	t.Items = t.Items[:len(t.Items)-1]
}

func (t *Tenders) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "tenders_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByEntity groups a short summary of every tender under its contracting entity.
func (t *Tenders) ReportByEntity() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, tender := range t.Items {
		key := fmt.Sprintf("%s (%s)", tender.Entity, tender.EntityID)
		report[key] = append(report[key], map[string]string{
			"name":     tender.Name,
			"url":      string(tender.URL),
			"location": tender.Location(),
			"budget":   fmt.Sprintf("%.0f COP", tender.Budget),
			"type":     tender.ContractType,
			"phase":    tender.Phase,
			"status":   tender.Status,
		})
	}
	return report
}

type SeenTenders struct {
	Items []*SeenTender
}

// SeenTender marks a tender the operator already reviewed in a previous run.
type SeenTender struct {
	ID       string
	URL      string
	Entity   string
	MarkedAt time.Time
}

func (t *Tenders) ToSeen() *SeenTenders {
	seen := &SeenTenders{}
	for _, tender := range t.Items {
		seen.Items = append(seen.Items, &SeenTender{
			ID:       tender.ID,
			URL:      string(tender.URL),
			Entity:   tender.Entity,
			MarkedAt: time.Now().UTC(),
		})
	}
	return seen
}

func GetSeenTendersFromFile(path string) (*SeenTenders, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &SeenTenders{}, nil
	}

	var seen SeenTenders
	if err := json.NewDecoder(file).Decode(&seen); err != nil {
		return nil, err
	}
	return &seen, nil
}

func (s *SeenTenders) Append(other *SeenTenders) {
	s.Items = append(s.Items, other.Items...)
}

func (s *SeenTenders) TenderIDs() []string {
	ids := make([]string, 0)
	for _, tender := range s.Items {
		ids = append(ids, tender.ID)
	}
	return ids
}

func (s *SeenTenders) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return err
	}
	return nil
}
