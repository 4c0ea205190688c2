package matching

import "strings"

// Vocabulary holds the fixed label sets the classification rules run against.
// Defaults follow the SECOP II labels; every set can be overridden from the
// configuration file so tuning does not require a code change.
type Vocabulary struct {
	// CorporateTypes lists contract-type labels that are always corporate,
	// regardless of the process description.
	CorporateTypes []string `mapstructure:"corporate-types"`
	// PersonalServicePhrases mark a process as a personal-services engagement
	// when any of them appears in the description.
	PersonalServicePhrases []string `mapstructure:"personal-service-phrases"`
	// ClosedPhases and ClosedStatuses are checked independently. The same
	// label may appear in both sets; the feed itself is redundant here and
	// both checks are kept as observed.
	ClosedPhases   []string `mapstructure:"closed-phases"`
	ClosedStatuses []string `mapstructure:"closed-statuses"`
	// AcceptingOffersPhase is the single phase during which offers can be
	// submitted.
	AcceptingOffersPhase string `mapstructure:"accepting-offers-phase"`
}

func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		CorporateTypes: []string{
			"Obra",
			"Suministros",
			"Compraventa",
			"Consultoría",
			"Interventoría",
			"Concesión",
			"Arrendamiento",
		},
		PersonalServicePhrases: []string{
			"apoyo a la gestión",
			"persona natural",
			"servicios personales",
			"auxiliar administrativo",
			"servicios profesionales de apoyo",
		},
		ClosedPhases: []string{
			"Adjudicación",
			"Celebrado",
			"Cerrado",
			"Liquidado",
		},
		ClosedStatuses: []string{
			"Adjudicado",
			"Celebrado",
			"Cancelado",
			"Terminado sin adjudicar",
			"Suspendido",
		},
		AcceptingOffersPhase: "Presentación de oferta",
	}
}

func (v *Vocabulary) IsCorporateType(contractType string) bool {
	return containsFold(v.CorporateTypes, contractType)
}

// HasPersonalServicePhrase reports whether the description mentions any of the
// personal-services phrases. The scan is a case-insensitive substring search.
func (v *Vocabulary) HasPersonalServicePhrase(description string) bool {
	lowered := strings.ToLower(description)
	for _, phrase := range v.PersonalServicePhrases {
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func (v *Vocabulary) IsClosedPhase(phase string) bool {
	return containsFold(v.ClosedPhases, phase)
}

func (v *Vocabulary) IsClosedStatus(status string) bool {
	return containsFold(v.ClosedStatuses, status)
}

func (v *Vocabulary) IsAcceptingOffersPhase(phase string) bool {
	return strings.EqualFold(strings.TrimSpace(phase), v.AcceptingOffersPhase)
}

func containsFold(set []string, value string) bool {
	value = strings.TrimSpace(value)
	for _, entry := range set {
		if strings.EqualFold(entry, value) {
			return true
		}
	}
	return false
}
