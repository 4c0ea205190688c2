package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultVocabulary(t *testing.T) {
	voc := DefaultVocabulary()

	assert.True(t, voc.IsCorporateType("Obra"))
	assert.True(t, voc.IsCorporateType("  consultoría  "))
	assert.False(t, voc.IsCorporateType("Prestación de servicios"))

	assert.True(t, voc.HasPersonalServicePhrase("Servicios de APOYO A LA GESTIÓN"))
	assert.False(t, voc.HasPersonalServicePhrase("Construcción de acueducto"))
	assert.False(t, voc.HasPersonalServicePhrase(""))

	assert.True(t, voc.IsClosedPhase("Liquidado"))
	assert.False(t, voc.IsClosedPhase("Presentación de oferta"))

	assert.True(t, voc.IsClosedStatus("Terminado sin adjudicar"))
	assert.False(t, voc.IsClosedStatus("Publicado"))

	assert.True(t, voc.IsAcceptingOffersPhase("Presentación de oferta"))
	assert.False(t, voc.IsAcceptingOffersPhase("Planeación"))
}

// Celebrado appears in both the phase and status vocabularies. Both checks
// stay independent, the overlap is intentional.
func TestDefaultVocabularyOverlap(t *testing.T) {
	voc := DefaultVocabulary()

	assert.True(t, voc.IsClosedPhase("Celebrado"))
	assert.True(t, voc.IsClosedStatus("Celebrado"))
}
