package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	psyche "github.com/synthmind-ai/psyche-sdk-go"
)

const sampleCatalog = `
personas:
  - name: Ada
    emotions:
      curiosity_proxy: 0
    traits: {}
masks:
  - name: courtroom_calm
    description: flatten affect while testifying
    modifications:
      anxious: -0.4
      calm: 0.3
    trigger_keywords: [courtroom, testimony]
triggers:
  - name: panic_guard
    kind: emotional
    match_all: true
    rules:
      - emotion: anxious
        op: ">="
        threshold: 0.8
      - emotion: overwhelmed
        op: ">"
        threshold: 0.6
    mask: courtroom_calm
  - name: bad_news
    kind: situational
    keywords: [funeral, diagnosis]
    modifications:
      depressed: 0.3
      hopeful: -0.2
`

func validCatalog(t *testing.T) *Catalog {
	t.Helper()
	yml := strings.Replace(sampleCatalog, "curiosity_proxy: 0", "hopeful: 0.6", 1)
	cat, err := ParseCatalog([]byte(yml))
	require.NoError(t, err)
	return cat
}

func TestParseCatalog(t *testing.T) {
	cat := validCatalog(t)

	require.Len(t, cat.Personas, 1)
	ada, ok := cat.PersonaByName("Ada")
	require.True(t, ok)
	assert.Equal(t, 0.6, ada.GetEmotion("hopeful"))

	require.Contains(t, cat.Masks, "courtroom_calm")
	require.Len(t, cat.Triggers, 2)
	assert.Equal(t, "panic_guard", cat.Triggers[0].Name())
}

func TestParseCatalogRejectsUnknownEmotion(t *testing.T) {
	_, err := ParseCatalog([]byte(sampleCatalog))
	require.Error(t, err)
	assert.ErrorIs(t, err, psyche.ErrUnknownEmotion)
}

func TestParseCatalogResolvesBuiltinMask(t *testing.T) {
	yml := `
triggers:
  - name: at_work
    kind: situational
    keywords: [meeting]
    mask: professional_composure
`
	cat, err := ParseCatalog([]byte(yml))
	require.NoError(t, err)
	require.Len(t, cat.Triggers, 1)
}

func TestParseCatalogRejectsMissingMask(t *testing.T) {
	yml := `
triggers:
  - name: at_work
    kind: situational
    keywords: [meeting]
    mask: no_such_mask
`
	_, err := ParseCatalog([]byte(yml))
	assert.ErrorContains(t, err, "not found")
}

func TestParseCatalogRejectsAmbiguousResponse(t *testing.T) {
	yml := `
triggers:
  - name: at_work
    kind: situational
    keywords: [meeting]
    mask: professional_composure
    modifications:
      calm: 0.2
`
	_, err := ParseCatalog([]byte(yml))
	assert.ErrorContains(t, err, "both mask and modifications")
}

func TestParseCatalogRejectsUnknownKind(t *testing.T) {
	yml := `
triggers:
  - name: odd
    kind: telepathic
    keywords: [x]
    modifications:
      calm: 0.2
`
	_, err := ParseCatalog([]byte(yml))
	assert.ErrorContains(t, err, "unknown kind")
}

func TestCatalogTriggerFires(t *testing.T) {
	cat := validCatalog(t)

	state := psyche.NewEmotionalState()
	require.NoError(t, state.Set("anxious", 0.9))
	require.NoError(t, state.Set("overwhelmed", 0.7))

	fired, err := cat.Triggers[0].Check(psyche.TriggerContext{State: state})
	require.NoError(t, err)
	assert.True(t, fired)

	after := cat.Triggers[0].Fire(state)
	assert.Less(t, after.Get("anxious"), state.Get("anxious"))
}
