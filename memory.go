package psyche

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────
// Memory Model — individual / shared / private
// ──────────────────────────────────────────────

// MemoryType discriminates the memory variants.
type MemoryType string

const (
	MemoryIndividual MemoryType = "individual"
	MemoryShared     MemoryType = "shared"
	MemoryPrivate    MemoryType = "private"
)

// MemoryBase carries the fields common to every memory variant.
// Salience and embedding dimensionality are fixed at construction.
type MemoryBase struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Salience    float64            `json:"salience"` // subjective importance, [0,1]
	Snapshot    map[string]float64 `json:"emotional_state,omitempty"`
	Context     string             `json:"situational_context,omitempty"`
	Embedding   []float64          `json:"embedding,omitempty"`
	Metadata    map[string]string  `json:"metadata,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Memory is the flat interface over all three variants.
type Memory interface {
	MemoryID() string
	Type() MemoryType
	Base() *MemoryBase
	// Owner returns the owning persona id, "" for shared memories.
	Owner() string
	// AccessibleWith reports whether a requester with the given trust in
	// the owner may see this memory.
	AccessibleWith(trust float64) bool
	// EmbeddingText is the canonical text rendering handed to an external
	// embedding provider.
	EmbeddingText() string
	ToStructured() map[string]any
}

func newMemoryBase(description string, salience float64) (MemoryBase, error) {
	if description == "" {
		return MemoryBase{}, fmt.Errorf("memory description is required: %w", ErrBadStructured)
	}
	if salience < 0 || salience > 1 {
		return MemoryBase{}, fmt.Errorf("memory salience %v: %w", salience, ErrOutOfRange)
	}
	return MemoryBase{
		ID:          uuid.NewString(),
		Description: description,
		Salience:    salience,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// AddTag appends a tag, ignoring duplicates.
func (b *MemoryBase) AddTag(tag string) {
	for _, t := range b.Tags {
		if t == tag {
			return
		}
	}
	b.Tags = append(b.Tags, tag)
}

// SetSnapshot records the emotional state at the time of the memory.
func (b *MemoryBase) SetSnapshot(state *EmotionalState) {
	if state == nil {
		b.Snapshot = nil
		return
	}
	b.Snapshot = state.ToMapping()
}

// SetContext records the situational context.
func (b *MemoryBase) SetContext(context string) {
	b.Context = context
}

// attachEmbedding sets the embedding; once set, the dimensionality is
// fixed and later updates must match it.
func (b *MemoryBase) attachEmbedding(embedding []float64) error {
	if len(b.Embedding) > 0 && len(embedding) != len(b.Embedding) {
		return fmt.Errorf("embedding dimension %d != %d: %w", len(embedding), len(b.Embedding), ErrOutOfRange)
	}
	b.Embedding = append([]float64(nil), embedding...)
	return nil
}

func (b *MemoryBase) structuredFields(memType MemoryType) map[string]any {
	out := map[string]any{
		"id":          b.ID,
		"memory_type": string(memType),
		"description": b.Description,
		"salience":    b.Salience,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
	}
	if len(b.Snapshot) > 0 {
		snap := make(map[string]float64, len(b.Snapshot))
		for k, v := range b.Snapshot {
			snap[k] = v
		}
		out["emotional_state"] = snap
	}
	if b.Context != "" {
		out["situational_context"] = b.Context
	}
	if len(b.Embedding) > 0 {
		out["embedding"] = append([]float64(nil), b.Embedding...)
	}
	if len(b.Metadata) > 0 {
		meta := make(map[string]string, len(b.Metadata))
		for k, v := range b.Metadata {
			meta[k] = v
		}
		out["metadata"] = meta
	}
	if len(b.Tags) > 0 {
		out["tags"] = append([]string(nil), b.Tags...)
	}
	return out
}

// embeddingText renders the common part: description plus key facts.
func (b *MemoryBase) embeddingText() string {
	parts := []string{b.Description}
	if b.Context != "" {
		parts = append(parts, "context: "+b.Context)
	}
	if len(b.Tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(b.Tags, ", "))
	}
	if len(b.Metadata) > 0 {
		keys := make([]string, 0, len(b.Metadata))
		for k := range b.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		facts := make([]string, 0, len(keys))
		for _, k := range keys {
			facts = append(facts, k+"="+b.Metadata[k])
		}
		parts = append(parts, strings.Join(facts, "; "))
	}
	return strings.Join(parts, "\n")
}

// ──────────────────────────────────────────────
// Individual memory
// ──────────────────────────────────────────────

// IndividualMemory belongs to a single persona; ownership is the only
// gate on access.
type IndividualMemory struct {
	MemoryBase
	OwnerID string `json:"owner_id"`
}

// NewIndividualMemory validates and builds an individual memory.
func NewIndividualMemory(ownerID, description string, salience float64) (*IndividualMemory, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("individual memory needs an owner: %w", ErrBadStructured)
	}
	base, err := newMemoryBase(description, salience)
	if err != nil {
		return nil, err
	}
	return &IndividualMemory{MemoryBase: base, OwnerID: ownerID}, nil
}

func (m *IndividualMemory) MemoryID() string               { return m.ID }
func (m *IndividualMemory) Type() MemoryType               { return MemoryIndividual }
func (m *IndividualMemory) Base() *MemoryBase              { return &m.MemoryBase }
func (m *IndividualMemory) Owner() string                  { return m.OwnerID }
func (m *IndividualMemory) AccessibleWith(_ float64) bool  { return true }
func (m *IndividualMemory) EmbeddingText() string          { return m.embeddingText() }

func (m *IndividualMemory) ToStructured() map[string]any {
	out := m.structuredFields(MemoryIndividual)
	out["owner_id"] = m.OwnerID
	return out
}

// ──────────────────────────────────────────────
// Shared memory
// ──────────────────────────────────────────────

// SharedMemory is held jointly by several personas, each with a
// subjective perspective and an optional emotional snapshot of their own.
type SharedMemory struct {
	MemoryBase
	ParticipantIDs    []string                      `json:"participant_ids"`
	Perspectives      map[string]string             `json:"perspectives,omitempty"`
	ParticipantStates map[string]map[string]float64 `json:"participant_states,omitempty"`
}

// NewSharedMemory validates and builds a shared memory.
func NewSharedMemory(participantIDs []string, description string, salience float64) (*SharedMemory, error) {
	if len(participantIDs) < 2 {
		return nil, fmt.Errorf("shared memory needs at least two participants: %w", ErrBadStructured)
	}
	base, err := newMemoryBase(description, salience)
	if err != nil {
		return nil, err
	}
	return &SharedMemory{
		MemoryBase:        base,
		ParticipantIDs:    append([]string(nil), participantIDs...),
		Perspectives:      make(map[string]string),
		ParticipantStates: make(map[string]map[string]float64),
	}, nil
}

// SetPerspective records one participant's subjective account.
func (m *SharedMemory) SetPerspective(personaID, perspective string) error {
	if !m.HasParticipant(personaID) {
		return fmt.Errorf("perspective for %q: %w", personaID, ErrUnknownPersona)
	}
	if m.Perspectives == nil {
		m.Perspectives = make(map[string]string)
	}
	m.Perspectives[personaID] = perspective
	return nil
}

// SetParticipantState records one participant's emotional snapshot.
func (m *SharedMemory) SetParticipantState(personaID string, state *EmotionalState) error {
	if !m.HasParticipant(personaID) {
		return fmt.Errorf("state for %q: %w", personaID, ErrUnknownPersona)
	}
	if m.ParticipantStates == nil {
		m.ParticipantStates = make(map[string]map[string]float64)
	}
	m.ParticipantStates[personaID] = state.ToMapping()
	return nil
}

// HasParticipant reports whether the persona shares this memory.
func (m *SharedMemory) HasParticipant(personaID string) bool {
	for _, id := range m.ParticipantIDs {
		if id == personaID {
			return true
		}
	}
	return false
}

func (m *SharedMemory) MemoryID() string              { return m.ID }
func (m *SharedMemory) Type() MemoryType              { return MemoryShared }
func (m *SharedMemory) Base() *MemoryBase             { return &m.MemoryBase }
func (m *SharedMemory) Owner() string                 { return "" }
func (m *SharedMemory) AccessibleWith(_ float64) bool { return true }

func (m *SharedMemory) EmbeddingText() string {
	text := m.embeddingText()
	if len(m.Perspectives) == 0 {
		return text
	}
	ids := make([]string, 0, len(m.Perspectives))
	for id := range m.Perspectives {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	lines := []string{text}
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("%s remembers: %s", id, m.Perspectives[id]))
	}
	return strings.Join(lines, "\n")
}

func (m *SharedMemory) ToStructured() map[string]any {
	out := m.structuredFields(MemoryShared)
	out["participant_ids"] = append([]string(nil), m.ParticipantIDs...)
	if len(m.Perspectives) > 0 {
		persp := make(map[string]string, len(m.Perspectives))
		for k, v := range m.Perspectives {
			persp[k] = v
		}
		out["perspectives"] = persp
	}
	if len(m.ParticipantStates) > 0 {
		states := make(map[string]any, len(m.ParticipantStates))
		for id, snap := range m.ParticipantStates {
			inner := make(map[string]float64, len(snap))
			for k, v := range snap {
				inner[k] = v
			}
			states[id] = inner
		}
		out["participant_states"] = states
	}
	return out
}

// ──────────────────────────────────────────────
// Private memory
// ──────────────────────────────────────────────

// PrivateMemory is owned by one persona and disclosed only to requesters
// whose trust clears the threshold.
type PrivateMemory struct {
	MemoryBase
	OwnerID         string  `json:"owner_id"`
	TrustThreshold  float64 `json:"trust_threshold"`
	DisclosureCount int     `json:"disclosure_count"`
}

// NewPrivateMemory validates and builds a private memory. The trust
// threshold is fixed for the memory's lifetime.
func NewPrivateMemory(ownerID, description string, salience, trustThreshold float64) (*PrivateMemory, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("private memory needs an owner: %w", ErrBadStructured)
	}
	if trustThreshold < 0 || trustThreshold > 1 {
		return nil, fmt.Errorf("trust threshold %v: %w", trustThreshold, ErrOutOfRange)
	}
	base, err := newMemoryBase(description, salience)
	if err != nil {
		return nil, err
	}
	return &PrivateMemory{MemoryBase: base, OwnerID: ownerID, TrustThreshold: trustThreshold}, nil
}

// CanAccess reports whether the requester's trust in the owner clears
// the disclosure threshold.
func (m *PrivateMemory) CanAccess(trust float64) bool {
	return TrustAllowsDisclosure(trust, m.TrustThreshold)
}

// RecordDisclosure increments the disclosure counter.
func (m *PrivateMemory) RecordDisclosure() {
	m.DisclosureCount++
}

func (m *PrivateMemory) MemoryID() string                  { return m.ID }
func (m *PrivateMemory) Type() MemoryType                  { return MemoryPrivate }
func (m *PrivateMemory) Base() *MemoryBase                 { return &m.MemoryBase }
func (m *PrivateMemory) Owner() string                     { return m.OwnerID }
func (m *PrivateMemory) AccessibleWith(trust float64) bool { return m.CanAccess(trust) }
func (m *PrivateMemory) EmbeddingText() string             { return m.embeddingText() }

func (m *PrivateMemory) ToStructured() map[string]any {
	out := m.structuredFields(MemoryPrivate)
	out["owner_id"] = m.OwnerID
	out["trust_threshold"] = m.TrustThreshold
	out["disclosure_count"] = m.DisclosureCount
	return out
}

// ──────────────────────────────────────────────
// Access filtering & reconstruction
// ──────────────────────────────────────────────

// FilterAccessibleMemories keeps individual and shared memories
// unconditionally and private memories only where trust clears their
// threshold.
func FilterAccessibleMemories(memories []Memory, trust float64) []Memory {
	out := make([]Memory, 0, len(memories))
	for _, m := range memories {
		if m.AccessibleWith(trust) {
			out = append(out, m)
		}
	}
	return out
}

// MemoryFromStructured rebuilds any memory variant from its structured
// form, dispatching on the memory_type discriminant.
func MemoryFromStructured(data map[string]any) (Memory, error) {
	typ, _ := data["memory_type"].(string)
	description, _ := data["description"].(string)
	salience, _ := toFloat(data["salience"])

	var (
		mem Memory
		err error
	)
	switch MemoryType(typ) {
	case MemoryIndividual:
		ownerID, _ := data["owner_id"].(string)
		mem, err = NewIndividualMemory(ownerID, description, salience)
	case MemoryShared:
		ids, idsErr := toStringSlice(data["participant_ids"])
		if idsErr != nil {
			return nil, fmt.Errorf("shared memory: %w", idsErr)
		}
		shared, sharedErr := NewSharedMemory(ids, description, salience)
		if sharedErr != nil {
			return nil, sharedErr
		}
		switch persp := data["perspectives"].(type) {
		case map[string]string:
			for id, s := range persp {
				if err := shared.SetPerspective(id, s); err != nil {
					return nil, err
				}
			}
		case map[string]any:
			for id, v := range persp {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("shared memory perspective %q: %w", id, ErrBadStructured)
				}
				if err := shared.SetPerspective(id, s); err != nil {
					return nil, err
				}
			}
		}
		if states, ok := data["participant_states"].(map[string]any); ok {
			for id, v := range states {
				snap, snapErr := toFloatMap(v)
				if snapErr != nil {
					return nil, fmt.Errorf("shared memory state %q: %w", id, snapErr)
				}
				if !shared.HasParticipant(id) {
					return nil, fmt.Errorf("shared memory state %q: %w", id, ErrUnknownPersona)
				}
				shared.ParticipantStates[id] = snap
			}
		}
		mem = shared
	case MemoryPrivate:
		ownerID, _ := data["owner_id"].(string)
		threshold, _ := toFloat(data["trust_threshold"])
		private, privErr := NewPrivateMemory(ownerID, description, salience, threshold)
		if privErr != nil {
			return nil, privErr
		}
		if count, ok := toFloat(data["disclosure_count"]); ok {
			private.DisclosureCount = int(count)
		}
		mem = private
	default:
		return nil, fmt.Errorf("memory type %q: %w", typ, ErrBadStructured)
	}
	if err != nil {
		return nil, err
	}

	base := mem.Base()
	if id, _ := data["id"].(string); id != "" {
		base.ID = id
	}
	if ts, _ := data["created_at"].(string); ts != "" {
		if parsed, parseErr := time.Parse(time.RFC3339Nano, ts); parseErr == nil {
			base.CreatedAt = parsed
		}
	}
	if ctx, _ := data["situational_context"].(string); ctx != "" {
		base.Context = ctx
	}
	if rawSnap, ok := data["emotional_state"]; ok && rawSnap != nil {
		snap, snapErr := toFloatMap(rawSnap)
		if snapErr != nil {
			return nil, fmt.Errorf("memory snapshot: %w", snapErr)
		}
		base.Snapshot = snap
	}
	if rawEmb, ok := data["embedding"]; ok && rawEmb != nil {
		emb, embErr := toFloatSlice(rawEmb)
		if embErr != nil {
			return nil, fmt.Errorf("memory embedding: %w", embErr)
		}
		base.Embedding = emb
	}
	if rawMeta, ok := data["metadata"].(map[string]any); ok {
		base.Metadata = make(map[string]string, len(rawMeta))
		for k, v := range rawMeta {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("memory metadata %q: %w", k, ErrBadStructured)
			}
			base.Metadata[k] = s
		}
	} else if meta, ok := data["metadata"].(map[string]string); ok {
		base.Metadata = make(map[string]string, len(meta))
		for k, v := range meta {
			base.Metadata[k] = v
		}
	}
	if tags, tagsErr := toStringSlice(data["tags"]); tagsErr == nil && tags != nil {
		base.Tags = tags
	}
	return mem, nil
}

func toFloatSlice(raw any) ([]float64, error) {
	switch v := raw.(type) {
	case []float64:
		return append([]float64(nil), v...), nil
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := toFloat(item)
			if !ok {
				return nil, fmt.Errorf("expected numeric element: %w", ErrBadStructured)
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected numeric list: %w", ErrBadStructured)
	}
}
