package psyche

import (
	"encoding/json"
	"fmt"
	"sync"
)

// ──────────────────────────────────────────────
// Snapshot Store — the persistence collaborator boundary
// ──────────────────────────────────────────────

// SnapshotStore is the pluggable KV boundary persistence collaborators
// implement. All data is organized by namespace (typically a simulation
// or scenario id) and key. The engine only ever writes the structured
// forms through this interface; it never talks to a backend directly.
type SnapshotStore interface {
	Get(namespace, key string) (string, error)
	Set(namespace, key, value string) error
	Delete(namespace, key string) error
	ListKeys(namespace string) ([]string, error)
}

// InMemorySnapshotStore is a thread-safe in-memory SnapshotStore for
// development and tests. Data is lost on restart.
type InMemorySnapshotStore struct {
	mu sync.RWMutex
	kv map[string]map[string]string
}

// NewInMemorySnapshotStore creates a new in-memory store.
func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{kv: make(map[string]map[string]string)}
}

func (s *InMemorySnapshotStore) Get(namespace, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ns, ok := s.kv[namespace]; ok {
		return ns[key], nil
	}
	return "", nil
}

func (s *InMemorySnapshotStore) Set(namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv[namespace] == nil {
		s.kv[namespace] = make(map[string]string)
	}
	s.kv[namespace][key] = value
	return nil
}

func (s *InMemorySnapshotStore) Delete(namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ns, ok := s.kv[namespace]; ok {
		delete(ns, key)
	}
	return nil
}

func (s *InMemorySnapshotStore) ListKeys(namespace string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.kv[namespace]
	if !ok {
		return nil, nil
	}
	keys := make([]string, 0, len(ns))
	for k := range ns {
		keys = append(keys, k)
	}
	return keys, nil
}

// ──────────────────────────────────────────────
// Archive — structured forms through a SnapshotStore
// ──────────────────────────────────────────────

// Archive persists personas, relationships and memories as JSON-encoded
// structured records through a SnapshotStore. Records are keyed
// "persona:{id}", "relationship:{id}", "memory:{id}".
type Archive struct {
	store     SnapshotStore
	namespace string
}

// NewArchive creates an archive over a snapshot store.
func NewArchive(store SnapshotStore, namespace string) *Archive {
	return &Archive{store: store, namespace: namespace}
}

func (a *Archive) personaKey(id string) string      { return "persona:" + id }
func (a *Archive) relationshipKey(id string) string { return "relationship:" + id }
func (a *Archive) memoryKey(id string) string       { return "memory:" + id }

// SavePersona writes a persona's structured form.
func (a *Archive) SavePersona(p *Persona) error {
	return a.save(a.personaKey(p.ID), p.ToStructured())
}

// LoadPersona reads a persona back, ErrNotFound when absent.
func (a *Archive) LoadPersona(id string) (*Persona, error) {
	data, err := a.load(a.personaKey(id))
	if err != nil {
		return nil, err
	}
	return PersonaFromStructured(data)
}

// SaveRelationship writes a relationship's structured form.
func (a *Archive) SaveRelationship(r *Relationship) error {
	return a.save(a.relationshipKey(r.ID), r.ToStructured())
}

// LoadRelationship reads a relationship back, ErrNotFound when absent.
func (a *Archive) LoadRelationship(id string) (*Relationship, error) {
	data, err := a.load(a.relationshipKey(id))
	if err != nil {
		return nil, err
	}
	return RelationshipFromStructured(data)
}

// SaveMemory writes a memory's structured form.
func (a *Archive) SaveMemory(m Memory) error {
	return a.save(a.memoryKey(m.MemoryID()), m.ToStructured())
}

// LoadMemory reads a memory back, ErrNotFound when absent.
func (a *Archive) LoadMemory(id string) (Memory, error) {
	data, err := a.load(a.memoryKey(id))
	if err != nil {
		return nil, err
	}
	return MemoryFromStructured(data)
}

// DeleteMemory removes a memory record.
func (a *Archive) DeleteMemory(id string) error {
	return a.store.Delete(a.namespace, a.memoryKey(id))
}

func (a *Archive) save(key string, structured map[string]any) error {
	data, err := json.Marshal(structured)
	if err != nil {
		return err
	}
	return a.store.Set(a.namespace, key, string(data))
}

func (a *Archive) load(key string) (map[string]any, error) {
	raw, err := a.store.Get(a.namespace, key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return data, nil
}
