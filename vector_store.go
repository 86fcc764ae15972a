package psyche

import (
	"fmt"
	"math"
	"sort"
)

// ──────────────────────────────────────────────
// Vector Store — cosine similarity retrieval
// ──────────────────────────────────────────────

// SearchHit is one ranked result from a similarity search.
type SearchHit struct {
	Memory Memory
	Score  float64
}

type vectorEntry struct {
	memory    Memory
	embedding []float64
}

// VectorStore indexes memories by externally supplied embedding vectors
// and retrieves them by cosine similarity. It never computes embeddings
// itself. The store grows until explicit deletion; capacity management
// belongs to the host.
type VectorStore struct {
	entries map[string]*vectorEntry
}

// NewVectorStore creates an empty index.
func NewVectorStore() *VectorStore {
	return &VectorStore{entries: make(map[string]*vectorEntry)}
}

// Store indexes a memory under its embedding and attaches the embedding
// to the memory record itself. Once a memory carries an embedding, its
// dimensionality is fixed.
func (s *VectorStore) Store(mem Memory, embedding []float64) error {
	if mem == nil {
		return fmt.Errorf("store: nil memory: %w", ErrBadStructured)
	}
	if len(embedding) == 0 {
		return fmt.Errorf("store %q: empty embedding: %w", mem.MemoryID(), ErrOutOfRange)
	}
	if err := mem.Base().attachEmbedding(embedding); err != nil {
		return fmt.Errorf("store %q: %w", mem.MemoryID(), err)
	}
	s.entries[mem.MemoryID()] = &vectorEntry{
		memory:    mem,
		embedding: append([]float64(nil), embedding...),
	}
	return nil
}

// Get returns an indexed memory by id.
func (s *VectorStore) Get(id string) (Memory, bool) {
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return e.memory, true
}

// Delete removes a memory from the index. Returns false when absent.
func (s *VectorStore) Delete(id string) bool {
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

// UpdateEmbedding replaces a stored embedding. The new vector must match
// the dimensionality fixed when the memory was first embedded.
func (s *VectorStore) UpdateEmbedding(id string, embedding []float64) error {
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("update embedding %q: %w", id, ErrNotFound)
	}
	if len(embedding) != len(e.embedding) {
		return fmt.Errorf("update embedding %q: dimension %d != %d: %w",
			id, len(embedding), len(e.embedding), ErrOutOfRange)
	}
	if err := e.memory.Base().attachEmbedding(embedding); err != nil {
		return fmt.Errorf("update embedding %q: %w", id, err)
	}
	e.embedding = append([]float64(nil), embedding...)
	return nil
}

// Count returns the number of indexed memories; with a non-empty ownerID
// it counts only memories owned by that persona.
func (s *VectorStore) Count(ownerID string) int {
	if ownerID == "" {
		return len(s.entries)
	}
	n := 0
	for _, e := range s.entries {
		if e.memory.Owner() == ownerID {
			n++
		}
	}
	return n
}

// Search ranks stored memories by cosine similarity to the query and
// returns at most limit hits, highest first. A non-empty ownerID
// restricts results to that persona's memories. Score ties rank by
// memory id so results stay deterministic.
func (s *VectorStore) Search(query []float64, limit int, ownerID string) []SearchHit {
	if limit <= 0 {
		return nil
	}
	hits := make([]SearchHit, 0, len(s.entries))
	for _, e := range s.entries {
		if ownerID != "" && e.memory.Owner() != ownerID {
			continue
		}
		hits = append(hits, SearchHit{
			Memory: e.memory,
			Score:  CosineSimilarity(query, e.embedding),
		})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Memory.MemoryID() < hits[j].Memory.MemoryID()
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// CosineSimilarity computes dot(a,b)/(|a|·|b|). Vectors of different
// lengths, or with zero magnitude, score 0.0 rather than erroring.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
