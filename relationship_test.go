package psyche

import (
	"errors"
	"math"
	"testing"
)

// ══════════════════════════════════════════════
// Relationship
// ══════════════════════════════════════════════

func TestRelationship_AsymmetricTrust(t *testing.T) {
	r, err := NewRelationship("friend", "ada", "ben")
	if err != nil {
		t.Fatal(err)
	}
	r.SetTrust("ada", "ben", 0.8)
	r.SetTrust("ben", "ada", 0.5)

	if r.GetTrust("ada", "ben") != 0.8 {
		t.Fatalf("trust(ada,ben) = %v, want 0.8", r.GetTrust("ada", "ben"))
	}
	if r.GetTrust("ben", "ada") != 0.5 {
		t.Fatalf("trust(ben,ada) = %v, want 0.5", r.GetTrust("ben", "ada"))
	}
}

func TestRelationship_UpdateTrustUndampedBelowSaturation(t *testing.T) {
	r, _ := NewRelationship("friend", "ada", "ben")
	r.SetTrust("ada", "ben", 0.8)
	r.SetTrust("ben", "ada", 0.5)

	got, desc, err := r.UpdateTrust("ben", "ada", 0.2, "helped")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("trust = %v, want exactly 0.7", got)
	}
	if desc == "" {
		t.Fatal("expected change description")
	}
	if len(r.TrustHistory) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(r.TrustHistory))
	}
	entry := r.TrustHistory[0]
	if entry.From != "ben" || entry.To != "ada" || entry.Reason != "helped" {
		t.Fatalf("bad history entry: %+v", entry)
	}
	if entry.Timestamp.IsZero() {
		t.Fatal("history entry needs a timestamp")
	}
}

func TestRelationship_HistoryNeverTruncated(t *testing.T) {
	r, _ := NewRelationship("rival", "ada", "ben")
	for i := 0; i < 50; i++ {
		r.UpdateTrust("ada", "ben", 0.01, "slow thaw")
	}
	if len(r.TrustHistory) != 50 {
		t.Fatalf("history truncated: %d entries", len(r.TrustHistory))
	}
	r.AddHistory("they met at the archive fire")
	if len(r.History) != 1 {
		t.Fatal("free-text history lost")
	}
}

func TestRelationship_UnknownPersonaRejected(t *testing.T) {
	r, _ := NewRelationship("friend", "ada", "ben")
	if err := r.SetTrust("ada", "zed", 0.5); !errors.Is(err, ErrUnknownPersona) {
		t.Fatalf("expected ErrUnknownPersona, got %v", err)
	}
	if _, _, err := r.UpdateTrust("zed", "ada", 0.1, "r"); !errors.Is(err, ErrUnknownPersona) {
		t.Fatalf("expected ErrUnknownPersona, got %v", err)
	}
}

func TestRelationship_SetTrustClamps(t *testing.T) {
	r, _ := NewRelationship("friend", "ada", "ben")
	r.SetTrust("ada", "ben", 1.7)
	if r.GetTrust("ada", "ben") != 1.0 {
		t.Fatal("trust should clamp to 1.0")
	}
}

func TestRelationship_NeedsTwoDistinctPersonas(t *testing.T) {
	if _, err := NewRelationship("friend", "ada"); err == nil {
		t.Fatal("single-persona relationship should fail")
	}
	if _, err := NewRelationship("friend", "ada", "ada"); err == nil {
		t.Fatal("duplicate persona ids should fail")
	}
}

func TestRelationship_StructuredRoundTrip(t *testing.T) {
	r, _ := NewRelationship("mentor", "ada", "ben")
	r.SetTrust("ada", "ben", 0.65)
	r.UpdateTrust("ben", "ada", 0.3, "good advice")
	r.AddHistory("first session")

	back, err := RelationshipFromStructured(r.ToStructured())
	if err != nil {
		t.Fatal(err)
	}
	if back.ID != r.ID || back.Type != "mentor" {
		t.Fatalf("identity lost: %+v", back)
	}
	if back.GetTrust("ada", "ben") != 0.65 {
		t.Fatalf("trust lost: %v", back.GetTrust("ada", "ben"))
	}
	if math.Abs(back.GetTrust("ben", "ada")-0.3) > 1e-9 {
		t.Fatalf("updated trust lost: %v", back.GetTrust("ben", "ada"))
	}
	if len(back.TrustHistory) != 1 || back.TrustHistory[0].Reason != "good advice" {
		t.Fatalf("trust history lost: %+v", back.TrustHistory)
	}
	if len(back.History) != 1 || back.History[0] != "first session" {
		t.Fatalf("history lost: %v", back.History)
	}
}

// ══════════════════════════════════════════════
// Relationship Network
// ══════════════════════════════════════════════

func TestNetwork_IncidentAndConnected(t *testing.T) {
	n := NewRelationshipNetwork()
	ab, _ := NewRelationship("friend", "ada", "ben")
	ac, _ := NewRelationship("rival", "ada", "cai")
	bc, _ := NewRelationship("family", "ben", "cai")
	n.Add(ab)
	n.Add(ac)
	n.Add(bc)

	if n.Size() != 3 {
		t.Fatalf("size %d, want 3", n.Size())
	}
	if got := n.RelationshipsOf("ada"); len(got) != 2 {
		t.Fatalf("ada has %d relationships, want 2", len(got))
	}
	connected := n.ConnectedIDs("ada")
	if len(connected) != 2 || connected[0] != "ben" || connected[1] != "cai" {
		t.Fatalf("connected ids: %v", connected)
	}
}

func TestNetwork_TrustLookup(t *testing.T) {
	n := NewRelationshipNetwork()
	ab, _ := NewRelationship("friend", "ada", "ben")
	ab.SetTrust("ada", "ben", 0.6)
	n.Add(ab)

	if n.Trust("ada", "ben") != 0.6 {
		t.Fatalf("network trust %v, want 0.6", n.Trust("ada", "ben"))
	}
	if n.Trust("ada", "cai") != 0 {
		t.Fatal("strangers score 0 trust")
	}
	if n.Between("ada", "ben") != ab {
		t.Fatal("Between should find the shared edge")
	}
}

func TestNetwork_RemoveEdge(t *testing.T) {
	n := NewRelationshipNetwork()
	ab, _ := NewRelationship("friend", "ada", "ben")
	n.Add(ab)

	if !n.Remove(ab.ID) {
		t.Fatal("remove should succeed")
	}
	if n.Remove(ab.ID) {
		t.Fatal("double remove should fail")
	}
	if len(n.RelationshipsOf("ada")) != 0 {
		t.Fatal("edge still indexed after remove")
	}
}

func TestNetwork_DuplicateAddIgnored(t *testing.T) {
	n := NewRelationshipNetwork()
	ab, _ := NewRelationship("friend", "ada", "ben")
	n.Add(ab)
	n.Add(ab)
	if len(n.RelationshipsOf("ada")) != 1 {
		t.Fatal("duplicate add should be a no-op")
	}
}
