package auth

import (
	"testing"
	"time"
)

func testManager() *Manager {
	return &Manager{
		Secret:     []byte("test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Issuer:     "aterbruk-backend",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager()
	identity := Identity{
		UserID:               "u1",
		Email:                "recycler@uppsala.se",
		IsRecycler:           true,
		RecycleOrganisations: []string{"Uppsala kommun", "Uppsalahem"},
	}

	token, err := m.NewAccessToken(identity)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || !claims.IsRecycler || claims.IsAdmin {
		t.Fatalf("unexpected identity %+v", claims.Identity)
	}
	if len(claims.RecycleOrganisations) != 2 {
		t.Fatalf("organisations = %v", claims.RecycleOrganisations)
	}
	if claims.ID == "" {
		t.Fatal("token should carry a jti")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := testManager()
	token, err := m.NewAccessToken(Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	other := testManager()
	other.Secret = []byte("different-secret")
	if _, err := other.Parse(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	m := testManager()
	m.AccessTTL = -time.Minute

	token, err := m.NewAccessToken(Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("korrekt häst batteri")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(hash, "korrekt häst batteri"); err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
	if err := ComparePassword(hash, "fel lösenord"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
