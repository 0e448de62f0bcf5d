package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Manager struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// Identity is the user shape carried in the session cookie: the role flags
// decide which map entries the holder may create or edit, and a recycler is
// limited to the listed organisations.
type Identity struct {
	UserID               string   `json:"userId"`
	Email                string   `json:"email"`
	IsAdmin              bool     `json:"isAdmin"`
	IsRecycler           bool     `json:"isRecycler"`
	IsStoryteller        bool     `json:"isStoryteller"`
	RecycleOrganisations []string `json:"recycleOrganisations,omitempty"`
}

type Claims struct {
	Identity
	jwt.RegisteredClaims
}

func (m *Manager) newToken(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

func (m *Manager) NewAccessToken(identity Identity) (string, error) {
	return m.newToken(identity, m.AccessTTL)
}

func (m *Manager) NewRefreshToken(identity Identity) (string, error) {
	return m.newToken(identity, m.RefreshTTL)
}

func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
