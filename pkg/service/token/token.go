package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultTTL matches the LiveKit SDK default token lifetime.
const DefaultTTL = 6 * time.Hour

// VideoGrant is the capability set embedded in a LiveKit access token.
// Grants issued by this service are fixed: join, publish and subscribe
// for a single named room.
type VideoGrant struct {
	Room         string `json:"room,omitempty"`
	RoomJoin     bool   `json:"roomJoin,omitempty"`
	CanPublish   *bool  `json:"canPublish,omitempty"`
	CanSubscribe *bool  `json:"canSubscribe,omitempty"`
}

type accessClaims struct {
	jwt.RegisteredClaims
	Name  string      `json:"name,omitempty"`
	Video *VideoGrant `json:"video,omitempty"`
}

// Minter signs LiveKit access tokens with an API key pair.
type Minter struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
}

// NewMinter creates a token minter. A missing key or secret is a
// configuration fault surfaced at startup, not per request.
func NewMinter(apiKey, apiSecret string, ttl time.Duration) (*Minter, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, goerr.New("livekit api key and secret are required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Minter{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		ttl:       ttl,
	}, nil
}

// Mint issues a signed token for the verified identity scoped to the
// given room. The room name is passed through unvalidated; an empty
// room yields a token scoped to the empty room.
func (m *Minter) Mint(identity, name, room string) (string, error) {
	yes := true
	now := time.Now()

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.apiKey,
			Subject:   identity,
			ID:        identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Name: name,
		Video: &VideoGrant{
			Room:         room,
			RoomJoin:     true,
			CanPublish:   &yes,
			CanSubscribe: &yes,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.apiSecret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign access token", goerr.V("identity", identity))
	}

	return signed, nil
}
