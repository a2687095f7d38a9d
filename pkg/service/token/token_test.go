package token_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/instavoice/assistant/pkg/service/token"
)

const (
	testAPIKey    = "LK_API_KEY"
	testAPISecret = "LK_API_SECRET"
)

type mockVerifier struct {
	identity *token.Identity
	err      error
}

func (m *mockVerifier) Verify(ctx context.Context, idToken string) (*token.Identity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.identity, nil
}

func newService(t *testing.T, verifier token.Verifier) *token.Service {
	t.Helper()
	svc, err := token.NewService(token.Config{
		Addr:      ":0",
		APIKey:    testAPIKey,
		APISecret: testAPISecret,
	}, verifier)
	gt.NoError(t, err)
	return svc
}

func post(t *testing.T, svc *token.Service, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	gt.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/generate-livekit-token", bytes.NewReader(raw))
	gt.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.App().Test(req)
	gt.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestNewServiceRequiresKeyPair(t *testing.T) {
	_, err := token.NewService(token.Config{Addr: ":0"}, &mockVerifier{})
	gt.Error(t, err)

	_, err = token.NewService(token.Config{Addr: ":0", APIKey: testAPIKey}, &mockVerifier{})
	gt.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	svc := newService(t, &mockVerifier{
		identity: &token.Identity{UID: "firebase_uid_1", Name: "Real User"},
	})

	resp := post(t, svc, map[string]string{
		"firebase_id_token": "valid-token",
		"room_name":         "support-room",
	})
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	var body struct {
		LiveKitToken string `json:"livekit_token"`
		UserID       string `json:"user_id"`
	}
	decodeBody(t, resp, &body)
	gt.Equal(t, body.UserID, "firebase_uid_1")
	gt.NotEqual(t, body.LiveKitToken, "")

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(body.LiveKitToken, claims, func(tok *jwt.Token) (any, error) {
		return []byte(testAPISecret), nil
	})
	gt.NoError(t, err)
	gt.Equal(t, claims["iss"], testAPIKey)
	gt.Equal(t, claims["sub"], "firebase_uid_1")
	gt.Equal(t, claims["name"], "Real User")

	video, ok := claims["video"].(map[string]any)
	gt.True(t, ok)
	gt.Equal(t, video["room"], "support-room")
	gt.Equal(t, video["roomJoin"], true)
	gt.Equal(t, video["canPublish"], true)
	gt.Equal(t, video["canSubscribe"], true)
}

func TestGenerateTokenEmptyRoomAccepted(t *testing.T) {
	svc := newService(t, &mockVerifier{
		identity: &token.Identity{UID: "firebase_uid_1"},
	})

	resp := post(t, svc, map[string]string{"firebase_id_token": "valid-token"})
	gt.Equal(t, resp.StatusCode, http.StatusOK)
}

func TestGenerateTokenNameFallsBackToUID(t *testing.T) {
	svc := newService(t, &mockVerifier{
		identity: &token.Identity{UID: "firebase_uid_1"},
	})

	resp := post(t, svc, map[string]string{"firebase_id_token": "valid-token"})
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	var body struct {
		LiveKitToken string `json:"livekit_token"`
	}
	decodeBody(t, resp, &body)

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(body.LiveKitToken, claims, func(tok *jwt.Token) (any, error) {
		return []byte(testAPISecret), nil
	})
	gt.NoError(t, err)
	gt.Equal(t, claims["name"], "firebase_uid_1")
}

func TestGenerateTokenInvalidIDToken(t *testing.T) {
	svc := newService(t, &mockVerifier{
		err: goerr.Wrap(token.ErrInvalidIDToken, "token expired"),
	})

	resp := post(t, svc, map[string]string{"firebase_id_token": "expired"})
	gt.Equal(t, resp.StatusCode, http.StatusUnauthorized)

	var body struct {
		Detail string `json:"detail"`
	}
	decodeBody(t, resp, &body)
	gt.Equal(t, body.Detail, "Invalid Firebase ID token")
}

func TestGenerateTokenVerifierInfrastructureFailure(t *testing.T) {
	svc := newService(t, &mockVerifier{err: goerr.New("admin sdk unreachable")})

	resp := post(t, svc, map[string]string{"firebase_id_token": "valid-token"})
	gt.Equal(t, resp.StatusCode, http.StatusInternalServerError)
}

func TestGenerateTokenMissingUID(t *testing.T) {
	svc := newService(t, &mockVerifier{identity: &token.Identity{}})

	resp := post(t, svc, map[string]string{"firebase_id_token": "valid-token"})
	gt.Equal(t, resp.StatusCode, http.StatusBadRequest)

	var body struct {
		Detail string `json:"detail"`
	}
	decodeBody(t, resp, &body)
	gt.Equal(t, body.Detail, "UID not found in Firebase token.")
}

func TestGenerateTokenNoVerifier(t *testing.T) {
	svc := newService(t, nil)

	resp := post(t, svc, map[string]string{"firebase_id_token": "valid-token"})
	gt.Equal(t, resp.StatusCode, http.StatusInternalServerError)
}

func TestGenerateTokenInvalidBody(t *testing.T) {
	svc := newService(t, &mockVerifier{identity: &token.Identity{UID: "u"}})

	req, err := http.NewRequest(http.MethodPost, "/generate-livekit-token", bytes.NewReader([]byte("{not json")))
	gt.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.App().Test(req)
	gt.NoError(t, err)
	gt.Equal(t, resp.StatusCode, http.StatusBadRequest)
}

func TestMintClaims(t *testing.T) {
	minter, err := token.NewMinter(testAPIKey, testAPISecret, time.Hour)
	gt.NoError(t, err)

	signed, err := minter.Mint("uid-1", "Display Name", "room-1")
	gt.NoError(t, err)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (any, error) {
		return []byte(testAPISecret), nil
	})
	gt.NoError(t, err)
	gt.True(t, parsed.Valid)
	gt.Equal(t, parsed.Method.Alg(), "HS256")

	gt.Equal(t, claims["iss"], testAPIKey)
	gt.Equal(t, claims["sub"], "uid-1")
	gt.Equal(t, claims["jti"], "uid-1")
	gt.Equal(t, claims["name"], "Display Name")

	exp, ok := claims["exp"].(float64)
	gt.True(t, ok)
	nbf, ok := claims["nbf"].(float64)
	gt.True(t, ok)
	gt.Equal(t, int64(exp-nbf), int64(time.Hour/time.Second))
}
