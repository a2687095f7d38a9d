// Package token issues LiveKit access tokens to clients holding a
// valid Firebase identity token. The service is stateless: each
// request verifies the bearer token, mints a token with fixed grants
// for the requested room, and returns it. No session is persisted.
package token

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/instavoice/assistant/pkg/utils/logging"
)

// Config holds the token service configuration.
type Config struct {
	Addr string

	// LiveKit API key pair used to sign access tokens.
	APIKey    string
	APISecret string
}

type tokenRequest struct {
	FirebaseIDToken string `json:"firebase_id_token"`
	RoomName        string `json:"room_name"`
}

type tokenResponse struct {
	LiveKitToken string `json:"livekit_token"`
	UserID       string `json:"user_id"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Service is the token-issuance HTTP service.
type Service struct {
	app      *fiber.App
	verifier Verifier
	minter   *Minter
	addr     string
}

// NewService builds the service. A nil verifier or a missing key pair
// is a startup-time configuration fault.
func NewService(cfg Config, verifier Verifier) (*Service, error) {
	minter, err := NewMinter(cfg.APIKey, cfg.APISecret, DefaultTTL)
	if err != nil {
		return nil, err
	}

	s := &Service{
		verifier: verifier,
		minter:   minter,
		addr:     cfg.Addr,
	}

	app := fiber.New(fiber.Config{
		AppName:               "instavoice-token-service",
		DisableStartupMessage: true,
	})

	// Open CORS for development clients. Restrict in production.
	app.Use(cors.New())

	app.Post("/generate-livekit-token", s.handleGenerateToken)

	s.app = app
	return s, nil
}

// App exposes the fiber app for tests
func (s *Service) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called
func (s *Service) Listen() error {
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the service
func (s *Service) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Service) handleGenerateToken(c *fiber.Ctx) error {
	ctx := c.UserContext()
	logger := logging.From(ctx)

	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "Invalid request body."})
	}

	if s.verifier == nil {
		logger.Error("identity verifier not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: "Identity verification not configured on server."})
	}

	identity, err := s.verifier.Verify(ctx, req.FirebaseIDToken)
	if err != nil {
		if errors.Is(err, ErrInvalidIDToken) {
			logger.Warn("rejected invalid identity token", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Detail: "Invalid Firebase ID token"})
		}
		logger.Error("identity verification failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: "Error verifying Firebase ID token"})
	}

	if identity.UID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "UID not found in Firebase token."})
	}

	participantName := identity.Name
	if participantName == "" {
		participantName = identity.UID
	}

	signed, err := s.minter.Mint(identity.UID, participantName, req.RoomName)
	if err != nil {
		logger.Error("failed to mint access token", "user_id", identity.UID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: "Could not generate LiveKit token"})
	}

	logger.Info("issued access token", "user_id", identity.UID, "room", req.RoomName)
	return c.JSON(tokenResponse{
		LiveKitToken: signed,
		UserID:       identity.UID,
	})
}
