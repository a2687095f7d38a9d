package token

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// ErrInvalidIDToken marks a rejected identity token, as opposed to a
// verification-infrastructure failure. Handlers map it to 401.
var ErrInvalidIDToken = goerr.New("invalid identity token")

// Identity is a verified identity-provider claim set.
type Identity struct {
	// UID is the subject of the identity token.
	UID string

	// Name is the display name claim; empty when the provider has none.
	Name string
}

// Verifier validates a bearer identity token.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// FirebaseVerifier validates Firebase ID tokens via the Admin SDK.
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier initializes the Admin SDK from a credentials
// file, or from application default credentials when no path is given.
func NewFirebaseVerifier(ctx context.Context, credentialsPath string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firebase auth client")
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, wrapVerifyError(err)
	}

	identity := &Identity{UID: decoded.UID}
	if name, ok := decoded.Claims["name"].(string); ok {
		identity.Name = name
	}

	return identity, nil
}

// wrapVerifyError separates a rejected token from a verification
// failure. Only a token the Admin SDK deems invalid or expired maps to
// ErrInvalidIDToken; anything else, such as a public-key fetch
// failure, stays an infrastructure error so handlers answer 500
// instead of 401.
func wrapVerifyError(err error) error {
	if auth.IsIDTokenInvalid(err) || auth.IsIDTokenExpired(err) {
		return goerr.Wrap(ErrInvalidIDToken, err.Error())
	}
	return goerr.Wrap(err, "failed to verify identity token")
}
