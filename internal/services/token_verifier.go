package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/utils"
)

// TokenVerifier checks a bearer token against the identity provider
// and yields the verified account email. No verification result is
// cached between requests.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

type firebaseTokenVerifier struct {
	log    *logger.Logger
	client *auth.Client
}

// NewFirebaseTokenVerifier builds the verifier from the service
// account key: FB_SERVICE_KEY holds the key JSON base64-encoded,
// FB_SERVICE_KEY_FILE points at a key file on disk.
func NewFirebaseTokenVerifier(ctx context.Context, log *logger.Logger) (TokenVerifier, error) {
	verifierLog := log.With("service", "FirebaseTokenVerifier")

	var opts []option.ClientOption
	encodedKey := utils.GetEnv("FB_SERVICE_KEY", "", log)
	keyFile := utils.GetEnv("FB_SERVICE_KEY_FILE", "", log)
	switch {
	case encodedKey != "":
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encodedKey))
		if err != nil {
			return nil, fmt.Errorf("FB_SERVICE_KEY is not valid base64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	case keyFile != "":
		opts = append(opts, option.WithCredentialsFile(keyFile))
	default:
		return nil, fmt.Errorf("FB_SERVICE_KEY or FB_SERVICE_KEY_FILE is required")
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("Failed to init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to init firebase auth client: %w", err)
	}
	return &firebaseTokenVerifier{log: verifierLog, client: client}, nil
}

func (fv *firebaseTokenVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := fv.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("token carries no email claim")
	}
	return strings.ToLower(email), nil
}
