package authutils

import (
	"context"
	"fmt"

	"troubleshoot-titans/internal/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// NewFirebaseApp инициализирует Firebase App из файла ключа сервис-аккаунта.
func NewFirebaseApp(ctx context.Context, credentialsPath, projectID string) (*firebase.App, error) {
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, cfg, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to init Firebase app from '%s': %w", credentialsPath, err)
	}
	return app, nil
}

// idTokenVerifier - часть *auth.Client, нужная верификатору.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier проверяет ID-токены Firebase Authentication.
type FirebaseVerifier struct {
	client idTokenVerifier
	logger *zap.Logger
}

var _ TokenVerifier = (*FirebaseVerifier)(nil)

func NewFirebaseVerifier(ctx context.Context, app *firebase.App, logger *zap.Logger) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase auth client: %w", err)
	}
	return newFirebaseVerifier(client, logger), nil
}

func newFirebaseVerifier(client idTokenVerifier, logger *zap.Logger) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, logger: logger.Named("FirebaseVerifier")}
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, idToken string) (*models.Session, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.logger.Warn("Failed to verify ID token", zap.String("tokenSnippet", tokenSnippet(idToken)), zap.Error(err))
		if auth.IsIDTokenExpired(err) {
			return nil, models.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", models.ErrTokenInvalid, err)
	}

	session := &models.Session{UserID: token.UID, Provider: ProviderFirebase}
	if name, ok := token.Claims["name"].(string); ok {
		session.DisplayName = name
	}
	if email, ok := token.Claims["email"].(string); ok {
		session.Email = email
	}
	return session, nil
}
