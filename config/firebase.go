package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// InitFirebase initializes the Firebase Admin SDK
func InitFirebase(ctx context.Context, cfg *Config, logger *zap.SugaredLogger) (*firebase.App, error) {
	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	// Check for base64 encoded credentials first
	if cfg.FirebaseCredentialsBase64 != "" {
		logger.Info("using Firebase credentials from base64 environment variable")
		decoded, err := base64.StdEncoding.DecodeString(cfg.FirebaseCredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 credentials: %w", err)
		}
		return firebase.NewApp(ctx, fbConfig, option.WithCredentialsJSON(decoded))
	}

	// Fallback to file-based credentials
	credFile := cfg.FirebaseCredentialsFile
	if credFile == "" {
		for _, path := range []string{"firebase-adminsdk.json", "../firebase-adminsdk.json"} {
			if _, err := os.Stat(path); err == nil {
				credFile = path
				break
			}
		}
	}
	if credFile == "" {
		return nil, fmt.Errorf("firebase credentials not found: set FIREBASE_CREDENTIALS_BASE64 or GOOGLE_APPLICATION_CREDENTIALS")
	}

	logger.Infow("using Firebase credentials file", "path", credFile)
	return firebase.NewApp(ctx, fbConfig, option.WithCredentialsFile(credFile))
}
