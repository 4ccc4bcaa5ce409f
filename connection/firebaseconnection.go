package connection

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"tasktracker/config"
)

// FBConnection opens a Firestore client through the Firebase Admin SDK. With
// FIRESTORE_EMULATOR_HOST set the credentials file may be omitted.
func FBConnection(ctx context.Context, cfg config.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredential != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredential))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firestore client: %w", err)
	}

	log.Printf("Firestore connection successful (project %s)", cfg.FirebaseProjectID)
	return client, nil
}
