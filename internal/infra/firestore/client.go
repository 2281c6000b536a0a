// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// ClientWrapper は Firebase App と Firestore クライアントをまとめて保持します。
type ClientWrapper struct {
	App       *firebase.App
	Client    *firestore.Client
	ProjectID string
}

// NewClient は Firebase Admin SDK 経由で Firestore クライアントを初期化します。
// projectID が空文字の場合、サービスアカウントキーの project_id を使用します。
func NewClient(ctx context.Context, projectID string, credentialsFile string) (*ClientWrapper, error) {
	credentialsFile = strings.TrimSpace(credentialsFile)
	if credentialsFile == "" {
		return nil, fmt.Errorf("firestore: credentials file is empty")
	}

	var fbCfg *firebase.Config
	if p := strings.TrimSpace(projectID); p != "" {
		fbCfg = &firebase.Config{ProjectID: p}
	}

	app, err := firebase.NewApp(ctx, fbCfg, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	shown := projectID
	if shown == "" {
		shown = "(from credentials)"
	}
	log.Printf("[fs.infra] ✅ Firestore connected (project: %s)", shown)
	return &ClientWrapper{App: app, Client: client, ProjectID: projectID}, nil
}

// Close は Firestore クライアントをクローズします。
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
