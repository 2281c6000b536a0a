// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"

	fsadapter "vreetory/internal/adapters/out/firestore"
	"vreetory/internal/app"
	appcfg "vreetory/internal/infra/config"
	"vreetory/internal/infra/credentials"
	firestoreinfra "vreetory/internal/infra/firestore"
)

// OpenFirestore は app.OpenFunc の本番実装です。
// Firebase App / Firestore クライアントを作り、users / items のリポジトリを束ねて返します。
func OpenFirestore(ctx context.Context, cfg *appcfg.Config, credFile string) (*app.Backend, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}

	log.Printf("[di] opening firestore with credentials %s", credentials.RedactPath(credFile))

	cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, credFile)
	if err != nil {
		return nil, fmt.Errorf("di: %w", err)
	}

	return &app.Backend{
		Users: fsadapter.NewUserRepositoryFS(cw.Client, cfg.UsersCollection),
		Items: fsadapter.NewItemRepositoryFS(cw.Client, cfg.ItemsCollection),
		Close: cw.Close,
	}, nil
}

var _ app.OpenFunc = OpenFirestore
