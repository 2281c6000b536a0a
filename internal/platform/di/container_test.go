package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	appcfg "vreetory/internal/infra/config"
)

func TestOpenFirestoreNilConfig(t *testing.T) {
	b, err := OpenFirestore(context.Background(), nil, "key.json")
	assert.Error(t, err)
	assert.Nil(t, b)
}

func TestOpenFirestoreEmptyCredentials(t *testing.T) {
	b, err := OpenFirestore(context.Background(), &appcfg.Config{}, " ")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "credentials file is empty")
	assert.Nil(t, b)
}
