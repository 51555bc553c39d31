package storage

import (
	"context"
	"testing"

	"github.com/familyboard/familyboard/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewMinIOStorageRequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{Bucket: "b"})
	require.Error(t, err)
}
