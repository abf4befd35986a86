package repository

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/desuite/desuite-web/backend/internal/config"
	"github.com/stretchr/testify/require"
)

func TestObjectKeysSortInCreationOrder(t *testing.T) {
	var keys []string
	for i := 0; i < 50; i++ {
		id, err := newID()
		require.NoError(t, err)
		keys = append(keys, objectKey("demo-requests/", id))
	}
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	require.Equal(t, keys, sorted)
	require.True(t, strings.HasPrefix(keys[0], "demo-requests/"))
	require.True(t, strings.HasSuffix(keys[0], ".json"))
}

func TestNewMinIORepoRequiresEndpoint(t *testing.T) {
	_, err := NewMinIORepo(context.Background(), config.MinIOConfig{})
	require.Error(t, err)
}
