package broker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/config"
)

func TestLoadCatalogDefaults(t *testing.T) {
	t.Run("bookstore", func(t *testing.T) {
		catalog, err := LoadCatalog("", config.ServiceTypeBookStore)
		require.NoError(t, err)
		require.Len(t, catalog.Services, 1)
		svc := catalog.Services[0]
		assert.Equal(t, "bdb1be2e-360b-495c-8115-d7697f9c6a9e", svc.ID)
		assert.Equal(t, "bookstore", svc.Name)
		assert.True(t, svc.Bindable)
		require.Len(t, svc.Plans, 1)
		assert.Equal(t, "b973fb78-82f3-49ef-9b8b-c1876974a6cd", svc.Plans[0].ID)
		assert.True(t, svc.Plans[0].Free)
	})

	t.Run("keyvalue", func(t *testing.T) {
		catalog, err := LoadCatalog("", config.ServiceTypeKeyValue)
		require.NoError(t, err)
		require.Len(t, catalog.Services, 1)
		assert.Equal(t, "keyvalue", catalog.Services[0].Name)
	})
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	yaml := `services:
  - id: svc-1
    name: custom
    description: A custom service
    bindable: true
    plans:
      - id: plan-1
        name: basic
        description: Basic plan
        free: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	catalog, err := LoadCatalog(path, config.ServiceTypeBookStore)
	require.NoError(t, err)
	require.Len(t, catalog.Services, 1)
	assert.Equal(t, "custom", catalog.Services[0].Name)
	assert.Equal(t, "plan-1", catalog.Services[0].Plans[0].ID)
}

func TestLoadCatalogInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte("services: []\n"), 0o600))

	_, err := LoadCatalog(path, config.ServiceTypeBookStore)
	assert.Error(t, err)
}

func TestCatalogServiceResourcePath(t *testing.T) {
	catalog, err := LoadCatalog("", config.ServiceTypeBookStore)
	require.NoError(t, err)
	svc := NewCatalogService(catalog)

	assert.Equal(t, "bookstores", svc.ResourcePath(config.ServiceTypeBookStore))
	assert.Equal(t, "keyvalue", svc.ResourcePath(config.ServiceTypeKeyValue))
	assert.Equal(t, "bdb1be2e-360b-495c-8115-d7697f9c6a9e", svc.ServiceDefinitionID())
}
