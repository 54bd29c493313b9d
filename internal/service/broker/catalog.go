package broker

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/config"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// CatalogService serves the static service catalog the broker advertises.
type CatalogService struct {
	catalog domain.Catalog
}

// NewCatalogService creates a CatalogService for a validated catalog.
func NewCatalogService(catalog domain.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Catalog returns the advertised catalog.
func (s *CatalogService) Catalog() domain.Catalog {
	return s.catalog
}

// ServiceDefinitionID returns the ID of the first advertised service, the
// one the broker provisions.
func (s *CatalogService) ServiceDefinitionID() string {
	return s.catalog.Services[0].ID
}

// ResourcePath returns the URL path segment where the advertised service's
// resources are served.
func (s *CatalogService) ResourcePath(serviceType string) string {
	if serviceType == config.ServiceTypeKeyValue {
		return "keyvalue"
	}
	return "bookstores"
}

// LoadCatalog loads the catalog from a YAML file when path is set, otherwise
// returns the built-in catalog for the configured service type.
func LoadCatalog(path, serviceType string) (domain.Catalog, error) {
	var catalog domain.Catalog
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return catalog, fmt.Errorf("read catalog file: %w", err)
		}
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return catalog, fmt.Errorf("parse catalog file: %w", err)
		}
	} else {
		catalog = defaultCatalog(serviceType)
	}
	if err := catalog.Validate(); err != nil {
		return catalog, err
	}
	return catalog, nil
}

func defaultCatalog(serviceType string) domain.Catalog {
	if serviceType == config.ServiceTypeKeyValue {
		return domain.Catalog{Services: []domain.ServiceDefinition{{
			ID:          "a3b9f0da-d203-4b52-b91b-364303f0825b",
			Name:        "keyvalue",
			Description: "A simple key-value service",
			Bindable:    true,
			Tags:        []string{"key-value", "sample"},
			Plans: []domain.Plan{{
				ID:          "59fc93e8-1b02-4e24-bd4a-b8e62431b0f2",
				Name:        "standard",
				Description: "A standard plan",
				Free:        true,
			}},
			Metadata: map[string]string{
				"displayName":         "keyvalue",
				"longDescription":     "A simple key-value service",
				"providerDisplayName": "Acme Books",
			},
		}}}
	}
	return domain.Catalog{Services: []domain.ServiceDefinition{{
		ID:          "bdb1be2e-360b-495c-8115-d7697f9c6a9e",
		Name:        "bookstore",
		Description: "A simple book store service",
		Bindable:    true,
		Tags:        []string{"book-store", "books", "sample"},
		Plans: []domain.Plan{{
			ID:          "b973fb78-82f3-49ef-9b8b-c1876974a6cd",
			Name:        "standard",
			Description: "A standard book store plan",
			Free:        true,
		}},
		Metadata: map[string]string{
			"displayName":         "bookstore",
			"longDescription":     "A simple book store service",
			"providerDisplayName": "Acme Books",
		},
	}}}
}
