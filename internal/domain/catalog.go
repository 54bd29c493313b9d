package domain

// Plan describes a service plan offered in the catalog.
type Plan struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Free        bool   `yaml:"free" json:"free"`
}

// ServiceDefinition describes a service offering in the catalog.
type ServiceDefinition struct {
	ID          string            `yaml:"id" json:"id"`
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	Bindable    bool              `yaml:"bindable" json:"bindable"`
	Tags        []string          `yaml:"tags" json:"tags,omitempty"`
	Plans       []Plan            `yaml:"plans" json:"plans"`
	Metadata    map[string]string `yaml:"metadata" json:"metadata,omitempty"`
}

// Catalog is the set of services the broker advertises to the platform.
type Catalog struct {
	Services []ServiceDefinition `yaml:"services" json:"services"`
}

// Validate checks that the catalog is usable: every service needs an ID,
// a name, and at least one plan with an ID.
func (c *Catalog) Validate() error {
	if len(c.Services) == 0 {
		return ErrValidation("catalog must define at least one service")
	}
	for _, svc := range c.Services {
		if svc.ID == "" || svc.Name == "" {
			return ErrValidation("service definitions require id and name")
		}
		if len(svc.Plans) == 0 {
			return ErrValidation("service %q must define at least one plan", svc.Name)
		}
		for _, p := range svc.Plans {
			if p.ID == "" || p.Name == "" {
				return ErrValidation("plans of service %q require id and name", svc.Name)
			}
		}
	}
	return nil
}
