package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yml
var categoriesYAML []byte

type categoryFixture struct {
	Categories []string `yaml:"categories"`
}

// Categories returns the fixed category vocabulary used by the seeder.
func Categories() ([]string, error) {
	var fixture categoryFixture
	if err := yaml.Unmarshal(categoriesYAML, &fixture); err != nil {
		return nil, fmt.Errorf("parse category fixtures: %w", err)
	}
	if len(fixture.Categories) == 0 {
		return nil, fmt.Errorf("category fixtures are empty")
	}
	return fixture.Categories, nil
}
