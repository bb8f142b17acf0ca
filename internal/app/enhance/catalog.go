package enhance

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the on-disk YAML representation of a named, reusable
// scroll list, the way a scenario file is the on-disk representation of a
// reusable calibration scenario: parse once, hand the result straight into
// a Request.
type CatalogFile struct {
	Name    string        `yaml:"name"`
	Scrolls []ScrollInput `yaml:"scrolls"`
}

// ParseCatalogYAML parses one catalog file's bytes.
func ParseCatalogYAML(data []byte) (CatalogFile, error) {
	var c CatalogFile
	if err := yaml.Unmarshal(data, &c); err != nil {
		return CatalogFile{}, fmt.Errorf("parse catalog: %w", err)
	}
	return c, nil
}
