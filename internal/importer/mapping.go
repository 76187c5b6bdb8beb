package importer

import (
	"fmt"
	"os"

	"github.com/rcalloway/timebill/internal/derive"
	"gopkg.in/yaml.v3"
)

// LoadMapping reads a yaml column mapping file. Fields the file leaves
// out keep their defaults, so a mapping file only needs to name the
// columns that differ from the standard payroll export. An empty path
// returns the default mapping unchanged.
func LoadMapping(path string) (derive.ColumnMapping, error) {
	mapping := derive.DefaultColumnMapping()
	if path == "" {
		return mapping, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mapping, fmt.Errorf("reading column mapping: %w", err)
	}
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return mapping, fmt.Errorf("parsing column mapping: %w", err)
	}
	return mapping, nil
}
