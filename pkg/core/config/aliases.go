package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"equity_screener/pkg/core/statement"
)

// LoadAliases reads a YAML file of field alias overrides and merges it
// over the built-in table. An empty path returns the defaults. The file
// maps concept names to ordered alias lists:
//
//	total_debt:
//	  - "Total Debt"
//	  - "Net Debt"
func LoadAliases(path string) (statement.AliasTable, error) {
	table := statement.DefaultAliases()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias file: %w", err)
	}

	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing alias file %s: %w", path, err)
	}

	table.Merge(overrides)
	return table, nil
}
