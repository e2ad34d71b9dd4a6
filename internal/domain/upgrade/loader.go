package upgrade

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads upgrades.yaml from dir. A missing file yields the built-in
// defaults; a present but invalid one is an error.
func Load(dir string) ([]Def, error) {
	path := filepath.Join(dir, "upgrades.yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadContent, path, err)
	}

	var doc struct {
		Upgrades []Def `yaml:"upgrades"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadContent, path, err)
	}
	if err := validate(doc.Upgrades); err != nil {
		return nil, err
	}
	return doc.Upgrades, nil
}

func validate(defs []Def) error {
	var problems []string
	seen := map[string]bool{}
	for i, d := range defs {
		if d.ID == "" {
			problems = append(problems, fmt.Sprintf("upgrade %d: empty id", i))
			continue
		}
		if seen[d.ID] {
			problems = append(problems, fmt.Sprintf("upgrade %q: duplicate id", d.ID))
		}
		seen[d.ID] = true
		if d.LevelCap <= 0 {
			problems = append(problems, fmt.Sprintf("upgrade %q: level_cap must be positive", d.ID))
		}
		for _, c := range d.CostPerLevel {
			if c < 0 {
				problems = append(problems, fmt.Sprintf("upgrade %q: negative cost", d.ID))
				break
			}
		}
	}
	for _, d := range defs {
		for req := range d.Requires {
			if !seen[req] {
				problems = append(problems, fmt.Sprintf("upgrade %q: requires unknown upgrade %q", d.ID, req))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
	}
	return nil
}
