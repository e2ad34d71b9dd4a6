package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File names expected under the content directory.
const (
	tiersFile  = "tiers.yaml"
	prizesFile = "prizes.yaml"
)

type tiersDoc struct {
	Tiers []Tier `yaml:"tiers"`
}

type prizesDoc struct {
	Tables map[string][]PrizeWeight `yaml:"tables"`
}

// Load reads tier and prize-table content from dir. Missing files fall back
// to the built-in defaults; malformed files fail fast, since a broken
// catalog must never silently produce an empty game.
func Load(dir string) (*Catalog, error) {
	tiers := defaultTiers()
	tables := defaultTables()

	var td tiersDoc
	found, err := readYAML(filepath.Join(dir, tiersFile), &td)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadContent, err)
	}
	if found {
		tiers = td.Tiers
	}

	var pd prizesDoc
	found, err = readYAML(filepath.Join(dir, prizesFile), &pd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadContent, err)
	}
	if found {
		tables = pd.Tables
	}

	if err := validate(tiers, tables); err != nil {
		return nil, err
	}
	return New(tiers, tables), nil
}

// Default returns the built-in content without touching the filesystem.
func Default() *Catalog {
	return New(defaultTiers(), defaultTables())
}

// readYAML loads one YAML file into out. Missing files report found=false
// with no error.
func readYAML(path string, out any) (found bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return true, nil
}

// validate checks semantic constraints across tiers and prize tables.
func validate(tiers []Tier, tables map[string][]PrizeWeight) error {
	var errs []string

	seen := make(map[string]bool, len(tiers))
	for i, t := range tiers {
		switch {
		case t.ID == "":
			errs = append(errs, fmt.Sprintf("tiers[%d].id must not be empty", i))
		case seen[t.ID]:
			errs = append(errs, fmt.Sprintf("tiers[%d].id %q duplicated", i, t.ID))
		}
		seen[t.ID] = true
		if t.Price <= 0 {
			errs = append(errs, fmt.Sprintf("tier %s: price must be >= 1", t.ID))
		}
		if t.Cols() <= 0 || t.Rows() <= 0 {
			errs = append(errs, fmt.Sprintf("tier %s: grid must be positive", t.ID))
		}
		if t.Mechanics.WinningNumbers < 1 || t.Mechanics.WinningNumbers > 20 {
			errs = append(errs, fmt.Sprintf("tier %s: winning_numbers must be in 1..20", t.ID))
		}
		if _, ok := tables[t.ID]; !ok {
			errs = append(errs, fmt.Sprintf("tier %s: no prize table", t.ID))
		}
	}

	for id, rows := range tables {
		for i, r := range rows {
			if r.Weight < 0 {
				errs = append(errs, fmt.Sprintf("table %s[%d]: weight must be >= 0", id, i))
			}
			if r.Prize < 0 {
				errs = append(errs, fmt.Sprintf("table %s[%d]: prize must be >= 0", id, i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(errs, "; "))
	}
	return nil
}
