package progression

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads progression.yaml from dir. A missing file yields the built-in
// ladder.
func Load(dir string) (*Ladder, error) {
	path := filepath.Join(dir, "progression.yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadContent, path, err)
	}

	var doc struct {
		Thresholds []Threshold `yaml:"thresholds"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadContent, path, err)
	}
	if err := validate(doc.Thresholds); err != nil {
		return nil, err
	}
	return New(doc.Thresholds), nil
}

func validate(ts []Threshold) error {
	var problems []string
	levels := map[int]bool{}
	for i, t := range ts {
		if t.Level <= 0 {
			problems = append(problems, fmt.Sprintf("threshold %d: level must be positive", i))
		}
		if t.XP < 0 {
			problems = append(problems, fmt.Sprintf("threshold %d: negative xp", i))
		}
		if levels[t.Level] {
			problems = append(problems, fmt.Sprintf("level %d: duplicate threshold", t.Level))
		}
		levels[t.Level] = true
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
	}
	return nil
}

func defaultThresholds() []Threshold {
	return []Threshold{
		{Level: 1, XP: 10},
		{Level: 2, XP: 30},
		{Level: 3, XP: 75},
		{Level: 4, XP: 150},
		{Level: 5, XP: 300},
		{Level: 6, XP: 600},
		{Level: 7, XP: 1200},
		{Level: 8, XP: 2500},
		{Level: 9, XP: 5000},
		{Level: 10, XP: 10000},
	}
}
