// Package seeds loads the built-in checklist template definitions into
// the database on startup. Versions already present are left untouched.
package seeds

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type templateFile struct {
	Templates []checklist.Template `yaml:"templates"`
}

// SeedTemplates reads template definitions from path and persists any
// version the repository does not already hold.
func SeedTemplates(ctx context.Context, path string, repo checklist.TemplateRepository, log logger.Interface) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template seed file: %w", err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse template seed file: %w", err)
	}

	for i := range file.Templates {
		t := &file.Templates[i]
		if err := validateTemplate(t); err != nil {
			return fmt.Errorf("invalid template %q: %w", t.Version, err)
		}
		if err := repo.Save(ctx, t); err != nil {
			return fmt.Errorf("failed to seed template %q: %w", t.Version, err)
		}
		log.Infow("checklist template seeded", "version", t.Version, "type", t.Type)
	}

	return nil
}

func validateTemplate(t *checklist.Template) error {
	if t.Version == "" {
		return fmt.Errorf("version is required")
	}
	if t.Type == "" {
		return fmt.Errorf("type is required")
	}
	if len(t.Sections) == 0 {
		return fmt.Errorf("at least one section is required")
	}

	seen := make(map[string]bool)
	for _, section := range t.Sections {
		if section.Key == "" {
			return fmt.Errorf("section key is required")
		}
		if len(section.Items) == 0 {
			return fmt.Errorf("section %s has no items", section.Key)
		}
		for _, item := range section.Items {
			if item.Key == "" {
				return fmt.Errorf("item key is required in section %s", section.Key)
			}
			if seen[item.Key] {
				return fmt.Errorf("duplicate item key %s", item.Key)
			}
			seen[item.Key] = true
		}
	}
	return nil
}
