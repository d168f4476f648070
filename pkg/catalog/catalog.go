package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/umbraworks/darkfall/pkg/domain"
)

//go:embed data/world-genres.json data/attribute-options.json
var seedFS embed.FS

// Catalog is the static master data consumed by the front ends: world genres
// and attribute options grouped by category. It is loaded once from the
// embedded seed files and read-only afterwards.
type Catalog struct {
	genres  []domain.WorldGenre
	options []domain.AttributeOption
}

// Load parses the embedded seed data.
func Load() (*Catalog, error) {
	genreBytes, err := seedFS.ReadFile("data/world-genres.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read world genre seed: %w", err)
	}
	var genres []domain.WorldGenre
	if err := json.Unmarshal(genreBytes, &genres); err != nil {
		return nil, fmt.Errorf("failed to parse world genre seed: %w", err)
	}

	optionBytes, err := seedFS.ReadFile("data/attribute-options.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read attribute option seed: %w", err)
	}
	var options []domain.AttributeOption
	if err := json.Unmarshal(optionBytes, &options); err != nil {
		return nil, fmt.Errorf("failed to parse attribute option seed: %w", err)
	}

	return &Catalog{genres: genres, options: options}, nil
}

// WorldGenres returns all world genres in seed order.
func (c *Catalog) WorldGenres() []domain.WorldGenre {
	return append([]domain.WorldGenre(nil), c.genres...)
}

// CharacterTraits returns the selectable character trait options.
func (c *Catalog) CharacterTraits() []domain.AttributeOption {
	return c.byCategory(domain.CategoryCharacterTrait)
}

// DarknessOptions returns the darkness options grouped by category, with
// CategoryCharacterTrait excluded: traits belong to the character input, not
// to the darkness selection.
func (c *Catalog) DarknessOptions() map[domain.AttributeCategory][]domain.AttributeOption {
	grouped := make(map[domain.AttributeCategory][]domain.AttributeOption)
	for _, category := range domain.DarknessCategories() {
		grouped[category] = c.byCategory(category)
	}
	return grouped
}

// FindGenre resolves a world genre by name.
func (c *Catalog) FindGenre(name string) (domain.WorldGenre, bool) {
	for _, g := range c.genres {
		if g.Name == name {
			return g, true
		}
	}
	return domain.WorldGenre{}, false
}

// FindOption resolves an attribute option by category and name.
func (c *Catalog) FindOption(category domain.AttributeCategory, name string) (domain.AttributeOption, bool) {
	for _, o := range c.options {
		if o.Category == category && o.Name == name {
			return o, true
		}
	}
	return domain.AttributeOption{}, false
}

func (c *Catalog) byCategory(category domain.AttributeCategory) []domain.AttributeOption {
	var out []domain.AttributeOption
	for _, o := range c.options {
		if o.Category == category {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
