// Package catalog holds the fixed list of agricultural categories shown in the menu.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yml
var embeddedCategories []byte

// QuitKey ends the program from the category menu. It is never a catalog key.
const QuitKey = "q"

var (
	ErrInvalidKey       = errors.New("category key must be a single digit")
	ErrDuplicateKey     = errors.New("duplicate category key")
	ErrEmptyDescription = errors.New("category description is empty")
)

type Category struct {
	Key         string `yaml:"key"`
	Description string `yaml:"description"`
}

// Catalog is immutable after construction.
type Catalog struct {
	categories []Category
	byKey      map[string]Category
}

func New(categories []Category) (*Catalog, error) {
	byKey := make(map[string]Category, len(categories))
	for _, category := range categories {
		if !isDigitKey(category.Key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, category.Key)
		}
		if _, ok := byKey[category.Key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, category.Key)
		}
		if strings.TrimSpace(category.Description) == "" {
			return nil, fmt.Errorf("%w: key %q", ErrEmptyDescription, category.Key)
		}
		byKey[category.Key] = category
	}

	ordered := make([]Category, len(categories))
	copy(ordered, categories)
	return &Catalog{
		categories: ordered,
		byKey:      byKey,
	}, nil
}

// Parse decodes a YAML sequence of categories, keeping document order.
func Parse(data []byte) (*Catalog, error) {
	var categories []Category
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&categories); err != nil {
		return nil, fmt.Errorf("yaml.Decode() > %w", err)
	}
	return New(categories)
}

// Default returns the built-in agricultural categories.
func Default() *Catalog {
	c, err := Parse(embeddedCategories)
	if err != nil {
		panic(fmt.Errorf("embedded categories.yml is broken: %w", err))
	}
	return c
}

func (c *Catalog) Lookup(key string) (Category, bool) {
	category, ok := c.byKey[key]
	return category, ok
}

// Categories returns the categories in menu order.
func (c *Catalog) Categories() []Category {
	result := make([]Category, len(c.categories))
	copy(result, c.categories)
	return result
}

func (c *Catalog) Len() int {
	return len(c.categories)
}

func IsQuit(input string) bool {
	return strings.EqualFold(input, QuitKey)
}

func isDigitKey(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
