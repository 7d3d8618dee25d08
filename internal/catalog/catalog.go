// Package catalog holds the selectable options for each product category.
// A Catalog is immutable once built and is safe to share between goroutines.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gosimple/slug"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"gopkg.in/yaml.v3"
)

// Category is one of the four product dimensions.
type Category string

const (
	Frame  Category = "frame"
	Rope   Category = "rope"
	Carpet Category = "carpet"
	Mount  Category = "mount"
)

// Categories lists every category in wizard order.
var Categories = []Category{Frame, Rope, Carpet, Mount}

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownOption   = errors.New("unknown option")
)

// ParseCategory accepts a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Option is a single selectable catalog entry.
type Option struct {
	ID          string      `yaml:"id"`
	Name        locale.Text `yaml:"name"`
	AssetRef    string      `yaml:"asset"`
	Description locale.Text `yaml:"description,omitempty"`
}

// Catalog is the read-only option set shared by every session.
type Catalog struct {
	options map[Category][]Option
	index   map[Category]map[string]int
}

// file mirrors the on-disk YAML layout.
type file struct {
	Frames  []Option `yaml:"frames"`
	Ropes   []Option `yaml:"ropes"`
	Carpets []Option `yaml:"carpets"`
	Mounts  []Option `yaml:"mounts"`
}

//go:embed catalog.yaml
var builtin []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(builtin)
		if err != nil {
			panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog. Options without an id get one derived from
// their English name.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(map[Category][]Option{
		Frame:  f.Frames,
		Rope:   f.Ropes,
		Carpet: f.Carpets,
		Mount:  f.Mounts,
	})
}

// New builds a catalog from per-category option lists.
func New(options map[Category][]Option) (*Catalog, error) {
	c := &Catalog{
		options: make(map[Category][]Option, len(Categories)),
		index:   make(map[Category]map[string]int, len(Categories)),
	}
	for cat, opts := range options {
		if _, err := ParseCategory(string(cat)); err != nil {
			return nil, err
		}
		list := make([]Option, 0, len(opts))
		idx := make(map[string]int, len(opts))
		for i, o := range opts {
			if o.ID == "" {
				o.ID = slug.Make(o.Name.Get(locale.English))
			}
			if o.ID == "" {
				return nil, fmt.Errorf("%s option %d has neither id nor English name", cat, i)
			}
			if _, dup := idx[o.ID]; dup {
				return nil, fmt.Errorf("duplicate %s id %q", cat, o.ID)
			}
			idx[o.ID] = len(list)
			list = append(list, o)
		}
		c.options[cat] = list
		c.index[cat] = idx
	}
	return c, nil
}

// Options returns a copy of the options for a category, in catalog order.
func (c *Catalog) Options(cat Category) []Option {
	return append([]Option(nil), c.options[cat]...)
}

// Lookup finds an option by id.
func (c *Catalog) Lookup(cat Category, id string) (Option, bool) {
	i, ok := c.index[cat][id]
	if !ok {
		return Option{}, false
	}
	return c.options[cat][i], true
}

// Has reports whether id names an option in the category.
func (c *Catalog) Has(cat Category, id string) bool {
	_, ok := c.index[cat][id]
	return ok
}

// Name resolves an id to its display name in lang.
func (c *Catalog) Name(cat Category, id string, lang locale.Language) (string, bool) {
	o, ok := c.Lookup(cat, id)
	if !ok {
		return "", false
	}
	return o.Name.Get(lang), true
}
