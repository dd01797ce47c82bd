package layouts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Registry holds the known layout definitions. The two built-ins are
// always present; YAML files can restyle them or add variants.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
	fallback    Layout
	logger      *zap.Logger
}

// NewRegistry creates a registry with the built-in definitions
// registered. The fallback layout is used when no layout is requested;
// anything unparseable still normalizes to compact.
func NewRegistry(fallback Layout, logger *zap.Logger) *Registry {
	if fallback != Classic && fallback != Compact {
		fallback = Classic
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		definitions: map[string]*Definition{
			string(Classic): classicDefinition(),
			string(Compact): compactDefinition(),
		},
		fallback: fallback,
		logger:   logger,
	}
}

// Normalize corrects a stored layout preference: the two known literals
// pass through, the empty string falls back to the configured default and
// any other value is corrected to compact.
func (r *Registry) Normalize(name string) Layout {
	switch Layout(name) {
	case Classic, Compact:
		return Layout(name)
	}
	if name == "" {
		return r.fallback
	}
	return Compact
}

// Get returns the definition for a layout preference, applying Normalize
// first so the result is never nil.
func (r *Registry) Get(name string) *Definition {
	layout := r.Normalize(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.definitions[string(layout)]
}

// Lookup returns a definition by exact name, nil when unknown.
func (r *Registry) Lookup(name string) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.definitions[name]
}

// List returns all definitions sorted by name.
func (r *Registry) List() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Definition, 0, len(r.definitions))
	for _, d := range r.definitions {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// LoadFromDir loads all YAML layout files from a directory. A missing
// directory is not an error; a broken file is logged and skipped.
func (r *Registry) LoadFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read layouts dir: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := r.LoadFromFile(path); err != nil {
			r.logger.Warn("failed to load layout file",
				zap.String("file", path),
				zap.Error(err),
			)
			continue
		}
		loaded++
	}

	r.logger.Info("layouts loaded",
		zap.String("dir", dir),
		zap.Int("count", loaded),
	)
	return nil
}

// LoadFromFile loads a single layout definition. Fields left out of the
// file keep the built-in values when the name matches a known layout.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var file Definition
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if file.Name == "" {
		return fmt.Errorf("layout name is required")
	}
	for _, region := range file.Regions {
		for _, block := range region.Blocks {
			if block.SectionOf() == "" {
				return fmt.Errorf("unknown block %q", block)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	def := r.definitions[file.Name]
	if def == nil {
		def = &Definition{Name: file.Name}
		r.definitions[file.Name] = def
	}
	if len(file.Regions) > 0 {
		def.Regions = file.Regions
	}
	if len(file.Headings) > 0 {
		if def.Headings == nil {
			def.Headings = map[Block]string{}
		}
		for block, heading := range file.Headings {
			def.Headings[block] = heading
		}
	}
	if len(file.Empty) > 0 {
		if def.Empty == nil {
			def.Empty = map[Block]string{}
		}
		for block, text := range file.Empty {
			def.Empty[block] = text
		}
	}
	if file.NamePlaceholder != "" {
		def.NamePlaceholder = file.NamePlaceholder
	}

	return nil
}
