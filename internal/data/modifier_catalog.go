package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Excaliburns/Placebo/internal/modifier"
)

var (
	// ErrUnknownModifier is returned when a definition name is not in the catalog.
	ErrUnknownModifier = errors.New("unknown modifier definition")
	// ErrDuplicateModifierName is returned in strict mode when two files map to
	// the same definition name ("boost.json" and "boost.yaml").
	ErrDuplicateModifierName = errors.New("duplicate modifier definition name")
)

// ModifierCatalog holds named modifier definitions loaded from a directory.
// Names are the slash-separated file path without extension ("weapons/sharp").
type ModifierCatalog struct {
	byName map[string]*modifier.Definition
}

// Get returns the definition with the given name.
func (c *ModifierCatalog) Get(name string) (*modifier.Definition, bool) {
	def, ok := c.byName[name]
	return def, ok
}

// Names returns all definition names, sorted.
func (c *ModifierCatalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of loaded definitions.
func (c *ModifierCatalog) Len() int {
	return len(c.byName)
}

// LoadModifierCatalog parses every *.json, *.yaml and *.yml file under dir.
// See LoadModifierCatalogFS.
func LoadModifierCatalog(ctx context.Context, dir string, parser *modifier.Parser, strict bool) (*ModifierCatalog, error) {
	return LoadModifierCatalogFS(ctx, os.DirFS(dir), parser, strict)
}

// LoadModifierCatalogFS parses definition files from fsys concurrently.
//
// strict=true aborts on the first failing file or duplicate name; strict=false
// logs the failure and skips that file. Of two files with the same name the
// first in lexical path order is kept. Definitions whose content-derived IDs collide are logged:
// they describe the same modifier and will replace each other when applied.
func LoadModifierCatalogFS(ctx context.Context, fsys fs.FS, parser *modifier.Parser, strict bool) (*ModifierCatalog, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && definitionExt(p) != "" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking modifier directory: %w", err)
	}
	sort.Strings(files)

	// Results are indexed by position in files so name collisions resolve in sorted order.
	defs := make([]*modifier.Definition, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			def, err := parseDefinitionFile(fsys, file, parser)
			if err != nil {
				if strict {
					return fmt.Errorf("loading modifier %s: %w", file, err)
				}
				slog.Warn("skipping invalid modifier", "file", file, "err", err)
				return nil
			}
			defs[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byName := make(map[string]*modifier.Definition, len(files))
	source := make(map[string]string, len(files))
	skipped := 0
	for i, file := range files {
		def := defs[i]
		if def == nil {
			skipped++
			continue
		}
		name := definitionName(file)
		if first, dup := source[name]; dup {
			if strict {
				return nil, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateModifierName, name, first, file)
			}
			slog.Warn("skipping modifier with duplicate name", "name", name, "kept", first, "file", file)
			skipped++
			continue
		}
		byName[name] = def
		source[name] = file
	}

	catalog := &ModifierCatalog{byName: byName}
	catalog.logDuplicateIDs()

	slog.Info("loaded modifier catalog", "count", len(byName), "skipped", skipped)
	return catalog, nil
}

func parseDefinitionFile(fsys fs.FS, file string, parser *modifier.Parser) (*modifier.Definition, error) {
	raw, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}

	if definitionExt(file) == ".json" {
		return parser.Parse(raw)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return parser.ParseYAML(&node)
}

func (c *ModifierCatalog) logDuplicateIDs() {
	seen := make(map[uuid.UUID]string, len(c.byName))
	for _, name := range c.Names() {
		id := c.byName[name].ID()
		if first, ok := seen[id]; ok {
			slog.Warn("modifiers share an id", "first", first, "second", name, "id", id)
			continue
		}
		seen[id] = name
	}
}

func definitionExt(p string) string {
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".json", ".yaml", ".yml":
		if ext == ".yml" {
			return ".yaml"
		}
		return ext
	}
	return ""
}

func definitionName(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}
