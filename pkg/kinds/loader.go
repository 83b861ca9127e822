package kinds

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
)

// LoadFS walks fsys and parses every kind definition file (.json, .yaml,
// .yml, .hcl) into a catalog. A nil filesystem yields an empty catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}

	parser := hclparse.NewParser()
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !isDefinitionFile(ext) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("kinds: read %s: %w", path, err)
		}

		var defs map[string]definition
		if ext == ".hcl" {
			defs, err = parseHCL(parser, data, path)
		} else {
			defs, err = parseDocument(data, path)
		}
		if err != nil {
			return err
		}

		for name, def := range defs {
			kind, err := def.kind(name, path)
			if err != nil {
				return err
			}
			if catalog.Has(kind.Name) {
				return fmt.Errorf("kinds: duplicate kind %q (file %s)", kind.Name, path)
			}
			if err := catalog.Register(kind); err != nil {
				return fmt.Errorf("kinds: file %s: %w", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

type documentFile struct {
	Kinds map[string]definition `json:"kinds" yaml:"kinds"`
}

type definition struct {
	Description string                     `json:"description" yaml:"description"`
	Template    string                     `json:"template" yaml:"template"`
	Stylesheets []string                   `json:"stylesheets" yaml:"stylesheets"`
	Defaults    map[string]any             `json:"defaults" yaml:"defaults"`
	Constraints map[string]constraint.Rule `json:"constraints" yaml:"constraints"`
}

func (d definition) kind(name, source string) (component.Kind, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return component.Kind{}, fmt.Errorf("kinds: file %s defines a kind with an empty name", source)
	}
	set, err := constraint.NewSet(d.Constraints)
	if err != nil {
		return component.Kind{}, fmt.Errorf("kinds: kind %q (file %s): %w", trimmed, source, err)
	}
	return component.Kind{
		Name:        trimmed,
		Description: strings.TrimSpace(d.Description),
		Defaults:    content.Model(d.Defaults).Clone(),
		Constraints: set,
		Template:    strings.TrimSpace(d.Template),
		Stylesheets: append([]string(nil), d.Stylesheets...),
	}, nil
}

func parseDocument(data []byte, source string) (map[string]definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("kinds: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.Kinds, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc.Kinds, nil
	}
	return nil, fmt.Errorf("kinds: parse %s: invalid JSON or YAML", source)
}

func isDefinitionFile(ext string) bool {
	switch ext {
	case ".json", ".yaml", ".yml", ".hcl":
		return true
	default:
		return false
	}
}
