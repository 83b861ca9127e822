package kinds

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/goliatone/go-coda/pkg/constraint"
)

// hclFile is the top-level structure of an HCL kind file:
//
//	kind "badge" {
//	  template = "<span>{{ label }}</span>"
//	  defaults = { label = "New" }
//	  constraint "label" {
//	    max_length = 12
//	  }
//	}
type hclFile struct {
	Kinds []*hclKind `hcl:"kind,block"`
}

type hclKind struct {
	Name        string            `hcl:"name,label"`
	Description string            `hcl:"description,optional"`
	Template    string            `hcl:"template,optional"`
	Stylesheets []string          `hcl:"stylesheets,optional"`
	Defaults    map[string]string `hcl:"defaults,optional"`
	Constraints []*hclConstraint  `hcl:"constraint,block"`
}

type hclConstraint struct {
	Field     string   `hcl:"field,label"`
	MinLength *int     `hcl:"min_length,optional"`
	MaxLength *int     `hcl:"max_length,optional"`
	Format    string   `hcl:"format,optional"`
	Enum      []string `hcl:"enum,optional"`
}

func parseHCL(parser *hclparse.Parser, data []byte, source string) (map[string]definition, error) {
	file, diags := parser.ParseHCL(data, source)
	if diags.HasErrors() {
		return nil, fmt.Errorf("kinds: parse %s: %w", source, diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("kinds: decode %s: %w", source, diags)
	}

	defs := make(map[string]definition, len(parsed.Kinds))
	for _, block := range parsed.Kinds {
		if _, exists := defs[block.Name]; exists {
			return nil, fmt.Errorf("kinds: file %s defines kind %q twice", source, block.Name)
		}
		def := definition{
			Description: block.Description,
			Template:    block.Template,
			Stylesheets: block.Stylesheets,
			Constraints: make(map[string]constraint.Rule, len(block.Constraints)),
		}
		if len(block.Defaults) > 0 {
			def.Defaults = make(map[string]any, len(block.Defaults))
			for key, value := range block.Defaults {
				def.Defaults[key] = value
			}
		}
		for _, c := range block.Constraints {
			def.Constraints[c.Field] = constraint.Rule{
				MinLength: c.MinLength,
				MaxLength: c.MaxLength,
				Format:    c.Format,
				Enum:      c.Enum,
			}
		}
		defs[block.Name] = def
	}
	return defs, nil
}
