package schema

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Raw returns the model-facing schema document.
func (c Contract) Raw() json.RawMessage {
	return c.raw
}

// JSONSchema returns the json_schema wrapper used in a chat request's
// response_format: {"name","description","strict","schema"}.
func (c Contract) JSONSchema() (json.RawMessage, error) {
	var doc any
	if err := json.Unmarshal(c.raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", c.Name, err)
	}
	wrapper := map[string]any{
		"name":        "nutriscan_" + c.Name,
		"description": c.Description,
		// Optional extended fields rule out strict mode, which requires
		// every property to be listed as required.
		"strict": false,
		"schema": doc,
	}
	return json.Marshal(wrapper)
}

// ValidationSchema returns the schema used for local validation. It is the
// model-facing schema with advisory enums removed.
func (c Contract) ValidationSchema() (json.RawMessage, error) {
	if len(c.ClampedEnums) == 0 {
		return c.raw, nil
	}
	var root any
	if err := json.Unmarshal(c.raw, &root); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", c.Name, err)
	}
	stripEnums(root, c.ClampedEnums)
	out, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize validation schema %s: %w", c.Name, err)
	}
	return out, nil
}

// Required returns the top-level required property names.
func (c Contract) Required() []string {
	var doc struct {
		Required []string `json:"required"`
	}
	_ = json.Unmarshal(c.raw, &doc)
	return doc.Required
}

// stripEnums removes the enum keyword from any property named in names.
func stripEnums(node any, names []string) {
	switch n := node.(type) {
	case map[string]any:
		if props, ok := n["properties"].(map[string]any); ok {
			for name, prop := range props {
				if !slices.Contains(names, name) {
					continue
				}
				if p, ok := prop.(map[string]any); ok {
					delete(p, "enum")
				}
			}
		}
		for _, v := range n {
			stripEnums(v, names)
		}
	case []any:
		for _, v := range n {
			stripEnums(v, names)
		}
	}
}
