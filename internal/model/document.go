package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalDocument renders s as an editable YAML document. The ID appears only
// in the header comment since it cannot be changed.
func MarshalDocument(s Store) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	addStringField(doc, "store_name", s.StoreName)
	addStringField(doc, "address", s.Address)
	addStringField(doc, "manager_name", s.ManagerName)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode store: %w", err)
	}

	header := fmt.Sprintf("# Editing store %s\n# Save and close editor to apply changes. Exit without saving to cancel.\n\n", s.ID)
	return append([]byte(header), data...), nil
}

// UnmarshalDocument parses an edited document back into a Draft.
// Unknown keys (including an id) are ignored.
func UnmarshalDocument(data []byte) (Draft, error) {
	var d Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("invalid YAML: %w", err)
	}
	return d, nil
}

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}
