package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/nxcfg/pkg/util"
)

// Top-level keys of a manifest document. Host variable files may carry
// other keys; they are ignored.
const (
	keyDevice     = "device"
	keyInterfaces = "interfaces"
	keyVLANs      = "vlans"
	keySwitch     = "switch"
)

// Load reads and parses a manifest file. The device label defaults to the
// file name without its extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Device == "" {
		m.Device = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	util.WithDevice(m.Device).Debugf("loaded manifest: %d interfaces, %d vlans", m.Interfaces.Len(), m.VLANs.Len())
	return m, nil
}

// Parse decodes a manifest document. Mapping order in the document is the
// order entries are generated in.
func Parse(data []byte) (*Manifest, error) {
	m := New("")

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		// Empty document
		return m, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: expected a YAML document", util.ErrInvalidManifest)
	}

	root := doc.Content[0]
	if isNull(root) {
		return m, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping (line %d)", util.ErrInvalidManifest, root.Line)
	}

	// Interfaces/VLANs may sit under a "switch" key.
	if sw := mappingValue(root, keySwitch); sw != nil && sw.Kind == yaml.MappingNode {
		root = sw
	}

	if dev := mappingValue(root, keyDevice); dev != nil && dev.Kind == yaml.ScalarNode {
		m.Device = dev.Value
	}

	if node := mappingValue(root, keyInterfaces); node != nil {
		if err := m.Interfaces.UnmarshalYAML(node); err != nil {
			return nil, err
		}
	}
	if node := mappingValue(root, keyVLANs); node != nil {
		if err := m.VLANs.UnmarshalYAML(node); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// UnmarshalYAML decodes a mapping of interface name to settings, keeping
// key order.
func (m *InterfaceManifest) UnmarshalYAML(node *yaml.Node) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: interfaces must be a mapping (line %d)", util.ErrInvalidManifest, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		name := keyNode.Value
		if name == "" {
			return fmt.Errorf("%w: empty interface name (line %d)", util.ErrInvalidManifest, keyNode.Line)
		}

		entry := &InterfaceEntry{}
		if !isNull(valueNode) {
			if err := valueNode.Decode(entry); err != nil {
				return fmt.Errorf("interface %s: %w", name, err)
			}
		}
		m.Add(name, entry)
	}
	return nil
}

// UnmarshalYAML decodes a mapping of VLAN ID to settings, keeping key order.
func (m *VLANManifest) UnmarshalYAML(node *yaml.Node) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: vlans must be a mapping (line %d)", util.ErrInvalidManifest, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		id, err := strconv.Atoi(keyNode.Value)
		if err != nil {
			return fmt.Errorf("%w: VLAN key %q is not an integer (line %d)", util.ErrInvalidManifest, keyNode.Value, keyNode.Line)
		}

		entry := &VLANEntry{}
		if !isNull(valueNode) {
			if err := valueNode.Decode(entry); err != nil {
				return fmt.Errorf("vlan %d: %w", id, err)
			}
		}
		m.Add(id, entry)
	}
	return nil
}

// VLANList is an ordered list of VLAN IDs. In YAML it may be a sequence of
// integers, a single integer, or a range string such as "10,20-22".
type VLANList []int

// UnmarshalYAML implements yaml.Unmarshaler
func (l *VLANList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var ids []int
		if err := node.Decode(&ids); err != nil {
			return fmt.Errorf("tagged: %w", err)
		}
		*l = ids
		return nil
	case yaml.ScalarNode:
		if isNull(node) {
			*l = VLANList{}
			return nil
		}
		ids, err := util.ExpandVLANRange(node.Value)
		if err != nil {
			return fmt.Errorf("tagged: %w", err)
		}
		*l = ids
		return nil
	default:
		return fmt.Errorf("%w: tagged must be a list or range string (line %d)", util.ErrInvalidManifest, node.Line)
	}
}

// MemberList is an ordered list of member interface names. In YAML it may
// be a sequence or a comma-separated string.
type MemberList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (l *MemberList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*l = names
		return nil
	case yaml.ScalarNode:
		*l = util.SplitCommaSeparated(node.Value)
		return nil
	default:
		return fmt.Errorf("%w: member list must be a list or comma-separated string (line %d)", util.ErrInvalidManifest, node.Line)
	}
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
