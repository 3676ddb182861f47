// Package persist reads and writes widget trees as TOML or YAML documents.
//
// A document carries a version and the root container's widgets in z-order.
// Each widget has a type, an optional name, its properties as ordered
// key/value strings and, for panels and layouts, its children:
//
//	version = "1.0.0"
//
//	[[widgets]]
//	type = "Button"
//	name = "ok"
//
//	[[widgets.properties]]
//	key = "position"
//	value = "(10, 20)"
//
// The YAML form writes properties as a mapping in the same order.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/panes/retained"
)

// CurrentVersion is written into every saved document. Documents with the
// same major version can be read.
const CurrentVersion = "1.0.0"

var current = semver.MustParse(CurrentVersion)

var (
	ErrUnknownFormat      = errors.New("persist: unknown document format")
	ErrUnsupportedVersion = errors.New("persist: unsupported document version")
)

// Format selects the document syntax.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// ParseFormat accepts a format name as given on a command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ============================================================================
// Document shape
// ============================================================================

type document struct {
	Version string      `toml:"version" yaml:"version"`
	Widgets []widgetDoc `toml:"widgets,omitempty" yaml:"widgets,omitempty"`
}

type widgetDoc struct {
	Type       string      `toml:"type" yaml:"type"`
	Name       string      `toml:"name,omitempty" yaml:"name,omitempty"`
	Properties propertyMap `toml:"properties,omitempty" yaml:"properties,omitempty"`
	Children   []widgetDoc `toml:"children,omitempty" yaml:"children,omitempty"`
}

type propertyDoc struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// propertyMap is an array of tables in TOML and an ordered mapping in YAML.
type propertyMap []propertyDoc

// MarshalYAML implements yaml.Marshaler.
func (m propertyMap) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range m {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Value},
		)
	}
	return n, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *propertyMap) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", n.Line)
	}
	out := make(propertyMap, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: property %q must be a scalar", v.Line, k.Value)
		}
		out = append(out, propertyDoc{Key: k.Value, Value: v.Value})
	}
	*m = out
	return nil
}

func toDoc(n *retained.Node) widgetDoc {
	d := widgetDoc{Type: n.Type, Name: n.Name}
	for _, p := range n.Properties {
		d.Properties = append(d.Properties, propertyDoc{Key: p.Key, Value: p.Value})
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, toDoc(c))
	}
	return d
}

func fromDoc(d widgetDoc) *retained.Node {
	n := &retained.Node{Type: d.Type, Name: d.Name}
	for _, p := range d.Properties {
		n.Properties = append(n.Properties, retained.Property{Key: p.Key, Value: p.Value})
	}
	for _, c := range d.Children {
		n.Children = append(n.Children, fromDoc(c))
	}
	return n
}

// ============================================================================
// Encode / Decode
// ============================================================================

// Encode writes a saved container (a node of type retained.RootType).
func Encode(w io.Writer, root *retained.Node, format Format) error {
	if root == nil || root.Type != retained.RootType {
		return fmt.Errorf("persist: encode: root node must have type %q", retained.RootType)
	}
	doc := document{Version: CurrentVersion}
	for _, c := range root.Children {
		doc.Widgets = append(doc.Widgets, toDoc(c))
	}

	switch format {
	case TOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("persist: encode toml: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("persist: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("persist: encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// Decode reads a document into a root node ready for Container.Load.
func Decode(r io.Reader, format Format) (*retained.Node, error) {
	var doc document
	switch format {
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("persist: decode toml: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("persist: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	root := &retained.Node{Type: retained.RootType}
	for _, d := range doc.Widgets {
		root.Children = append(root.Children, fromDoc(d))
	}
	return root, nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: no version", ErrUnsupportedVersion)
	}
	got, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, v, err)
	}
	if got.Major() != current.Major() {
		return fmt.Errorf("%w: %s, this build reads %d.x", ErrUnsupportedVersion, got, current.Major())
	}
	return nil
}

// ============================================================================
// Files
// ============================================================================

// SaveFile writes the container's widgets to path; the extension selects the
// format.
func SaveFile(path string, c *retained.Container) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, c.Save(), format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("persist: failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the document at path without loading it anywhere.
func ReadFile(path string) (*retained.Node, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: failed to read %s: %w", path, err)
	}
	root, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// LoadFile replaces the container's widgets with the document at path. The
// container is unchanged when reading or building the widgets fails.
func LoadFile(path string, c *retained.Container) error {
	root, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := c.Load(root); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
