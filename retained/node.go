package retained

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agiangrant/panes/layout"
)

// ============================================================================
// Persistence nodes
// ============================================================================
//
// A widget tree is saved as a tree of Nodes: the widget type, its name in the
// parent, an ordered list of properties with string values, and the
// children of composites in z-order. The persist package turns Nodes into
// TOML or YAML; this package never sees file syntax.

// Property is one serialized key/value pair.
type Property struct {
	Key   string
	Value string
}

// Node is the serialized form of one widget.
type Node struct {
	Type       string
	Name       string
	Properties []Property
	Children   []*Node
}

// Set replaces the value of key, or appends it.
func (n *Node) Set(key, value string) {
	for i := range n.Properties {
		if n.Properties[i].Key == key {
			n.Properties[i].Value = value
			return
		}
	}
	n.Properties = append(n.Properties, Property{Key: key, Value: value})
}

// Get returns the value of key.
func (n *Node) Get(key string) (string, bool) {
	for _, p := range n.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// RootType is the Node type of a saved container.
const RootType = "Container"

// PropertySaver widgets add their own properties after the common ones.
type PropertySaver interface {
	SaveProperties(n *Node)
}

// PropertyLoader widgets read their own properties. LoadProperty reports
// false for keys it does not know.
type PropertyLoader interface {
	LoadProperty(key, value string) (bool, error)
}

// ============================================================================
// Widget registry
// ============================================================================

// Factory creates a widget with its default configuration.
type Factory func() Widget

var factories = map[string]Factory{}

// Register makes a widget type loadable. Registering a kind again replaces
// the previous factory.
func Register(kind string, f Factory) {
	factories[kind] = f
}

// NewWidget creates a registered widget type.
func NewWidget(kind string) (Widget, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidgetType, kind)
	}
	return f(), nil
}

// RegisteredTypes lists the known widget types, sorted.
func RegisteredTypes() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func init() {
	Register("ClickableWidget", func() Widget { return NewClickable() })
	Register("Button", func() Widget { return NewButton("") })
	Register("Label", func() Widget { return NewLabel("") })
	Register("CheckBox", func() Widget { return NewCheckBox("") })
	Register("RadioButton", func() Widget { return NewRadioButton("") })
	Register("EditBox", func() Widget { return NewEditBox() })
	Register("Panel", func() Widget { return NewPanel() })
	Register("ScrollPanel", func() Widget { return NewScrollPanel() })
	Register("HorizontalLayout", func() Widget { return NewHorizontalLayout() })
	Register("VerticalLayout", func() Widget { return NewVerticalLayout() })
	Register("Spacer", func() Widget { return NewSpacer() })
}

// ============================================================================
// Save
// ============================================================================

// Save serializes the container's children in z-order.
func (c *Container) Save() *Node {
	return &Node{Type: RootType, Children: c.saveChildren()}
}

func (c *Container) saveChildren() []*Node {
	nodes := make([]*Node, 0, len(c.widgets))
	for _, w := range c.widgets {
		nodes = append(nodes, SaveWidget(w, c.meta[w].name))
	}
	return nodes
}

// SaveWidget serializes a single widget and, for composites, its children.
func SaveWidget(w Widget, name string) *Node {
	b := w.Base()
	n := &Node{Type: b.kind, Name: name}
	n.Set("position", b.pos.String())
	n.Set("size", b.size.String())
	n.Set("visible", strconv.FormatBool(b.visible))
	n.Set("enabled", strconv.FormatBool(b.enabled))
	n.Set("focusable", strconv.FormatBool(b.focusable))
	n.Set("opacity", formatFloat(b.opacity))
	if s, ok := w.(PropertySaver); ok {
		s.SaveProperties(n)
	}
	if comp, ok := w.(Composite); ok {
		n.Children = comp.Contents().saveChildren()
	}
	return n
}

// ============================================================================
// Load
// ============================================================================

// Load replaces the container's children with the widgets described by n.
// Nothing changes when any widget fails to load or the layouts reference
// each other in a cycle.
func (c *Container) Load(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidProperty)
	}
	if n.Type != RootType {
		return fmt.Errorf("%w: root node has type %q, want %q", ErrUnknownWidgetType, n.Type, RootType)
	}
	widgets, names, err := loadNodes(n.Children)
	if err != nil {
		return err
	}
	c.RemoveAll()
	for i, w := range widgets {
		c.Add(w, names[i])
	}
	return nil
}

// LoadWidget creates a widget from its node, children first so that
// properties referring to them (such as layout ratios) can apply.
func LoadWidget(n *Node) (Widget, error) {
	w, err := NewWidget(n.Type)
	if err != nil {
		return nil, err
	}
	if comp, ok := w.(Composite); ok && len(n.Children) > 0 {
		children, names, err := loadNodes(n.Children)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", describeNode(n), err)
		}
		inner := comp.Contents()
		for i, child := range children {
			inner.Add(child, names[i])
		}
	}
	for _, p := range n.Properties {
		if err := loadProperty(w, p); err != nil {
			return nil, &PropertyError{Widget: describeNode(n), Property: p.Key, Err: err}
		}
	}
	return w, nil
}

func loadNodes(nodes []*Node) ([]Widget, []string, error) {
	widgets := make([]Widget, 0, len(nodes))
	names := make([]string, 0, len(nodes))
	for _, child := range nodes {
		w, err := LoadWidget(child)
		if err != nil {
			return nil, nil, err
		}
		widgets = append(widgets, w)
		names = append(names, child.Name)
	}
	if err := checkCycles(widgets, names); err != nil {
		return nil, nil, err
	}
	return widgets, names, nil
}

func loadProperty(w Widget, p Property) error {
	b := w.Base()
	switch p.Key {
	case "position", "size":
		l, err := layout.Parse2d(p.Value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProperty, err)
		}
		if p.Key == "position" {
			b.SetPositionLayout(l)
		} else if s, ok := w.(sizeLayoutSetter); ok {
			s.SetSizeLayout(l)
		} else {
			b.SetSizeLayout(l)
		}
		return nil
	case "visible", "enabled", "focusable":
		v, err := parseBool(p.Value)
		if err != nil {
			return err
		}
		switch p.Key {
		case "visible":
			b.SetVisible(v)
		case "enabled":
			b.SetEnabled(v)
		default:
			b.SetFocusable(v)
		}
		return nil
	case "opacity":
		v, err := parseFloat(p.Value)
		if err != nil {
			return err
		}
		b.SetOpacity(v)
		return nil
	}
	if l, ok := w.(PropertyLoader); ok {
		handled, err := l.LoadProperty(p.Key, p.Value)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	return ErrUnknownProperty
}

// sizeLayoutSetter is satisfied by widgets that shadow SetSizeLayout, such
// as auto-sizing ones that must notice an explicit size.
type sizeLayoutSetter interface {
	SetSizeLayout(layout.Layout2d)
}

// checkCycles reports reference cycles among the layouts of named widgets.
func checkCycles(widgets []Widget, names []string) error {
	deps := make(map[string][]string)
	for i, w := range widgets {
		if names[i] == "" {
			continue
		}
		b := w.Base()
		deps[names[i]] = append(deps[names[i]], b.pos.Refs()...)
		deps[names[i]] = append(deps[names[i]], b.size.Refs()...)
	}
	if cycle := layout.FindCycle(deps); cycle != nil {
		return fmt.Errorf("%w: %s -> %s", ErrLayoutCycle, strings.Join(cycle, " -> "), cycle[0])
	}
	return nil
}

func describeNode(n *Node) string {
	if n.Name == "" {
		return n.Type
	}
	return n.Type + " " + strconv.Quote(n.Name)
}

// ----------------------------------------------------------------------------
// Value helpers for PropertySaver and PropertyLoader implementations
// ----------------------------------------------------------------------------

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidProperty, s)
	}
	return float32(v), nil
}

func parseBool(s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidProperty, s)
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidProperty, s)
	}
	return v, nil
}
