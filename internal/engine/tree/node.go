package tree

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a node.
type Kind uint8

// Node kinds.
const (
	KindText Kind = iota + 1
	KindContainer
	KindEmbedded
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindContainer:
		return "container"
	case KindEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// Style holds the character attributes of a text run or container.
// Two runs merge only when their styles are equal.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Link      string // link URL, empty when the run is not a link
	Target    string // link target frame
}

// IsLink reports whether the style carries a link.
func (s Style) IsLink() bool {
	return s.Link != ""
}

// WithLink returns a copy of s carrying the given link.
func (s Style) WithLink(url, target string) Style {
	s.Link = url
	s.Target = target
	return s
}

// WithoutLink returns a copy of s with the link removed.
func (s Style) WithoutLink() Style {
	s.Link = ""
	s.Target = ""
	return s
}

// String returns a compact attribute list such as "b,i,link=x".
func (s Style) String() string {
	var parts []string
	if s.Bold {
		parts = append(parts, "b")
	}
	if s.Italic {
		parts = append(parts, "i")
	}
	if s.Underline {
		parts = append(parts, "u")
	}
	if s.Link != "" {
		parts = append(parts, "link="+s.Link)
	}
	if s.Target != "" {
		parts = append(parts, "target="+s.Target)
	}
	return strings.Join(parts, ",")
}

// EmbedType identifies the payload of an embedded node.
type EmbedType uint8

// Embedded payload types.
const (
	EmbedBreak EmbedType = iota + 1 // paragraph break
	EmbedObject                     // opaque object (image, field, ...)
)

// Payload is the opaque content of an embedded node.
type Payload struct {
	Type EmbedType
	Data string
}

// Break returns the payload of a paragraph break.
func Break() Payload {
	return Payload{Type: EmbedBreak}
}

// Object returns the payload of an opaque embedded object.
func Object(data string) Payload {
	return Payload{Type: EmbedObject, Data: data}
}

// NodeID is a generation-checked handle to a node in a Tree.
// The zero value is Nil.
type NodeID struct {
	index uint32
	gen   uint32
}

// Nil is the null node handle.
var Nil NodeID

// IsNil reports whether id is the null handle.
func (id NodeID) IsNil() bool {
	return id.gen == 0
}

// String returns a debug representation of the handle.
func (id NodeID) String() string {
	if id.IsNil() {
		return "#nil"
	}
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}

// node is the arena record behind a NodeID.
type node struct {
	kind     Kind
	parent   NodeID
	children []NodeID
	text     []rune
	style    Style
	tag      string
	payload  Payload
}

// length returns the node length in its own addressing unit:
// runes for text, children for containers, 1 for embedded nodes.
func (n *node) length() int {
	switch n.kind {
	case KindText:
		return len(n.text)
	case KindContainer:
		return len(n.children)
	default:
		return 1
	}
}
