package tree

import (
	"strconv"
	"strings"
)

// ObjectReplacement stands in for embedded objects in PlainText.
const ObjectReplacement = '\uFFFC'

// PlainText flattens the document: text runs verbatim, paragraph breaks
// as newlines, other embedded nodes as U+FFFC. Every unit maps to exactly
// one rune, so rune offsets in the result equal absolute offsets.
func (t *Tree) PlainText() string {
	var sb strings.Builder
	t.walkLeaves(t.root, func(id NodeID) bool {
		n := t.get(id)
		switch {
		case n.kind == KindText:
			sb.WriteString(string(n.text))
		case n.payload.Type == EmbedBreak:
			sb.WriteByte('\n')
		default:
			sb.WriteRune(ObjectReplacement)
		}
		return true
	})
	return sb.String()
}

// Dump renders the tree structure for debugging and tests:
//
//	"plain" "bold"{b} / quote["inside"] <obj:img>
//
// Text runs are quoted with an optional {style}, "/" is a paragraph
// break, <obj:data> an embedded object and tag[...] a container.
func (t *Tree) Dump() string {
	var sb strings.Builder
	t.dumpChildren(&sb, t.root)
	return sb.String()
}

// DumpNode renders a single node and its subtree.
func (t *Tree) DumpNode(id NodeID) string {
	var sb strings.Builder
	t.dumpNode(&sb, id)
	return sb.String()
}

func (t *Tree) dumpChildren(sb *strings.Builder, id NodeID) {
	for i, c := range t.Children(id) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		t.dumpNode(sb, c)
	}
}

func (t *Tree) dumpNode(sb *strings.Builder, id NodeID) {
	n := t.get(id)
	if n == nil {
		sb.WriteString("<invalid>")
		return
	}
	switch n.kind {
	case KindText:
		sb.WriteString(strconv.Quote(string(n.text)))
		if s := n.style.String(); s != "" {
			sb.WriteString("{" + s + "}")
		}
	case KindEmbedded:
		if n.payload.Type == EmbedBreak {
			sb.WriteByte('/')
			return
		}
		sb.WriteString("<obj:" + n.payload.Data + ">")
	case KindContainer:
		sb.WriteString(n.tag)
		if s := n.style.String(); s != "" {
			sb.WriteString("{" + s + "}")
		}
		sb.WriteByte('[')
		t.dumpChildren(sb, id)
		sb.WriteByte(']')
	}
}
