// Package doctree holds parsed documents as an arena of nodes addressed by
// stable NodeIDs. Structural edits (replace, remove) are explicit operations on
// the arena; detached nodes stay in the arena but are unreachable from the root.
package doctree

import "strings"

// NodeID identifies a node within one Tree. IDs are never reused.
type NodeID int

// NoNode marks an absent parent or body.
const NoNode NodeID = -1

// Kind classifies a node for traversal and linearization.
type Kind uint8

const (
	KindDocument Kind = iota // Arena root
	KindBlock                // Paragraph-level container: div, p, headings, list items
	KindTable                // Table subtree; cell structure is not linear text
	KindInline               // Inline element: span, font, b, td
	KindText                 // Character data
	KindSentinel             // Synthetic section marker inserted during labeling
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindBlock:
		return "block"
	case KindTable:
		return "table"
	case KindInline:
		return "inline"
	case KindText:
		return "text"
	case KindSentinel:
		return "sentinel"
	}
	return "unknown"
}

// BlockLevel reports whether nodes of this kind start a new line when linearized.
func (k Kind) BlockLevel() bool {
	switch k {
	case KindDocument, KindBlock, KindTable, KindSentinel:
		return true
	}
	return false
}

// Node is one arena entry.
type Node struct {
	Kind     Kind
	Tag      string   // Source element name, e.g. "div", "h2"
	Text     string   // Character data for text and sentinel nodes
	Page     int      // Source page (0 if N/A)
	Parent   NodeID   // NoNode for the root and for detached nodes
	Children []NodeID // Document order
}

// Tree is the root of a parsed document.
type Tree struct {
	Title string // Document title (from metadata or filename)

	nodes []Node
	body  NodeID
}

// New returns a tree containing only its document root.
func New(title string) *Tree {
	return &Tree{
		Title: title,
		nodes: []Node{{Kind: KindDocument, Parent: NoNode}},
		body:  NoNode,
	}
}

// Root returns the document root.
func (t *Tree) Root() NodeID { return 0 }

// Body returns the node content scanning starts from. It is the root unless a
// parser designated a body element.
func (t *Tree) Body() NodeID {
	if t.body == NoNode {
		return t.Root()
	}
	return t.body
}

// SetBody designates the content root.
func (t *Tree) SetBody(id NodeID) { t.body = id }

// Len returns the number of arena entries, attached or not.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) Node { return t.nodes[id] }

// NewNode adds a detached node to the arena and returns its id.
func (t *Tree) NewNode(n Node) NodeID {
	n.Parent = NoNode
	n.Children = nil
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// Append adds n as the last child of parent.
func (t *Tree) Append(parent NodeID, n Node) NodeID {
	id := t.NewNode(n)
	t.nodes[id].Parent = parent
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// AppendText adds a text node under parent.
func (t *Tree) AppendText(parent NodeID, text string) NodeID {
	return t.Append(parent, Node{Kind: KindText, Text: text})
}

// Attached reports whether id is reachable from the root.
func (t *Tree) Attached(id NodeID) bool {
	for id != NoNode {
		if id == t.Root() {
			return true
		}
		id = t.nodes[id].Parent
	}
	return false
}

// Contains reports whether id lies in the subtree rooted at ancestor
// (ancestor itself included).
func (t *Tree) Contains(ancestor, id NodeID) bool {
	for id != NoNode {
		if id == ancestor {
			return true
		}
		id = t.nodes[id].Parent
	}
	return false
}

// Replace puts the detached nodes with at the position id occupies in its
// parent and detaches id. Passing no replacement removes id.
func (t *Tree) Replace(id NodeID, with ...NodeID) {
	parent := t.nodes[id].Parent
	if parent == NoNode {
		return
	}
	siblings := t.nodes[parent].Children
	pos := -1
	for i, c := range siblings {
		if c == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return
	}

	next := make([]NodeID, 0, len(siblings)-1+len(with))
	next = append(next, siblings[:pos]...)
	for _, w := range with {
		t.detach(w)
		t.nodes[w].Parent = parent
		next = append(next, w)
	}
	next = append(next, siblings[pos+1:]...)
	t.nodes[parent].Children = next
	t.nodes[id].Parent = NoNode
}

// Remove detaches id and its subtree.
func (t *Tree) Remove(id NodeID) {
	t.Replace(id)
}

func (t *Tree) detach(id NodeID) {
	parent := t.nodes[id].Parent
	if parent == NoNode {
		return
	}
	kids := t.nodes[parent].Children
	for i, c := range kids {
		if c == id {
			t.nodes[parent].Children = append(kids[:i:i], kids[i+1:]...)
			break
		}
	}
	t.nodes[id].Parent = NoNode
}

// Walk visits the subtree rooted at id in document order. fn returning false
// skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(id NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.Walk(c, fn)
	}
}

// Find returns the descendants of id (id excluded) whose kind is one of kinds,
// in document order.
func (t *Tree) Find(id NodeID, kinds ...Kind) []NodeID {
	var out []NodeID
	for _, c := range t.nodes[id].Children {
		t.Walk(c, func(n NodeID) bool {
			for _, k := range kinds {
				if t.nodes[n].Kind == k {
					out = append(out, n)
					break
				}
			}
			return true
		})
	}
	return out
}

// Blocks returns the block-level content nodes (blocks and tables) below the
// body in document order. The index of a node in this slice is its position
// in the document's single traversal order.
func (t *Tree) Blocks() []NodeID {
	return t.Find(t.Body(), KindBlock, KindTable)
}

// Text flattens the subtree rooted at id: each text fragment is trimmed, empty
// fragments are dropped and the rest are joined with sep.
func (t *Tree) Text(id NodeID, sep string) string {
	var parts []string
	t.Walk(id, func(n NodeID) bool {
		node := &t.nodes[n]
		if node.Kind == KindText || node.Kind == KindSentinel {
			if s := strings.TrimSpace(node.Text); s != "" {
				parts = append(parts, s)
			}
		}
		return true
	})
	return strings.Join(parts, sep)
}

// Linearize renders the attached tree as plain text with one line break per
// block-level boundary. Inline fragments within one block are joined by a
// single space.
func (t *Tree) Linearize() string {
	var lines []string
	var line []string

	flush := func() {
		if len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line = line[:0]
		}
	}

	var walk func(NodeID)
	walk = func(id NodeID) {
		node := &t.nodes[id]
		switch node.Kind {
		case KindText:
			if s := strings.TrimSpace(node.Text); s != "" {
				line = append(line, s)
			}
			return
		case KindSentinel:
			flush()
			lines = append(lines, node.Text)
			return
		}
		block := node.Kind.BlockLevel()
		if block {
			flush()
		}
		for _, c := range node.Children {
			walk(c)
		}
		if block {
			flush()
		}
	}
	walk(t.Root())
	flush()

	return strings.Join(lines, "\n")
}

// Clone returns a deep copy. Edits on the copy never affect t.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		Title: t.Title,
		nodes: make([]Node, len(t.nodes)),
		body:  t.body,
	}
	for i, n := range t.nodes {
		n.Children = append([]NodeID(nil), n.Children...)
		c.nodes[i] = n
	}
	return c
}
