package radix

const delimiter = ';'

// Node is one edge of the tree. The name of a node is the concatenation
// of the prefixes on the path from the root.
type Node struct {
	Stats

	// KeyLength is the length of the name plus the delimiter, zero until
	// a lookup or insert resolves it.
	KeyLength int32

	prefix   []byte
	children *[256]*Node
}

func newNode(prefix []byte) *Node {
	return &Node{Stats: NewStats(), prefix: prefix}
}

func (n *Node) child(b byte) *Node {
	if n.children == nil {
		return nil
	}
	return n.children[b]
}

func (n *Node) setChild(b byte, c *Node) {
	if n.children == nil {
		n.children = new([256]*Node)
	}
	n.children[b] = c
}

// Tree is a radix tree keyed by the names of records held in memory.
// Names are read directly from the caller's buffer and terminated by ';'.
// A Tree is not safe for concurrent use.
type Tree struct {
	root  Node
	nodes int
}

func New() *Tree {
	t := &Tree{}
	t.root.children = new([256]*Node)
	return t
}

// Nodes returns the number of nodes below the root.
func (t *Tree) Nodes() int {
	return t.nodes
}

// Lookup returns the node for the name starting at mem[pos], or nil if
// the tree has to be modified to hold it. It never allocates.
func (t *Tree) Lookup(mem []byte, pos int) *Node {
	start := pos

	// A name is never empty, so the first byte is never the delimiter.
	node := t.root.children[mem[pos]]
	if node == nil {
		return nil
	}
	pos++

	cursor := 1
	for {
		b := mem[pos]
		pos++
		if b == delimiter {
			break
		}
		if cursor < len(node.prefix) {
			if node.prefix[cursor] != b {
				return nil
			}
			cursor++
			continue
		}
		node = node.child(b)
		if node == nil {
			return nil
		}
		cursor = 1
	}

	// The name stops in the middle of the prefix.
	if cursor < len(node.prefix) {
		return nil
	}

	if node.KeyLength == 0 {
		node.KeyLength = int32(pos - start)
	}
	return node
}

// Insert returns the node for the name starting at mem[pos], creating or
// splitting nodes as needed.
func (t *Tree) Insert(mem []byte, pos int) *Node {
	start := pos
	node := &t.root
	cursor := 0

	for {
		b := mem[pos]
		pos++
		if b == delimiter {
			if cursor < len(node.prefix) {
				t.split(node, cursor)
			}
			break
		}

		if cursor < len(node.prefix) {
			if node.prefix[cursor] == b {
				cursor++
				continue
			}
			t.split(node, cursor)
		}

		next := node.child(b)
		if next == nil {
			node, pos = t.grow(node, b, mem, pos)
			break
		}
		node = next
		cursor = 1
	}

	node.KeyLength = int32(pos - start)
	return node
}

// split cuts n.prefix at the given index. The tail keeps the aggregation
// state and the children of n, while n becomes an empty branch point.
func (t *Tree) split(n *Node, at int) {
	tail := &Node{
		Stats:     n.Stats,
		KeyLength: n.KeyLength,
		prefix:    n.prefix[at:],
		children:  n.children,
	}
	t.nodes++

	n.prefix = n.prefix[:at:at]
	n.children = nil
	n.Stats = NewStats()
	n.KeyLength = 0
	n.setChild(tail.prefix[0], tail)
}

// grow attaches a child under b holding the rest of the name, which is
// scanned before allocating so the prefix is copied once. It returns the
// child and the position after the delimiter.
func (t *Tree) grow(parent *Node, b byte, mem []byte, pos int) (*Node, int) {
	end := pos
	for mem[end] != delimiter {
		end++
	}

	prefix := make([]byte, end-pos+1)
	prefix[0] = b
	copy(prefix[1:], mem[pos:end])

	child := newNode(prefix)
	parent.setChild(b, child)
	t.nodes++

	return child, end + 1
}

// Walk calls f for every name with at least one observation, in byte-wise
// lexicographic order. The name slice is reused between calls.
func (t *Tree) Walk(f func(name []byte, n *Node)) {
	t.walk(&t.root, make([]byte, 0, 128), f)
}

func (t *Tree) walk(n *Node, name []byte, f func(name []byte, n *Node)) {
	name = append(name, n.prefix...)
	if n.Count > 0 {
		f(name, n)
	}
	if n.children == nil {
		return
	}
	for _, c := range n.children {
		if c != nil {
			t.walk(c, name, f)
		}
	}
}
