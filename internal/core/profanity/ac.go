package profanity

// matcher is a byte-level Aho-Corasick automaton over folded words.
// Each node keeps a dense 256-way transition table.
type matcher struct {
	nodes []acNode
}

type acNode struct {
	next [256]int32
	fail int32
	out  []int
}

func newNode() acNode {
	var n acNode
	for i := range n.next {
		n.next[i] = -1
	}
	return n
}

func newMatcher(words []string) *matcher {
	m := &matcher{nodes: []acNode{newNode()}}
	for id, w := range words {
		m.add([]byte(w), id)
	}
	m.build()
	return m
}

func (m *matcher) add(pat []byte, id int) {
	if len(pat) == 0 {
		return
	}
	s := int32(0)
	for _, b := range pat {
		nxt := m.nodes[s].next[b]
		if nxt == -1 {
			nxt = int32(len(m.nodes))
			m.nodes[s].next[b] = nxt
			m.nodes = append(m.nodes, newNode())
		}
		s = nxt
	}
	m.nodes[s].out = append(m.nodes[s].out, id)
}

// build wires failure links breadth first and merges outputs along them
func (m *matcher) build() {
	q := make([]int32, 0, len(m.nodes))
	for b := range 256 {
		if s := m.nodes[0].next[b]; s != -1 {
			q = append(q, s)
		}
	}
	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := range 256 {
			s := m.nodes[r].next[b]
			if s == -1 {
				continue
			}
			q = append(q, s)

			f := m.nodes[r].fail
			for f != 0 && m.nodes[f].next[b] == -1 {
				f = m.nodes[f].fail
			}
			if nxt := m.nodes[f].next[b]; nxt != -1 && nxt != s {
				m.nodes[s].fail = nxt
			}
			m.nodes[s].out = append(m.nodes[s].out, m.nodes[m.nodes[s].fail].out...)
		}
	}
}

// hits reports which word ids occur anywhere in text
func (m *matcher) hits(text []byte, n int) []bool {
	seen := make([]bool, n)
	s := int32(0)
	for _, b := range text {
		for s != 0 && m.nodes[s].next[b] == -1 {
			s = m.nodes[s].fail
		}
		if nxt := m.nodes[s].next[b]; nxt != -1 {
			s = nxt
		}
		for _, id := range m.nodes[s].out {
			seen[id] = true
		}
	}
	return seen
}
