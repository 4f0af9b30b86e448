// Package dom patches a live html.Node tree so it matches new markup while
// touching as few nodes as possible.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNilContainer is returned when Patch is asked to mutate nothing.
var ErrNilContainer = errors.New("dom: nil container")

// Reconciler mutates container in place until its children match markup.
type Reconciler interface {
	Patch(container *html.Node, markup string) error
}

// Stats counts the mutations performed by a patch.
type Stats struct {
	Created     int
	Removed     int
	Replaced    int
	TextUpdates int
	AttrUpdates int
}

// Mutations is the total number of node or attribute writes.
func (s Stats) Mutations() int {
	return s.Created + s.Removed + s.Replaced + s.TextUpdates + s.AttrUpdates
}

func (s *Stats) add(o Stats) {
	s.Created += o.Created
	s.Removed += o.Removed
	s.Replaced += o.Replaced
	s.TextUpdates += o.TextUpdates
	s.AttrUpdates += o.AttrUpdates
}

// Patcher is a positional Reconciler: the i-th new child is compared with
// the i-th live child. Matching elements are kept and patched recursively.
type Patcher struct {
	last    Stats
	total   Stats
	patches int
}

// NewPatcher returns a Patcher with zeroed counters.
func NewPatcher() *Patcher {
	return &Patcher{}
}

// NewContainer creates the detached root element a preview patches into.
func NewContainer() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "id", Val: "preview"}},
	}
}

// Patch implements Reconciler.
func (p *Patcher) Patch(container *html.Node, markup string) error {
	if container == nil {
		return ErrNilContainer
	}
	context := container
	if container.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("dom: parse markup: %w", err)
	}
	var st Stats
	reconcileChildren(container, nodes, &st)
	p.last = st
	p.total.add(st)
	p.patches++
	return nil
}

// Last reports the mutations of the most recent patch.
func (p *Patcher) Last() Stats {
	return p.last
}

// Total reports the mutations across all patches.
func (p *Patcher) Total() Stats {
	return p.total
}

// Patches counts successful Patch calls.
func (p *Patcher) Patches() int {
	return p.patches
}

func reconcileChildren(parent *html.Node, want []*html.Node, st *Stats) {
	cur := parent.FirstChild
	for _, w := range want {
		if w.Parent != nil {
			w.Parent.RemoveChild(w)
		}
		if cur == nil {
			parent.AppendChild(w)
			st.Created++
			continue
		}
		next := cur.NextSibling
		if sameKind(cur, w) {
			patchNode(cur, w, st)
		} else {
			parent.InsertBefore(w, cur)
			parent.RemoveChild(cur)
			st.Replaced++
		}
		cur = next
	}
	for cur != nil {
		next := cur.NextSibling
		parent.RemoveChild(cur)
		st.Removed++
		cur = next
	}
}

func sameKind(a, b *html.Node) bool {
	if a.Type != b.Type {
		return false
	}
	if a.Type == html.ElementNode {
		return a.Data == b.Data && a.Namespace == b.Namespace
	}
	return true
}

func patchNode(live, want *html.Node, st *Stats) {
	switch live.Type {
	case html.TextNode, html.CommentNode:
		if live.Data != want.Data {
			live.Data = want.Data
			st.TextUpdates++
		}
		return
	case html.ElementNode:
		if !attrsEqual(live.Attr, want.Attr) {
			live.Attr = append([]html.Attribute(nil), want.Attr...)
			st.AttrUpdates++
		}
	}
	var kids []*html.Node
	for c := want.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, c)
	}
	reconcileChildren(live, kids, st)
}

func attrsEqual(a, b []html.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// InnerHTML serialises the children of n.
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}
