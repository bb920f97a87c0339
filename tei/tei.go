// Package tei extracts sentences and tokens from TEI-XML documents.
//
// A sentence is any element that is the direct parent of at least one word
// (w) element. Every word and punctuation (pc) element below a sentence, at
// any depth, becomes one token.
package tei

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

const (
	// Namespace is the TEI XML namespace.
	Namespace = "http://www.tei-c.org/ns/1.0"

	TagWord  = "w"
	TagPunct = "pc"

	UposPunct = "PUNCT"
	UposNum   = "NUM"
)

// Parse reads a whole XML document.
func Parse(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("XML decoding error: %w", err)
	}

	return doc, nil
}

// Extract returns the elements below root that are direct parents of a word
// element of the given namespace. Each parent is returned once, in the order
// of its first word child.
func Extract(root *etree.Element, namespace string) []*etree.Element {
	if root == nil {
		return nil
	}

	parents := newOrderedSet[*etree.Element]()
	walk(root, func(e *etree.Element) {
		if e == root || !isTag(e, namespace, TagWord) {
			return
		}

		if p := e.Parent(); p != nil {
			parents.Add(p)
		}
	})

	return parents.Items()
}

// walk calls fn for e and all its descendant elements, in document order.
func walk(e *etree.Element, fn func(*etree.Element)) {
	fn(e)
	for _, child := range e.ChildElements() {
		walk(child, fn)
	}
}

func isTag(e *etree.Element, namespace, tag string) bool {
	return e.Tag == tag && e.NamespaceURI() == namespace
}

// innerText concatenates all character data of e and its descendants. The
// tail of e is not included.
func innerText(e *etree.Element) string {
	var b strings.Builder
	writeText(&b, e)
	return b.String()
}

func writeText(b *strings.Builder, e *etree.Element) {
	for _, t := range e.Child {
		switch c := t.(type) {
		case *etree.CharData:
			b.WriteString(c.Data)
		case *etree.Element:
			writeText(b, c)
		}
	}
}
