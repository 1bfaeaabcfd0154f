// Copyright 2026 The queryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// A Kind discriminates the variants of a Payload.
type Kind int

const (
	// KindNone indicates an undecoded payload: the response has not
	// been decoded yet, or its body was empty and was passed through
	// unchanged.
	KindNone Kind = iota
	// KindRaw indicates a payload carried through as raw bytes because
	// its content type matched no decodable category.
	KindRaw
	// KindXML indicates a payload decoded into a generic XML element
	// tree.
	KindXML
	// KindJSON indicates a payload decoded into a generic JSON value.
	KindJSON
)

var kindNames = []string{
	"None",
	"Raw",
	"XML",
	"JSON",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// A Payload is the tagged result of decoding a response body. Exactly
// one of the variant fields is meaningful, as indicated by Kind.
type Payload struct {
	// Kind discriminates which variant field is set.
	Kind Kind

	// Raw is the undecoded body (KindRaw).
	Raw []byte

	// XML is the root of the decoded element tree (KindXML).
	XML *Node

	// JSON is the decoded JSON value (KindJSON): a bool, float64,
	// string, []interface{}, map[string]interface{}, or nil.
	JSON interface{}
}

// A Node is an element in a generic XML tree.
type Node struct {
	// Name is the element's local name.
	Name string

	// Attr lists the element's attributes in document order.
	Attr []xml.Attr

	// Text is the concatenated character data directly inside the
	// element, with surrounding whitespace trimmed.
	Text string

	// Children lists the child elements in document order.
	Children []*Node
}

// Child returns the first child element with the given name, or nil if
// there is none.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// All returns every child element with the given name, in document
// order.
func (n *Node) All(name string) []*Node {
	var nodes []*Node
	for _, c := range n.Children {
		if c.Name == name {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// parseXML decodes b into a generic element tree. The decoder is
// charset-aware, honoring the encoding declared in the XML prolog.
func parseXML(b []byte) (*Node, error) {
	d := xml.NewDecoder(bytes.NewReader(b))
	d.CharsetReader = charset.NewReaderLabel

	root := &Node{}
	stack := []*Node{root}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Attr: t.Attr}
			top.Children = append(top.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.Text += string(t)
		}
	}
	if len(root.Children) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	doc := root.Children[0]
	trimText(doc)
	return doc, nil
}

func trimText(n *Node) {
	n.Text = strings.TrimSpace(n.Text)
	for _, c := range n.Children {
		trimText(c)
	}
}

func parseJSON(b []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
