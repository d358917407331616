package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/junioryono/beans"
)

const (
	beansElement          = "beans"
	beanElement           = "bean"
	constructorArgElement = "constructor-arg"
	propertyElement       = "property"
)

// element is any XML element with its attributes and child elements.
// Text content is ignored.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
}

func (e element) attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// DecodeXML reads a <beans> document. Child elements of the root named
// "bean" (in any case) are declarations; anything else is skipped, as are
// unknown children of a bean.
func DecodeXML(r io.Reader) ([]beans.Declaration, error) {
	var root element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, &DocumentError{Cause: fmt.Errorf("%w: empty document", ErrNotBeans)}
		}
		return nil, &DocumentError{Cause: err}
	}

	if !strings.EqualFold(root.XMLName.Local, beansElement) {
		return nil, &DocumentError{Cause: fmt.Errorf("%w: got <%s>", ErrNotBeans, root.XMLName.Local)}
	}

	var decls []beans.Declaration
	for _, child := range root.Children {
		if !strings.EqualFold(child.XMLName.Local, beanElement) {
			continue
		}

		decl, err := decodeBean(child)
		if err != nil {
			return nil, &DocumentError{Cause: err}
		}
		decls = append(decls, decl)
	}

	return decls, nil
}

func decodeBean(e element) (beans.Declaration, error) {
	decl := beans.Declaration{
		ID:   e.attr("id"),
		Type: e.attr("class"),
	}
	if decl.Type == "" {
		decl.Type = e.attr("type")
	}

	for _, child := range e.Children {
		switch child.XMLName.Local {
		case constructorArgElement:
			raw := child.attr("index")
			if raw == "" {
				return beans.Declaration{}, fmt.Errorf("bean %q: %w", decl.ID, ErrIndexEmpty)
			}
			index, err := strconv.Atoi(raw)
			if err != nil {
				return beans.Declaration{}, fmt.Errorf("bean %q: invalid constructor argument index %q: %w", decl.ID, raw, err)
			}
			decl.ConstructorArgs = append(decl.ConstructorArgs, beans.ConstructorArg{
				Index: index,
				Value: child.attr("value"),
				Ref:   child.attr("ref"),
			})

		case propertyElement:
			name := child.attr("name")
			if name == "" {
				return beans.Declaration{}, fmt.Errorf("bean %q: %w", decl.ID, ErrNameEmpty)
			}
			decl.Properties = append(decl.Properties, beans.Property{
				Name:  name,
				Value: child.attr("value"),
				Ref:   child.attr("ref"),
			})
		}
	}

	return decl, nil
}
