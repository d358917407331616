// Package document decodes bean declarations from configuration files.
//
// Two formats are understood. XML:
//
//	<beans>
//	    <bean id="store" class="app.Store"/>
//	    <bean id="service" class="app.Service">
//	        <constructor-arg index="0" ref="store"/>
//	        <property name="timeout" value="30"/>
//	    </bean>
//	</beans>
//
// and YAML:
//
//	beans:
//	  - id: store
//	    type: app.Store
//	  - id: service
//	    type: app.Service
//	    constructorArgs:
//	      - {index: 0, ref: store}
//	    properties:
//	      - {name: timeout, value: "30"}
//
// Decoding only checks the document shape. Ids, indices, property names and
// types are validated by beans.Container.Build.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/junioryono/beans"
)

// ClasspathPrefix marks a location relative to the configured root directory.
const ClasspathPrefix = "classpath:"

// Format is a declaration document format.
type Format string

const (
	XML  Format = "xml"
	YAML Format = "yaml"
)

var (
	ErrUnknownFormat = errors.New("unknown document format")
	ErrNotBeans      = errors.New("document root must be a beans element")
	ErrIndexEmpty    = errors.New("index of constructor argument can not be empty")
	ErrNameEmpty     = errors.New("property name can not be empty")
)

// DocumentError wraps a failure to read or decode a declaration document.
type DocumentError struct {
	Path  string // empty when decoding from a reader
	Cause error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid bean document: %v", e.Cause)
	}
	return fmt.Sprintf("invalid bean document %s: %v", e.Path, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return XML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ResolveLocation turns a configured location into a file path. A
// "classpath:" prefix is replaced by root; other locations are returned
// unchanged.
func ResolveLocation(location, root string) string {
	rest, ok := strings.CutPrefix(location, ClasspathPrefix)
	if !ok {
		return location
	}
	return filepath.Join(root, strings.TrimPrefix(rest, "/"))
}

// Decode reads declarations in the given format.
func Decode(r io.Reader, format Format) ([]beans.Declaration, error) {
	switch format {
	case XML:
		return DecodeXML(r)
	case YAML:
		return DecodeYAML(r)
	default:
		return nil, &DocumentError{Cause: fmt.Errorf("%w: %q", ErrUnknownFormat, format)}
	}
}

// Load reads the declarations in the file at path, choosing the decoder by
// extension.
func Load(path string) ([]beans.Declaration, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Cause: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Cause: err}
	}
	defer f.Close()

	decls, err := Decode(f, format)
	if err != nil {
		var docErr *DocumentError
		if errors.As(err, &docErr) {
			docErr.Path = path
			return nil, docErr
		}
		return nil, &DocumentError{Path: path, Cause: err}
	}

	return decls, nil
}
