package xmlobject

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/oneconcern/domx/pkg/errors"
)

var (
	// ErrParse indicates that an XML document could not be parsed
	ErrParse = errors.New("xml parse error")

	// ErrNoDocument indicates that the input held no document element
	ErrNoDocument = errors.New("no document element")

	// ErrRootElement indicates that the document element is not an xml object
	ErrRootElement = errors.New("document element is not " + RootElement)
)

// ParseError locates a syntax error in an XML source.
type ParseError struct {
	SystemID string
	Line     int
	Column   int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error at file %q, line %d, column %d\n   Message: %s",
		e.SystemID, e.Line, e.Column, e.Message)
}

// newParseError turns a decoder failure on data into a located ParseError
// wrapped by ErrParse.
func newParseError(systemID string, data []byte, err error) error {
	pe := &ParseError{SystemID: systemID, Message: err.Error()}
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		pe.Message = se.Msg
	}
	pe.Line, pe.Column = locate(data)
	return ErrParse.Wrap(pe)
}

// locate replays the tokens of data up to the first failure, which is where
// the document parser stopped, and returns that position.
func locate(data []byte) (line, column int) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		if _, err := dec.RawToken(); err != nil {
			return dec.InputPos()
		}
	}
}
