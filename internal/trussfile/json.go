package trussfile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// Document is the JSON form of a truss
type Document struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Nodes       []truss.Node   `json:"nodes"`
	Members     []truss.Member `json:"members"`
}

// ReadJSON decodes a JSON truss document
func ReadJSON(in io.Reader) (*truss.Truss, error) {
	var doc Document
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Truss()
}

// Truss builds a model from the document
func (d *Document) Truss() (*truss.Truss, error) {
	t := truss.New(d.Name)
	for i, n := range d.Nodes {
		if _, err := t.AddNode(n); err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	for i, m := range d.Members {
		if _, err := t.AddMember(m.ID, m.A, m.B); err != nil {
			return nil, fmt.Errorf("members[%d]: %w", i, err)
		}
	}
	return t, nil
}

// NewDocument captures a model for encoding
func NewDocument(t *truss.Truss) *Document {
	return &Document{
		Name:    t.Name,
		Nodes:   t.Nodes(),
		Members: t.Members(),
	}
}

// WriteJSON encodes t as an indented JSON document
func WriteJSON(out io.Writer, t *truss.Truss) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(t))
}
