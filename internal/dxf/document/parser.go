package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ProviderVersion identifies this document provider in diagnostic output
const ProviderVersion = "0.6.2"

// binarySentinel prefixes binary-encoded DXF files, which this reader does
// not support
var binarySentinel = []byte("AutoCAD Binary DXF")

// StructureError reports a malformed DXF tag stream
type StructureError struct {
	Line   int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("dxf structure error at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("dxf structure error: %s", e.Reason)
}

// IsStructureError reports whether err is a structural parse failure as
// opposed to an IO failure
func IsStructureError(err error) bool {
	var se *StructureError
	return errors.As(err, &se)
}

// Document is the in-memory model of one DXF file
type Document struct {
	// AcadVersion is the $ACADVER header variable, e.g. "AC1027", or empty
	// when the file has no header section
	AcadVersion string

	entities []*Entity
}

// Modelspace returns the model-space entities in file order. Paper-space
// entities (group 67 == 1) are excluded.
func (d *Document) Modelspace() []*Entity {
	msp := make([]*Entity, 0, len(d.entities))
	for _, e := range d.entities {
		if !e.PaperSpace {
			msp = append(msp, e)
		}
	}
	return msp
}

// ModelspaceCount returns the number of model-space entities
func (d *Document) ModelspaceCount() int {
	n := 0
	for _, e := range d.entities {
		if !e.PaperSpace {
			n++
		}
	}
	return n
}

// Load reads and parses a DXF file from disk
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DXF file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a DXF document from a reader
func Read(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	// Reject the binary DXF encoding up front
	if head, err := br.Peek(len(binarySentinel)); err == nil && bytes.Equal(head, binarySentinel) {
		return nil, &StructureError{Reason: "binary DXF encoding is not supported"}
	}

	p := &parser{tags: NewTagReader(br)}
	return p.parse()
}

type parser struct {
	tags *TagReader
	doc  *Document
}

func (p *parser) parse() (*Document, error) {
	p.doc = &Document{}
	sawSection := false

	for {
		tag, err := p.tags.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if tag.Code != 0 {
			continue
		}
		switch tag.Value {
		case "SECTION":
			name, err := p.sectionName()
			if err != nil {
				return nil, err
			}
			sawSection = true
			switch name {
			case "HEADER":
				if err := p.parseHeader(); err != nil {
					return nil, err
				}
			case "ENTITIES":
				if err := p.parseEntities(); err != nil {
					return nil, err
				}
			default:
				if err := p.skipSection(); err != nil {
					return nil, err
				}
			}
		case "EOF":
			if !sawSection {
				return nil, &StructureError{Reason: "no sections before EOF"}
			}
			return p.doc, nil
		}
	}

	if !sawSection {
		return nil, &StructureError{Reason: "not a DXF tag stream"}
	}
	// A missing EOF marker is tolerated; everything read so far is valid
	return p.doc, nil
}

// sectionName consumes the (2, name) tag that follows a SECTION marker
func (p *parser) sectionName() (string, error) {
	tag, err := p.tags.Next()
	if err == io.EOF {
		return "", &StructureError{Reason: "truncated SECTION marker"}
	}
	if err != nil {
		return "", err
	}
	if tag.Code != 2 {
		return "", &StructureError{Reason: fmt.Sprintf("SECTION not followed by name tag (got code %d)", tag.Code)}
	}
	return strings.TrimSpace(tag.Value), nil
}

func (p *parser) skipSection() error {
	for {
		tag, err := p.tags.Next()
		if err == io.EOF {
			return &StructureError{Reason: "unterminated section"}
		}
		if err != nil {
			return err
		}
		if tag.Code == 0 && tag.Value == "ENDSEC" {
			return nil
		}
	}
}

// parseHeader scans header variables for the ones the document model reports
func (p *parser) parseHeader() error {
	variable := ""
	for {
		tag, err := p.tags.Next()
		if err == io.EOF {
			return &StructureError{Reason: "unterminated HEADER section"}
		}
		if err != nil {
			return err
		}
		switch {
		case tag.Code == 0 && tag.Value == "ENDSEC":
			return nil
		case tag.Code == 9:
			variable = strings.TrimSpace(tag.Value)
		case tag.Code == 1 && variable == "$ACADVER":
			p.doc.AcadVersion = strings.TrimSpace(tag.Value)
		}
	}
}

func (p *parser) parseEntities() error {
	var builder *entityBuilder
	var owner *Entity // open POLYLINE collecting VERTEX sub-entities

	flush := func() {
		if builder == nil {
			return
		}
		e := builder.build()
		builder = nil
		switch e.Type {
		case "POLYLINE":
			p.doc.entities = append(p.doc.entities, e)
			owner = e
		case "VERTEX":
			if owner != nil {
				if len(e.Points) > 0 {
					owner.Points = append(owner.Points, e.Points[0])
				}
				return
			}
			p.doc.entities = append(p.doc.entities, e)
		case "SEQEND":
			owner = nil
		default:
			p.doc.entities = append(p.doc.entities, e)
		}
	}

	for {
		tag, err := p.tags.Next()
		if err == io.EOF {
			return &StructureError{Reason: "unterminated ENTITIES section"}
		}
		if err != nil {
			return err
		}

		if tag.Code == 0 {
			flush()
			if tag.Value == "ENDSEC" {
				return nil
			}
			builder = newEntityBuilder(strings.TrimSpace(tag.Value))
			continue
		}
		if builder != nil {
			builder.accept(tag)
		}
	}
}

// entityBuilder accumulates the raw groups of one entity and assigns them
// to typed fields once the entity is complete
type entityBuilder struct {
	entity    Entity
	points    []Point
	secondary *Point
	value40   *float64
	textParts []string
	app       *AppData
}

func newEntityBuilder(entityType string) *entityBuilder {
	return &entityBuilder{entity: Entity{Type: entityType}}
}

func (b *entityBuilder) accept(tag Tag) {
	if tag.Code >= 1000 {
		b.acceptXData(tag)
		return
	}
	switch tag.Code {
	case 5:
		b.entity.Handle = strings.TrimSpace(tag.Value)
	case 8:
		b.entity.Layer = strings.TrimSpace(tag.Value)
	case 67:
		b.entity.PaperSpace = strings.TrimSpace(tag.Value) == "1"
	case 2:
		b.entity.BlockName = strings.TrimSpace(tag.Value)
	case 1:
		b.textParts = append(b.textParts, tag.Value)
	case 3:
		// MTEXT carries overflow text in leading 3-groups
		b.textParts = append(b.textParts, tag.Value)
	case 10:
		b.points = append(b.points, Point{X: parseFloat(tag.Value)})
	case 20:
		if n := len(b.points); n > 0 {
			b.points[n-1].Y = parseFloat(tag.Value)
		}
	case 30:
		if n := len(b.points); n > 0 {
			b.points[n-1].Z = parseFloat(tag.Value)
		}
	case 11:
		b.secondary = &Point{X: parseFloat(tag.Value)}
	case 21:
		if b.secondary != nil {
			b.secondary.Y = parseFloat(tag.Value)
		}
	case 31:
		if b.secondary != nil {
			b.secondary.Z = parseFloat(tag.Value)
		}
	case 40:
		v := parseFloat(tag.Value)
		if b.value40 == nil {
			b.value40 = &v
		}
	}
}

func (b *entityBuilder) acceptXData(tag Tag) {
	if tag.Code == 1001 {
		b.entity.XData = append(b.entity.XData, AppData{AppID: strings.TrimSpace(tag.Value)})
		b.app = &b.entity.XData[len(b.entity.XData)-1]
		return
	}
	if b.app == nil {
		return
	}
	b.app.Records = append(b.app.Records, TagValue{Code: tag.Code, Value: tag.Value})
}

func (b *entityBuilder) build() *Entity {
	e := b.entity

	switch e.Type {
	case "LINE":
		if len(b.points) > 0 {
			p := b.points[0]
			e.Start = &p
		}
		e.End = b.secondary
	case "INSERT", "TEXT", "MTEXT":
		if len(b.points) > 0 {
			p := b.points[0]
			e.Insert = &p
		}
	case "CIRCLE", "ARC":
		if len(b.points) > 0 {
			p := b.points[0]
			e.Center = &p
		}
		e.Radius = b.value40
	default:
		e.Points = b.points
	}

	if len(b.textParts) > 0 {
		e.Text = strings.Join(b.textParts, "")
	}
	return &e
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
