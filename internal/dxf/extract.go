package dxf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cadtools/mcp-dxf-reader/internal/dxf/document"
)

// PositionNotApplicable is the Position value for entity types without a
// defined extraction rule
const PositionNotApplicable = "N/A"

// preferredFields is the canonical column prefix; any of these present in a
// batch sorts ahead of all other fields, in this order
var preferredFields = []string{
	"Handle",
	"EntityType",
	"Layer",
	"BlockName",
	"TextValue",
	"Radius",
	"Position",
}

// extractFunc fills type-specific fields into a record. It returns an error
// when the entity is missing an attribute its type is expected to carry.
type extractFunc func(e *document.Entity, rec Record) error

// strategies maps entity type tags to their extraction strategy. Types not
// listed here get only the base record.
var strategies = map[string]extractFunc{
	"POLYLINE":   extractVertexChain,
	"LWPOLYLINE": extractVertexChain,
	"SPLINE":     extractVertexChain,
	"LINE":       extractLine,
	"INSERT":     extractInsert,
	"TEXT":       extractText,
	"MTEXT":      extractText,
	"CIRCLE":     extractRadial,
	"ARC":        extractRadial,
}

// Extractor normalizes drawing entities into flat records
type Extractor struct{}

// NewExtractor creates a new entity field extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the normalized record for one entity. An entity of a
// recognized type that is missing an expected attribute yields the
// type-agnostic base record; extraction never fails the whole batch.
func (x *Extractor) Extract(e *document.Entity) Record {
	rec := baseRecord(e)
	strategy, ok := strategies[e.Type]
	if !ok {
		return rec
	}
	if err := strategy(e, rec); err != nil {
		return baseRecord(e)
	}
	return rec
}

func baseRecord(e *document.Entity) Record {
	return Record{
		"Handle":     e.Handle,
		"EntityType": e.Type,
		"Layer":      e.Layer,
		"Position":   PositionNotApplicable,
	}
}

func extractVertexChain(e *document.Entity, rec Record) error {
	if len(e.Points) == 0 {
		return fmt.Errorf("%s %s has no vertices", e.Type, e.Handle)
	}
	rec["Position"] = formatPoints(e.Points)
	return nil
}

func extractLine(e *document.Entity, rec Record) error {
	if e.Start == nil || e.End == nil {
		return fmt.Errorf("LINE %s missing start or end point", e.Handle)
	}
	rec["Position"] = fmt.Sprintf("Start%s;End%s", formatPoint(*e.Start), formatPoint(*e.End))
	return nil
}

func extractInsert(e *document.Entity, rec Record) error {
	if e.Insert == nil {
		return fmt.Errorf("INSERT %s missing insertion point", e.Handle)
	}
	rec["Position"] = formatPoint(*e.Insert)
	rec["BlockName"] = e.BlockName
	return nil
}

func extractText(e *document.Entity, rec Record) error {
	if e.Insert == nil {
		return fmt.Errorf("%s %s missing insertion point", e.Type, e.Handle)
	}
	rec["Position"] = formatPoint(*e.Insert)
	if e.Type == "MTEXT" {
		rec["TextValue"] = e.PlainText()
	} else {
		rec["TextValue"] = e.Text
	}
	return nil
}

func extractRadial(e *document.Entity, rec Record) error {
	if e.Center == nil || e.Radius == nil {
		return fmt.Errorf("%s %s missing center or radius", e.Type, e.Handle)
	}
	rec["Position"] = "Center" + formatPoint(*e.Center)
	// Radius keeps its native numeric rendering, no forced truncation
	rec["Radius"] = strconv.FormatFloat(*e.Radius, 'g', -1, 64)
	return nil
}

// formatPoint renders a coordinate with every axis at exactly 3 decimal places
func formatPoint(p document.Point) string {
	return fmt.Sprintf("(%.3f,%.3f,%.3f)", p.X, p.Y, p.Z)
}

func formatPoints(pts []document.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = formatPoint(p)
	}
	return strings.Join(parts, "; ")
}
