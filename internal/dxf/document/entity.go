package document

import "strings"

// Point represents a coordinate in drawing space
type Point struct {
	X float64
	Y float64
	Z float64
}

// TagValue is a single (group code, value) pair inside an XDATA block
type TagValue struct {
	Code  int
	Value string
}

// AppData holds the XDATA records registered under one application ID.
// Record order is preserved as read from the file.
type AppData struct {
	AppID   string
	Records []TagValue
}

// Entity is one drawing entity out of the ENTITIES section. Geometry fields
// are nil or empty when the file did not carry the corresponding groups; the
// consumer decides what absence means for each entity type.
type Entity struct {
	Type       string
	Handle     string
	Layer      string
	PaperSpace bool

	Start  *Point
	End    *Point
	Insert *Point
	Center *Point
	Points []Point
	Radius *float64

	BlockName string
	Text      string

	XData []AppData
}

// HasXData reports whether the entity carries any extended data
func (e *Entity) HasXData() bool {
	return len(e.XData) > 0
}

// XDataFor returns the records registered under the given application ID
func (e *Entity) XDataFor(appID string) ([]TagValue, bool) {
	for _, app := range e.XData {
		if app.AppID == appID {
			return app.Records, true
		}
	}
	return nil, false
}

// PlainText returns the entity text with MTEXT inline formatting removed.
// Paragraph breaks (\P) become newlines, non-breaking spaces (\~) become
// spaces, formatting codes such as \fArial|b0;, \H2.5; or \C1; are dropped,
// and {...} grouping braces are stripped while their content is kept.
func (e *Entity) PlainText() string {
	var b strings.Builder
	s := e.Text
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '{', '}':
			// grouping braces carry no text
		case '\\':
			if i+1 >= len(s) {
				break
			}
			i++
			switch s[i] {
			case 'P', 'p':
				b.WriteByte('\n')
			case '~':
				b.WriteByte(' ')
			case '\\', '{', '}':
				b.WriteByte(s[i])
			case 'L', 'l', 'O', 'o', 'K', 'k', 'X':
				// toggle codes without arguments
			default:
				// argument-carrying codes terminate at the next semicolon
				for i < len(s) && s[i] != ';' {
					i++
				}
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
