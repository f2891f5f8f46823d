package sqldump

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Field is one raw value from an INSERT row. Quoted distinguishes the
// string 'NULL' from a bare NULL keyword.
type Field struct {
	Value  string
	Quoted bool
}

// Number reports whether the unquoted field parses as a number.
func (f Field) Number() (float64, bool) {
	if f.Quoted {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(f.Value), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Null reports whether the field is a SQL NULL or empty unquoted token.
func (f Field) Null() bool {
	if f.Quoted {
		return false
	}
	trimmed := strings.TrimSpace(f.Value)
	return trimmed == "" || strings.EqualFold(trimmed, "NULL")
}

// String returns the field as a string, empty for NULL.
func (f Field) String() string {
	if f.Null() {
		return ""
	}
	return f.Value
}

// Int returns the field as an int, ok=false for NULL or non-numeric.
func (f Field) Int() (int, bool) {
	n, ok := f.Number()
	if !ok {
		return 0, false
	}
	return int(n), true
}

// RowHandler receives each parsed VALUES row together with its table name.
// Returning an error aborts the parse.
type RowHandler func(table string, row []Field) error

// TableFilter decides whether a table's rows are parsed or skipped. Skipped
// tables are still scanned so statement boundaries stay aligned.
type TableFilter func(table string) bool

// StatementDone is called after each INSERT statement finishes, so callers
// can flush batches at statement boundaries.
type StatementDone func(table string) error

type parseState int

const (
	stateSearch parseState = iota
	stateFindValues
	stateParseValues
)

// lookBack keeps enough buffer tail to match a marker split across reads.
const lookBack = 20

// Parser is a streaming state machine over a MySQL dump. It scans for
// "INSERT INTO `table`" markers, then walks the VALUES list character by
// character, honoring quoted strings, backslash escapes and nested parens.
type Parser struct {
	Handler   Handler
	chunkSize int
}

// Handler bundles the callbacks driving a parse.
type Handler struct {
	WantTable TableFilter
	OnRow     RowHandler
	OnDone    StatementDone
}

func NewParser(h Handler) *Parser {
	if h.WantTable == nil {
		h.WantTable = func(string) bool { return true }
	}
	return &Parser{Handler: h, chunkSize: 64 * 1024}
}

// Parse consumes the dump from r until EOF.
func (p *Parser) Parse(r io.Reader) error {
	reader := bufio.NewReaderSize(r, p.chunkSize)
	chunk := make([]byte, p.chunkSize)

	var buffer string
	state := stateSearch
	currentTable := ""
	values := &valuesParser{}

	for {
		n, readErr := reader.Read(chunk)
		if n > 0 {
			buffer += string(chunk[:n])

			idx := 0
			trimmed := false

			for idx < len(buffer) {
				if state == stateSearch {
					startIdx := strings.Index(buffer[idx:], "INSERT INTO `")
					if startIdx == -1 {
						if len(buffer) > lookBack {
							buffer = buffer[len(buffer)-lookBack:]
						}
						trimmed = true
						break
					}
					absStart := idx + startIdx
					idx = absStart + len("INSERT INTO `")
					endIdx := strings.Index(buffer[idx:], "`")
					if endIdx == -1 {
						buffer = buffer[absStart:]
						trimmed = true
						break
					}
					currentTable = buffer[idx : idx+endIdx]
					idx += endIdx + 1
					state = stateFindValues
				}

				if state == stateFindValues {
					valuesIdx := strings.Index(buffer[idx:], "VALUES")
					if valuesIdx == -1 {
						if len(buffer) > lookBack {
							buffer = buffer[len(buffer)-lookBack:]
						}
						trimmed = true
						break
					}
					idx += valuesIdx + len("VALUES")
					values.reset(currentTable, p.Handler.WantTable(currentTable))
					state = stateParseValues
				}

				if state == stateParseValues {
					nextIdx, done, err := values.parseChunk(buffer, idx, p.Handler.OnRow)
					if err != nil {
						return err
					}
					idx = nextIdx
					if done {
						if p.Handler.OnDone != nil {
							if err := p.Handler.OnDone(currentTable); err != nil {
								return err
							}
						}
						state = stateSearch
						currentTable = ""
					}
				}
			}

			if !trimmed {
				if idx >= len(buffer) {
					buffer = ""
				} else if idx > 0 {
					buffer = buffer[idx:]
				}
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return readErr
		}
	}
}

// valuesParser walks a single VALUES (...) , (...) ; list.
type valuesParser struct {
	inString    bool
	escapeNext  bool
	depth       int
	field       strings.Builder
	fieldQuoted bool
	row         []Field
	table       string
	parseRows   bool
}

func (v *valuesParser) reset(table string, parseRows bool) {
	v.inString = false
	v.escapeNext = false
	v.depth = 0
	v.field.Reset()
	v.fieldQuoted = false
	v.row = nil
	v.table = table
	v.parseRows = parseRows
}

func (v *valuesParser) parseChunk(chunk string, startIndex int, onRow RowHandler) (int, bool, error) {
	i := startIndex
	for ; i < len(chunk); i++ {
		c := chunk[i]

		if v.inString {
			if v.escapeNext {
				if c < 0x80 {
					v.field.WriteByte(decodeEscape(c))
				} else {
					v.field.WriteByte(c)
				}
				v.escapeNext = false
				continue
			}
			if c == '\\' {
				v.escapeNext = true
				continue
			}
			if c == '\'' {
				v.inString = false
				continue
			}
			v.field.WriteByte(c)
			continue
		}

		switch {
		case c == '\'':
			v.inString = true
			v.fieldQuoted = true

		case c == '(':
			if v.depth == 0 {
				v.depth = 1
				v.row = v.row[:0]
				v.field.Reset()
				v.fieldQuoted = false
				continue
			}
			v.depth++
			if v.parseRows {
				v.field.WriteByte(c)
			}

		case c == ')':
			if v.depth == 1 {
				if v.parseRows {
					v.row = append(v.row, Field{Value: v.field.String(), Quoted: v.fieldQuoted})
					if onRow != nil {
						row := make([]Field, len(v.row))
						copy(row, v.row)
						if err := onRow(v.table, row); err != nil {
							return i, false, err
						}
					}
				}
				v.depth = 0
				v.field.Reset()
				v.fieldQuoted = false
				v.row = v.row[:0]
				continue
			}
			if v.depth > 0 {
				v.depth--
			}
			if v.parseRows {
				v.field.WriteByte(c)
			}

		case c == ',' && v.depth == 1 && v.parseRows:
			v.row = append(v.row, Field{Value: v.field.String(), Quoted: v.fieldQuoted})
			v.field.Reset()
			v.fieldQuoted = false

		case c == ';' && v.depth == 0:
			return i + 1, true, nil

		default:
			if v.parseRows && v.depth >= 1 {
				v.field.WriteByte(c)
			}
		}
	}

	return i, false, nil
}

func decodeEscape(c byte) byte {
	switch c {
	case '0':
		return 0
	case 'b':
		return '\b'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'Z':
		return 0x1a
	case '\'', '"', '\\':
		return c
	default:
		return c
	}
}
