package sqldump

import (
	"strings"
	"testing"
	"testing/iotest"
)

type capturedRow struct {
	table string
	row   []Field
}

func parseAll(t *testing.T, dump string, want TableFilter, oneByte bool) ([]capturedRow, []string) {
	t.Helper()

	var rows []capturedRow
	var done []string
	p := NewParser(Handler{
		WantTable: want,
		OnRow: func(table string, row []Field) error {
			rows = append(rows, capturedRow{table: table, row: row})
			return nil
		},
		OnDone: func(table string) error {
			done = append(done, table)
			return nil
		},
	})

	var err error
	if oneByte {
		err = p.Parse(iotest.OneByteReader(strings.NewReader(dump)))
	} else {
		err = p.Parse(strings.NewReader(dump))
	}
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return rows, done
}

func TestParseSimpleInsert(t *testing.T) {
	dump := "INSERT INTO `surahs` VALUES (1,1,'الفاتحة','Fatiha','The Opening');\n"
	rows, done := parseAll(t, dump, nil, false)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].table != "surahs" {
		t.Errorf("table = %q", rows[0].table)
	}
	fields := rows[0].row
	if len(fields) != 5 {
		t.Fatalf("expected 5 fields, got %d: %+v", len(fields), fields)
	}
	if id, ok := fields[0].Int(); !ok || id != 1 {
		t.Errorf("field 0 = %+v", fields[0])
	}
	if fields[2].String() != "الفاتحة" {
		t.Errorf("field 2 = %q", fields[2].String())
	}
	if len(done) != 1 || done[0] != "surahs" {
		t.Errorf("done = %v", done)
	}
}

func TestParseMultiRowAndMultiStatement(t *testing.T) {
	dump := "INSERT INTO `ayahs` VALUES (1,1,1,'text one'),(2,1,2,'text two');\n" +
		"INSERT INTO `other` VALUES (9,'skip me');\n" +
		"INSERT INTO `ayahs` VALUES (3,1,3,'text three');\n"

	rows, done := parseAll(t, dump, func(table string) bool { return table == "ayahs" }, false)

	if len(rows) != 3 {
		t.Fatalf("expected 3 ayah rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.table != "ayahs" {
			t.Errorf("unexpected table %q", r.table)
		}
	}
	// Skipped statements still report their boundary so state stays aligned.
	if len(done) != 3 {
		t.Errorf("expected 3 statement boundaries, got %v", done)
	}
}

func TestParseEscapes(t *testing.T) {
	dump := `INSERT INTO ` + "`t`" + ` VALUES (1,'it\'s a \"quoted\" line\nwith\ttabs and \\ backslash');`
	rows, _ := parseAll(t, dump, nil, false)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0].row[1].String()
	want := "it's a \"quoted\" line\nwith\ttabs and \\ backslash"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseNullHandling(t *testing.T) {
	dump := "INSERT INTO `t` VALUES (1,NULL,'NULL','');"
	rows, _ := parseAll(t, dump, nil, false)

	fields := rows[0].row
	if !fields[1].Null() {
		t.Error("bare NULL should be null")
	}
	if fields[2].Null() {
		t.Error("the quoted string 'NULL' is data, not null")
	}
	if fields[3].Null() {
		t.Error("an empty quoted string is not null")
	}
	if fields[3].Quoted != true {
		t.Error("empty string field should be marked quoted")
	}
}

func TestParseNestedParens(t *testing.T) {
	dump := "INSERT INTO `t` VALUES (1,'a',POINT(3,4));"
	rows, _ := parseAll(t, dump, nil, false)

	fields := rows[0].row
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %+v", len(fields), fields)
	}
	if fields[2].Value != "POINT(3,4)" {
		t.Errorf("nested call should stay one field, got %q", fields[2].Value)
	}
}

func TestParseSemicolonInsideString(t *testing.T) {
	dump := "INSERT INTO `t` VALUES (1,'a;b');INSERT INTO `t` VALUES (2,'c');"
	rows, done := parseAll(t, dump, nil, false)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].row[1].String() != "a;b" {
		t.Errorf("semicolon inside a string must not end the statement, got %q", rows[0].row[1].String())
	}
	if len(done) != 2 {
		t.Errorf("expected 2 boundaries, got %v", done)
	}
}

func TestParseAcrossChunkBoundaries(t *testing.T) {
	// A one-byte reader forces every marker to straddle a read boundary.
	dump := "garbage before INSERT INTO `mufassirs` VALUES (1,42,'Name En','İsim Tr','اسم');" +
		" trailing noise INSERT INTO `mufassirs` VALUES (2,43,'Second',NULL,NULL);"
	rows, _ := parseAll(t, dump, nil, true)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].row[3].String() != "İsim Tr" {
		t.Errorf("multi-byte text corrupted across chunks: %q", rows[0].row[3].String())
	}
	if id, ok := rows[1].row[1].Int(); !ok || id != 43 {
		t.Errorf("second row id = %+v", rows[1].row[1])
	}
}

func TestParseIgnoresUninterestingTables(t *testing.T) {
	dump := "INSERT INTO `huge_irrelevant` VALUES (1,'lots'),(2,'of'),(3,'rows');" +
		"INSERT INTO `surahs` VALUES (1,1,'ar','tr','en');"
	rows, _ := parseAll(t, dump, func(table string) bool { return table == "surahs" }, false)

	if len(rows) != 1 || rows[0].table != "surahs" {
		t.Fatalf("expected only the surahs row, got %+v", rows)
	}
}
