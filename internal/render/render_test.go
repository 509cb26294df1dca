package render

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"gopkg.in/yaml.v3"

	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/sql"
)

func parse(t *testing.T, src string) []ast.Node {
	t.Helper()
	nodes, err := sql.ParseScript(src)
	if err != nil {
		t.Fatalf("ParseScript(%q): %v", src, err)
	}
	return nodes
}

func TestStatementsYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Statements(&buf, FormatYAML, parse(t, "DELETE FROM sql.users WHERE id = 1; COMMIT")); err != nil {
		t.Fatalf("Statements: %v", err)
	}

	var got []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, buf.String())
	}
	want := []map[string]interface{}{
		{
			TypeKey: "DeleteStmt",
			"Table": map[string]interface{}{
				"Table": map[string]interface{}{"Schema": "sql", "Name": "users"},
			},
			"Where": map[string]interface{}{
				TypeKey: "BinaryExpr",
				"Left":  map[string]interface{}{TypeKey: "QualifiedColumn", "Column": "id"},
				"Op":    "=",
				"Right": map[string]interface{}{TypeKey: "Literal", "Kind": "Integer", "Text": "1"},
			},
		},
		{TypeKey: "CommitStmt"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("yaml mismatch:\n%s\n%s", strings.Join(diff, "\n"), buf.String())
	}
}

func TestStatementsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Statements(&buf, FormatJSON, parse(t, "BEGIN IMMEDIATE; CREATE INDEX i ON t (a desc)")); err != nil {
		t.Fatalf("Statements: %v", err)
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, buf.String())
	}
	want := []map[string]interface{}{
		{TypeKey: "BeginStmt", "Mode": "IMMEDIATE"},
		{
			TypeKey:       "CreateIndexStmt",
			"Unique":      false,
			"IfNotExists": false,
			"Index":       map[string]interface{}{"Name": "i"},
			"Table":       "t",
			"Columns":     []interface{}{map[string]interface{}{"Name": "a", "Asc": false}},
		},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("json mismatch:\n%s\n%s", strings.Join(diff, "\n"), buf.String())
	}
}

func TestJSONKeepsFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := Statements(&buf, FormatJSON, parse(t, "SELECT a FROM t WHERE b LIMIT 1")); err != nil {
		t.Fatalf("Statements: %v", err)
	}
	out := buf.String()
	core := strings.Index(out, `"Core"`)
	limit := strings.Index(out, `"Limit"`)
	if core < 0 || limit < 0 || core > limit {
		t.Errorf("fields out of declaration order:\n%s", out)
	}
}

func TestTreeQuotesAmbiguousStrings(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatYAML, Tree(ast.String("true"))); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["Text"] != "true" {
		t.Errorf("Text = %#v, want the string \"true\"", got["Text"])
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, "xml", Tree(nil)); err == nil {
		t.Error("Encode accepted an unknown format")
	}
}

// decode renders src as format and decodes the document generically; the
// yaml decoder reads both formats.
func decode(t *testing.T, src, format string) []interface{} {
	t.Helper()
	var buf bytes.Buffer
	if err := Statements(&buf, format, parse(t, src)); err != nil {
		t.Fatalf("Statements: %v", err)
	}
	var doc []interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output does not decode: %v\n%s", err, buf.String())
	}
	return doc
}

// collect returns every mapping under v whose TypeKey is typ, in document order.
func collect(v interface{}, typ string) []map[string]interface{} {
	var out []map[string]interface{}
	switch x := v.(type) {
	case map[string]interface{}:
		if x[TypeKey] == typ {
			out = append(out, x)
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, collect(x[k], typ)...)
		}
	case []interface{}:
		for _, c := range x {
			out = append(out, collect(c, typ)...)
		}
	}
	return out
}

func TestZeroValueEnumsRender(t *testing.T) {
	src := `SELECT a || b, ~a FROM t UNION SELECT NULL;
		BEGIN;
		INSERT INTO t VALUES (1);
		SELECT * FROM a, b ON x;
		CREATE TRIGGER tr DELETE ON t BEGIN SELECT 1; END`

	for _, format := range []string{FormatYAML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			doc := decode(t, src, format)
			if len(doc) != 5 {
				t.Fatalf("expected 5 statements, got %d", len(doc))
			}

			bins := collect(doc[0], "BinaryExpr")
			if len(bins) != 1 || bins[0]["Op"] != "||" {
				t.Errorf("concat = %v", bins)
			}
			unary := collect(doc[0], "UnaryExpr")
			if len(unary) != 1 || unary[0]["Op"] != "~" {
				t.Errorf("bitwise not = %v", unary)
			}
			compounds := doc[0].(map[string]interface{})["Compounds"].([]interface{})
			if op := compounds[0].(map[string]interface{})["Op"]; op != "UNION" {
				t.Errorf("compound Op = %v, want UNION", op)
			}
			nulls := collect(doc[0], "Literal")
			if len(nulls) != 1 || nulls[0]["Kind"] != "Null" {
				t.Errorf("null literal = %v", nulls)
			}

			if mode := doc[1].(map[string]interface{})["Mode"]; mode != "DEFERRED" {
				t.Errorf("BEGIN Mode = %v, want DEFERRED", mode)
			}

			header := doc[2].(map[string]interface{})["Header"]
			want := map[string]interface{}{"Replace": false, "Conflict": "ABORT"}
			if diff := deep.Equal(header, want); diff != nil {
				t.Errorf("insert header: %v", diff)
			}

			joins := collect(doc[3], "JoinClause")
			if len(joins) != 1 {
				t.Fatalf("expected a join clause, got %v", doc[3])
			}
			sub := joins[0]["Joins"].([]interface{})[0].(map[string]interface{})
			if diff := deep.Equal(sub["Op"], map[string]interface{}{"Kind": "COMMA"}); diff != nil {
				t.Errorf("comma join Op: %v", diff)
			}

			trigger := doc[4].(map[string]interface{})
			if trigger["Timing"] != "BEFORE" {
				t.Errorf("trigger Timing = %v, want BEFORE", trigger["Timing"])
			}
			if diff := deep.Equal(trigger["Event"], map[string]interface{}{"Kind": "DELETE"}); diff != nil {
				t.Errorf("trigger Event: %v", diff)
			}
		})
	}
}

func TestEnumKindsRenderByName(t *testing.T) {
	doc := decode(t, `SELECT * FROM a NATURAL LEFT OUTER JOIN b CROSS JOIN c;
		CREATE TRIGGER tr AFTER UPDATE OF x, y ON t BEGIN SELECT 1; END`, FormatJSON)

	joins := collect(doc[0], "JoinClause")
	if len(joins) != 1 {
		t.Fatalf("expected a join clause, got %v", doc[0])
	}
	subs := joins[0]["Joins"].([]interface{})
	want := []interface{}{
		map[string]interface{}{"Kind": "OUTER", "Natural": true, "Outer": "LEFT"},
		map[string]interface{}{"Kind": "CROSS"},
	}
	for i, w := range want {
		if diff := deep.Equal(subs[i].(map[string]interface{})["Op"], w); diff != nil {
			t.Errorf("join %d Op: %v", i, diff)
		}
	}

	event := doc[1].(map[string]interface{})["Event"]
	wantEvent := map[string]interface{}{"Kind": "UPDATE", "Columns": []interface{}{"x", "y"}}
	if diff := deep.Equal(event, wantEvent); diff != nil {
		t.Errorf("trigger Event: %v", diff)
	}
}

func TestLiteralFieldsFollowKind(t *testing.T) {
	tests := []struct {
		lit  *ast.Literal
		want map[string]interface{}
	}{
		{ast.Integer("7"), map[string]interface{}{TypeKey: "Literal", "Kind": "Integer", "Text": "7"}},
		{ast.String(""), map[string]interface{}{TypeKey: "Literal", "Kind": "String", "Text": ""}},
		{ast.Null(), map[string]interface{}{TypeKey: "Literal", "Kind": "Null"}},
		{ast.Bool(false), map[string]interface{}{TypeKey: "Literal", "Kind": "Bool", "Bool": false}},
	}
	for _, tt := range tests {
		t.Run(tt.lit.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, FormatYAML, Tree(tt.lit)); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			var got map[string]interface{}
			if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if diff := deep.Equal(got, tt.want); diff != nil {
				t.Errorf("%s\n%s", strings.Join(diff, "\n"), buf.String())
			}
		})
	}
}

func TestJSONDoesNotEscapeOperators(t *testing.T) {
	var buf bytes.Buffer
	if err := Statements(&buf, FormatJSON, parse(t, "SELECT a FROM t WHERE a > 1 AND b < 2 AND c <> d")); err != nil {
		t.Fatalf("Statements: %v", err)
	}
	out := buf.String()
	for _, op := range []string{`"Op": ">"`, `"Op": "<"`, `"Op": "!="`} {
		if !strings.Contains(out, op) {
			t.Errorf("output missing %s:\n%s", op, out)
		}
	}
	if strings.Contains(out, `\u003`) {
		t.Errorf("operators were HTML-escaped:\n%s", out)
	}
}
