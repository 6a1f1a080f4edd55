package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"webconfig/internal/schema"
	"webconfig/internal/store"
)

func renderSchema(t *testing.T, text string, set map[string]string) string {
	t.Helper()
	sc, err := schema.Build(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := store.New(sc, "A0B1C2")
	for name, v := range set {
		i, ok := s.IndexOf(name)
		if !ok {
			t.Fatalf("no parameter %q", name)
		}
		s.SetValue(i, v)
	}

	var buf bytes.Buffer
	if err := Form(&buf, s, DefaultLabels()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.String()
}

func TestForm_Frame(t *testing.T) {
	out := renderSchema(t, `[]`, nil)

	for _, want := range []string{
		"<!DOCTYPE HTML>",
		"<title>Device configuration</title>",
		"<form method='post'>",
		"<input type='text' value='A0B1C2' name='apName'>",
		"<button type='submit' name='SAVE'>Save</button>",
		"<button type='submit' name='RST'>Restart</button>",
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestForm_SimpleTypes(t *testing.T) {
	out := renderSchema(t, `[
		{"name":"t","label":"T","type":0,"default":"x"},
		{"name":"p","label":"P","type":1,"default":"secret"},
		{"name":"d","label":"D","type":3,"default":"2024-01-02"},
		{"name":"h","label":"H","type":6,"default":"12:30"},
		{"name":"c","label":"C","type":9,"default":"#ff0000"}
	]`, nil)

	for _, want := range []string{
		"<input type='text' value='x' name='t'>",
		"<input type='password' value='secret' name='p'>",
		"<input type='date' value='2024-01-02' name='d'>",
		"<input type='time' value='12:30' name='h'>",
		"<input type='color' value='#ff0000' name='c'>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestForm_NumberAndRange(t *testing.T) {
	out := renderSchema(t, `[
		{"name":"n","label":"N","type":2,"min":1,"max":9,"default":"5"},
		{"name":"r","label":"R","type":5,"default":"50"}
	]`, nil)

	if !strings.Contains(out, "<input type='number' min='1' max='9' value='5' name='n'>") {
		t.Errorf("number input not rendered:\n%s", out)
	}
	if !strings.Contains(out, "0&nbsp;<input type='range' min='0' max='100' value='50' name='r'>&nbsp;100") {
		t.Errorf("range input not rendered:\n%s", out)
	}
}

func TestForm_Checkbox(t *testing.T) {
	schemaText := `[{"name":"led","label":"LED","type":4,"default":"0"}]`

	out := renderSchema(t, schemaText, nil)
	if strings.Contains(out, "checked") {
		t.Errorf("checkbox with value 0 must not be checked")
	}
	if !strings.Contains(out, "<input type='checkbox' name='led'>LED") {
		t.Errorf("checkbox not rendered:\n%s", out)
	}

	out = renderSchema(t, schemaText, map[string]string{"led": "1"})
	if !strings.Contains(out, "<input type='checkbox' checked name='led'>") {
		t.Errorf("checkbox with value 1 must be checked:\n%s", out)
	}
}

const choices = `[{"v":"a","l":"Alpha"},{"v":"b","l":"Beta"},{"v":"c","l":"Gamma"}]`

func TestForm_Radio(t *testing.T) {
	schemaText := `[{"name":"m","label":"Mode","type":7,"default":"b","options":` + choices + `}]`

	out := renderSchema(t, schemaText, nil)
	if n := strings.Count(out, " checked"); n != 1 {
		t.Fatalf("expected exactly one checked radio, got %d", n)
	}
	if !strings.Contains(out, "<input type='radio' name='m' value='b' checked>Beta") {
		t.Errorf("matching radio not checked:\n%s", out)
	}
	if strings.Count(out, "type='radio'") != 3 {
		t.Errorf("expected one radio per option")
	}

	out = renderSchema(t, schemaText, map[string]string{"m": "z"})
	if strings.Contains(out, " checked") {
		t.Errorf("no radio may be checked when nothing matches")
	}
}

func TestForm_Select(t *testing.T) {
	schemaText := `[{"name":"m","label":"Mode","type":8,"default":"c","options":` + choices + `}]`

	out := renderSchema(t, schemaText, nil)
	if n := strings.Count(out, " selected"); n != 1 {
		t.Fatalf("expected exactly one selected option, got %d", n)
	}
	if !strings.Contains(out, "<option value='c' selected>Gamma</option>") {
		t.Errorf("matching option not selected:\n%s", out)
	}
	if strings.Count(out, "<select name='m'>") != 1 || strings.Count(out, "</select>") != 1 {
		t.Errorf("select must be opened and closed once")
	}

	out = renderSchema(t, schemaText, map[string]string{"m": ""})
	if strings.Contains(out, " selected") {
		t.Errorf("no option may be selected when nothing matches")
	}
}

func TestForm_OrderAndSeparators(t *testing.T) {
	out := renderSchema(t, `[
		{"name":"first","label":"First"},
		{"name":"odd","label":"Odd","type":42},
		{"name":"last","label":"Last","type":4,"default":"1"}
	]`, nil)

	if strings.Count(out, "<hr>") != 3 {
		t.Errorf("expected one separator per parameter, got %d", strings.Count(out, "<hr>"))
	}
	if strings.Contains(out, "Odd") {
		t.Errorf("unknown types must render an empty block")
	}
	if strings.Index(out, "name='first'") > strings.Index(out, "name='last'") {
		t.Errorf("blocks must follow declaration order")
	}
}

func TestForm_EscapesMarkup(t *testing.T) {
	out := renderSchema(t, `[{"name":"t","label":"<b>x</b>","default":"a'><script>"}]`, nil)

	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>x</b>") {
		t.Fatalf("markup must be escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;x&lt;/b&gt;") {
		t.Errorf("label not escaped as text:\n%s", out)
	}
}

type failingWriter struct{ writes int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("connection reset")
}

func TestForm_StopsOnWriteError(t *testing.T) {
	sc, _ := schema.Build(`[{"name":"a","label":"A"},{"name":"b","label":"B"}]`)
	w := &failingWriter{}

	if err := Form(w, store.New(sc, ""), DefaultLabels()); err == nil {
		t.Fatal("expected write error")
	}
	if w.writes != 1 {
		t.Errorf("rendering must stop after the first failed write, got %d writes", w.writes)
	}
}
