package render

import (
	"html/template"
	"io"

	"github.com/pkg/errors"

	"webconfig/internal/bind"
	"webconfig/internal/store"
	"webconfig/internal/structs"
)

// Labels are the literal texts of the page that do not come from the schema.
type Labels struct {
	Title    string
	Identity string
	Save     string
	Restart  string
}

func DefaultLabels() Labels {
	return Labels{
		Title:    "Device configuration",
		Identity: "Network name",
		Save:     "Save",
		Restart:  "Restart",
	}
}

const fragments = `
{{define "start"}}<!DOCTYPE HTML>
<html>
<head>
<meta charset='utf-8'>
<meta name='viewport' content='width=device-width, initial-scale=1'/>
<title>{{.Title}}</title>
<style>
body {
background-color: #d2f3eb;
font-family: Arial, Helvetica, Sans-Serif;
Color: #000000;
font-size:12pt;
width:320px;
}
.start {
font-weight:bold;
text-align:center;
width:100%;
padding:5px;
}
.item {
width:100%;
padding:5px;
text-align: left;
}
button {
font-size:14pt;
width:150px;
border-radius:10px;
margin:5px;
}
</style>
</head>
<body>
<div id='main_div' style='margin-left:15px;margin-right:15px;'>
<div class='start'>{{.Title}}</div>
<hr />
<form method='post'>
{{end}}

{{define "simple"}}<div class='item'><b>{{.Label}}</b></div>
<div class='item'><input type='{{.Type}}' value='{{.Value}}' name='{{.Name}}'></div>
{{end}}

{{define "number"}}<div class='item'><b>{{.Label}}</b></div>
<div class='item'><input type='number' min='{{.Min}}' max='{{.Max}}' value='{{.Value}}' name='{{.Name}}'></div>
{{end}}

{{define "range"}}<div class='item'><b>{{.Label}}</b></div>
<div class='item'>{{.Min}}&nbsp;<input type='range' min='{{.Min}}' max='{{.Max}}' value='{{.Value}}' name='{{.Name}}'>&nbsp;{{.Max}}</div>
{{end}}

{{define "checkbox"}}<div class='item'><b><input type='checkbox' {{if .Checked}}checked {{end}}name='{{.Name}}'>{{.Label}}</b></div>
{{end}}

{{define "title"}}<div class='item'><b>{{.Label}}</b></div>
{{end}}

{{define "radio"}}<div class='item'><input type='radio' name='{{.Name}}' value='{{.Value}}'{{if .Checked}} checked{{end}}>{{.Label}}</div>
{{end}}

{{define "selectStart"}}<div class='item'><b>{{.Label}}</b></div>
<div class='item'><select name='{{.Name}}'>
{{end}}

{{define "option"}}<option value='{{.Value}}'{{if .Checked}} selected{{end}}>{{.Label}}</option>
{{end}}

{{define "selectEnd"}}</select></div>
{{end}}

{{define "separator"}}<hr>
{{end}}

{{define "end"}}<div class='item'><button type='submit' name='{{.SaveField}}'>{{.Save}}</button>
<button type='submit' name='{{.RestartField}}'>{{.Restart}}</button></div>
</form>
</div>
</body>
</html>
{{end}}`

var page = template.Must(template.New("form").Parse(fragments))

type entry struct {
	Name    string
	Label   string
	Type    string
	Value   string
	Min     int
	Max     int
	Checked bool
}

type footer struct {
	Labels
	SaveField    string
	RestartField string
}

// renderer writes one fragment at a time and keeps the first error.
type renderer struct {
	w   io.Writer
	err error
}

func (r *renderer) fragment(name string, data interface{}) {
	if r.err != nil {
		return
	}
	if err := page.ExecuteTemplate(r.w, name, data); err != nil {
		r.err = errors.Wrapf(err, "error rendering %s", name)
	}
}

// Form streams the configuration page for the parameters and values held in s.
// Every parameter gets one block, in order, followed by a separator.
func Form(w io.Writer, s *store.Store, labels Labels) error {
	r := &renderer{w: w}

	r.fragment("start", labels)
	r.fragment("simple", entry{
		Name:  structs.IdentityKey,
		Label: labels.Identity,
		Type:  structs.Text.String(),
		Value: s.Identity(),
	})

	for i := 0; i < s.Count(); i++ {
		d := s.Descriptor(i)
		e := entry{
			Name:  d.Name,
			Label: d.Label,
			Type:  d.Type.String(),
			Value: s.Value(i),
			Min:   d.Min,
			Max:   d.Max,
		}

		switch d.Type {
		case structs.Text, structs.Password, structs.Date, structs.Time, structs.Color:
			r.fragment("simple", e)
		case structs.Number:
			r.fragment("number", e)
		case structs.Range:
			r.fragment("range", e)
		case structs.Checkbox:
			e.Checked = e.Value != "0"
			r.fragment("checkbox", e)
		case structs.Radio:
			r.fragment("title", e)
			for _, o := range d.Options {
				r.fragment("radio", entry{Name: d.Name, Value: o.Value, Label: o.Label, Checked: o.Value == e.Value})
			}
		case structs.Select:
			r.fragment("selectStart", e)
			for _, o := range d.Options {
				r.fragment("option", entry{Value: o.Value, Label: o.Label, Checked: o.Value == e.Value})
			}
			r.fragment("selectEnd", nil)
		case structs.Unknown:
		}

		r.fragment("separator", nil)
	}

	r.fragment("end", footer{Labels: labels, SaveField: bind.SaveField, RestartField: bind.RestartField})
	return r.err
}
