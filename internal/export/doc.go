// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"html/template"
	"io"
	"strings"
)

// Word writes an HTML document with the Office namespaces that Microsoft
// Word opens as a .doc file. The AI summary, when present, precedes the
// table.
type Word struct{}

func (*Word) ContentType() string { return "application/msword" }

func (*Word) Extension() string { return "doc" }

var wordTemplate = template.Must(template.New("doc").Funcs(template.FuncMap{"isLink": isLink}).Parse(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
<head><meta charset="utf-8"><title>Report</title></head>
<body>
{{- if .Summary}}
<h2>AI SUMMARY:</h2>
<p>{{.Summary}}</p>
{{- end}}
<table border="1">
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range $i, $cell := .}}{{if eq $i $.LinkColumn}}<td>{{if isLink $cell}}<a href="{{$cell}}">link</a>{{else}}{{$cell}}{{end}}</td>{{else}}<td>{{$cell}}</td>{{end}}{{end}}</tr>
{{- end}}
</table>
</body>
</html>
`))

func (*Word) Export(w io.Writer, doc Document) error {
	rows := Rows(doc.Publications)
	return wordTemplate.Execute(w, struct {
		Summary    string
		Header     []string
		Rows       [][]string
		LinkColumn int
	}{
		Summary:    strings.TrimSpace(doc.Summary),
		Header:     rows[0],
		Rows:       rows[1:],
		LinkColumn: linkColumn,
	})
}
