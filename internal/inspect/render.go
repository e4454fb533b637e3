package inspect

import (
	"html/template"
	"io"
	"strings"

	"github.com/rzbill/flexbuf/internal/linering"
)

const cellsPerRow = 40

var page = template.Must(template.New("snapshot").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>flexbuf snapshot</title>
<style>
  body { font-family: monospace; margin: 12px; }
  table { border-collapse: collapse; margin: 4px; }
  td, th { border: 1px solid #999; padding: 2px 5px; text-align: center; }
  .buffer-cell { min-width: 18px; }
  .buffer-first-line-cell { border-left: 3px solid #000; }
  .buffer-last-line-cell { border-right: 3px solid #000; }
  .color-0 { background: #ffd9d9; } .color-1 { background: #ffedd9; }
  .color-2 { background: #fffbd9; } .color-3 { background: #e3ffd9; }
  .color-4 { background: #d9fff3; } .color-5 { background: #d9f2ff; }
  .color-6 { background: #d9ddff; } .color-7 { background: #f0d9ff; }
  .color-8 { background: #ffd9f2; } .color-9 { background: #e8e8e8; }
</style>
</head>
<body>
  <p style="margin: 4px;">BufferSize: {{.Cap}}, MaxLines: {{.MaxLines}}</p>
  <p style="margin: 4px;">Buffer cells:</p>
  <table id="Buffer">
{{- range .Rows}}
    <tr>
{{- range .}}
      <td class="{{.Classes}}"><span>{{.Text}}</span></td>
{{- end}}
    </tr>
{{- end}}
  </table>
  <p style="margin: 4px;">IndexFirstLine: {{.First}}, IndexLastLine: {{.Last}}</p>
  <p style="margin: 4px;">Lines:</p>
  <table id="Lines">
    <tr>
      <th><span>slot</span></th>
      <th><span>id</span></th>
      <th><span>start</span></th>
      <th><span>end</span></th>
      <th><span>length</span></th>
      <th><span>data</span></th>
    </tr>
{{- range .Markers}}
    <tr class="color-{{.Color}}">
      <td><span>{{.Slot}}</span></td>
      <td><span>{{.ID}}</span></td>
      <td><span>{{.Start}}</span></td>
      <td><span>{{.End}}</span></td>
      <td><span>{{.Length}}</span></td>
      <td><span>{{.Data}}</span></td>
    </tr>
{{- end}}
  </table>
</body>
</html>
`))

type cellView struct {
	Text    string
	Classes string
}

type markerView struct {
	Slot   int
	ID     uint32
	Start  int
	End    int
	Length int
	Color  uint32
	Data   string
}

type pageView struct {
	Cap      int
	MaxLines int
	First    int
	Last     int
	Rows     [][]cellView
	Markers  []markerView
}

// Render writes an HTML rendering of the snapshot to w.
func Render(w io.Writer, s linering.Snapshot[byte]) error {
	pv := pageView{
		Cap:      s.Cap,
		MaxLines: s.MaxLines,
		First:    s.First,
		Last:     s.Last,
	}

	var row []cellView
	for i, c := range s.Cells {
		classes := []string{"buffer-cell"}
		if mv, ok := s.MarkerOf(i); ok {
			if mv.Start == i {
				classes = append(classes, "buffer-first-line-cell")
			}
			if mv.End == i {
				classes = append(classes, "buffer-last-line-cell")
			}
			classes = append(classes, colorClass(mv.ID))
		}
		row = append(row, cellView{Text: printable(c), Classes: strings.Join(classes, " ")})
		if len(row) == cellsPerRow {
			pv.Rows = append(pv.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		pv.Rows = append(pv.Rows, row)
	}

	for _, mv := range s.Markers {
		pv.Markers = append(pv.Markers, markerView{
			Slot:   mv.Slot,
			ID:     mv.ID,
			Start:  mv.Start,
			End:    mv.End,
			Length: mv.Length,
			Color:  mv.ID % 10,
			Data:   markerText(s, mv),
		})
	}

	return page.Execute(w, pv)
}

func colorClass(id uint32) string {
	return "color-" + string(rune('0'+id%10))
}

// printable maps one pool cell to its grid representation. Control
// characters render as escapes so terminators and newlines stay visible.
func printable(c byte) string {
	switch c {
	case 0:
		return `\0`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	}
	if c < 0x20 || c > 0x7e {
		return "."
	}
	return string(c)
}

func markerText(s linering.Snapshot[byte], mv linering.MarkerView) string {
	var b strings.Builder
	for i, n := mv.Start, 0; n < mv.Length; i, n = (i+1)%s.Cap, n+1 {
		b.WriteString(printable(s.Cells[i]))
	}
	return b.String()
}
