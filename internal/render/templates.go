package render

import "html/template"

// The pages are deliberately plain: they are static artifacts regenerated on
// every run and restyled by whatever serves them.

const groupPageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Group.Name}}</title></head>
<body>
<h1>{{.Group.Name}}</h1>
<ul class="stations">
{{range .Reports}}
  <li class="station freshness-{{.Freshness}}">
    <h2><a href="station/{{.Aggregate.Station.ID}}/">{{.Aggregate.Station.StationName}}</a></h2>
    {{if .Aggregate.CommonDate}}<p class="common-date">{{.Aggregate.CommonDate.Format "2006-01-02 15:04"}}</p>{{end}}
    {{if .Aggregate.Error}}<p class="partial-data">Some measurements are missing.</p>{{end}}
    <table>
    {{range .Aggregate.Series}}
      <tr class="status-{{.Status}}">
        <td>{{.Series.FullName}}</td>
        <td>{{if .Value}}{{.Series.FormatValue (deref .Value)}}{{else}}?{{end}}</td>
      </tr>
    {{end}}
    </table>
  </li>
{{end}}
</ul>
</body>
</html>
`

const stationPageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Aggregate.Station.StationName}}</title></head>
<body>
<h1 class="freshness-{{.Freshness}}">{{.Aggregate.Station.StationName}}</h1>
{{if .Aggregate.CommonDate}}<p class="common-date">{{.Aggregate.CommonDate.Format "2006-01-02 15:04"}}</p>{{end}}
{{if .Aggregate.Error}}<p class="partial-data">Some measurements are missing.</p>{{end}}
<table>
{{range .Aggregate.Series}}
  <tr class="status-{{.Status}}">
    <td>{{.Series.FullName}}</td>
    <td>{{if .Value}}{{.Series.FormatValue (deref .Value)}}{{else}}?{{end}}</td>
  </tr>
{{end}}
</table>
{{range .Charts}}
<img src="../../chart/{{.}}.png" alt="chart">
{{end}}
</body>
</html>
`

func newTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"deref": func(v *float64) float64 { return *v },
	}
	t, err := template.New("group").Funcs(funcs).Parse(groupPageTemplate)
	if err != nil {
		return nil, err
	}
	if _, err := t.New("station").Parse(stationPageTemplate); err != nil {
		return nil, err
	}
	return t, nil
}
