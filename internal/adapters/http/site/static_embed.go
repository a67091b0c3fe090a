package site

import (
	"embed"
	"html/template"

	"github.com/okian/studyscore/internal/dashboard"
)

//go:embed static/*.html
var staticFS embed.FS

var funcs = template.FuncMap{"displayName": dashboard.DisplayName}

var pageTmpl = template.Must(template.New("index.html").Funcs(funcs).ParseFS(staticFS, "static/index.html"))

var resultTmpl = template.Must(template.New("result").Parse(
	`<div id="result" class="result-container{{if .Visible}} show {{.Class}}{{end}}">{{.Message}}</div>`))

var panelTmpl = template.Must(template.New("panel").Parse(`{{if .Error}}<div class="error">{{.Error}}</div>{{else if .Cards}}{{with index .Cards 0}}<div class="metric-card">
  <div class="metric-label">{{.Label}}</div>
  <div class="metric-value">{{.Value}}</div>
</div>{{end}}
<div class="metric-grid">{{range slice .Cards 1}}
  <div class="metric-card">
    <div class="metric-label">{{.Label}}</div>
    <div class="metric-value">{{.Value}}</div>
    <div>{{.Hint}}</div>
  </div>{{end}}
</div>{{end}}`))
