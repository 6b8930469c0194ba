package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"

	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/domain/port"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AI Accessibility Report</title>
<style>
body { font-family: sans-serif; max-width: 980px; margin: 2em auto; color: #1a1a1a; }
img { max-width: 100%; border: 1px solid #ccc; }
.score { font-size: 1.2em; }
</style>
</head>
<body>
<h1>AI Accessibility Report</h1>
<p>Generated on: {{.GeneratedAt}}</p>
{{if .Screenshot}}<img src="{{.Screenshot}}" alt="Uploaded UI screenshot">{{end}}
<h2>WCAG Evaluation Results:</h2>
<ul>
<li>Contrast Score: {{printf "%.2f" .Rules.Contrast}}</li>
<li>Use of Color: {{.Color}}</li>
<li>Text Resize Support: {{.TextResize}}</li>
<li>Alt Text Presence: {{.AltText}}</li>
</ul>
<p class="score">Rule-Based Score: {{printf "%.2f" .Scores.Rule}}/100 ({{.Grade}})</p>
<p class="score">ML-Predicted Score: {{printf "%.2f" .Scores.ML}}/100</p>
{{if .Suggestions}}<h2>Suggestions:</h2>
<ul>
{{range .Suggestions}}<li>{{.}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`))

type htmlView struct {
	GeneratedAt string
	Screenshot  template.URL
	Rules       entity.RuleResult
	Color       string
	TextResize  string
	AltText     string
	Scores      entity.ScorePair
	Grade       string
	Suggestions []string
}

// HTMLRenderer отчёт одним HTML-файлом со встроенным превью.
type HTMLRenderer struct{}

var _ port.ReportRenderer = (*HTMLRenderer)(nil)

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render собирает HTML-документ.
func (r *HTMLRenderer) Render(ctx context.Context, rep *entity.Report) (*entity.Artifact, error) {
	_ = ctx
	if rep == nil {
		return nil, errors.New("report is nil")
	}

	view := htmlView{
		GeneratedAt: rep.GeneratedAt.Format(TimeLayout),
		Rules:       rep.Rules,
		Color:       entity.PassedLabel(rep.Rules.Color),
		TextResize:  entity.PassedLabel(rep.Rules.TextResize),
		AltText:     entity.PresentLabel(rep.Rules.AltText),
		Scores:      rep.Scores,
		Grade:       rep.Grade,
		Suggestions: rep.Suggestions,
	}

	if rep.Image != nil {
		data, err := encodePNG(thumbnail(rep.Image, ThumbnailWidth))
		if err != nil {
			return nil, err
		}
		view.Screenshot = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	return &entity.Artifact{
		Name:        "accessibility_report.html",
		ContentType: "text/html; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}
