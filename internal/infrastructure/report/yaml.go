package report

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/domain/port"
)

// Document машиночитаемая форма отчёта.
type Document struct {
	GeneratedAt string           `yaml:"generated_at"`
	Image       ImageInfo        `yaml:"image"`
	Results     Results          `yaml:"results"`
	Scores      entity.ScorePair `yaml:"scores"`
	Grade       string           `yaml:"grade"`
	Suggestions []string         `yaml:"suggestions"`
}

type ImageInfo struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Results struct {
	Contrast   float64 `yaml:"contrast"`
	Color      bool    `yaml:"color"`
	TextResize bool    `yaml:"text_resize"`
	AltText    bool    `yaml:"alt_text"`
}

// YAMLRenderer отчёт в YAML, без встроенного изображения.
type YAMLRenderer struct{}

var _ port.ReportRenderer = (*YAMLRenderer)(nil)

func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

func (r *YAMLRenderer) Render(ctx context.Context, rep *entity.Report) (*entity.Artifact, error) {
	_ = ctx
	if rep == nil {
		return nil, errors.New("report is nil")
	}

	doc := Document{
		GeneratedAt: rep.GeneratedAt.Format(TimeLayout),
		Results: Results{
			Contrast:   rep.Rules.Contrast,
			Color:      rep.Rules.Color,
			TextResize: rep.Rules.TextResize,
			AltText:    rep.Rules.AltText,
		},
		Scores:      rep.Scores,
		Grade:       rep.Grade,
		Suggestions: rep.Suggestions,
	}
	if rep.Image != nil {
		doc.Image = ImageInfo{Width: rep.Image.Bounds().Dx(), Height: rep.Image.Bounds().Dy()}
	}
	if doc.Suggestions == nil {
		doc.Suggestions = []string{}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return &entity.Artifact{
		Name:        "accessibility_report.yaml",
		ContentType: "application/yaml",
		Data:        data,
	}, nil
}
