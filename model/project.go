package model

import (
	"strings"
	"time"
)

// Project はポートフォリオの1件を表すモデルです。
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Technologies []string  `json:"technologies"`
	GitHub       string    `json:"github"`
	Demo         string    `json:"demo"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`      // last save
	CreatedAt    time.Time `json:"createdAt"` // first save, kept across edits
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Draft はユーザーが入力したプロジェクトの編集可能な部分です。
// 新規プロジェクトではIDは0です。
type Draft struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Technologies []string `json:"technologies"`
	GitHub       string   `json:"github"`
	Demo         string   `json:"demo"`
	Status       string   `json:"status"`
}

// Normalize はテキスト項目をトリムし、空の技術を除き、
// カテゴリとステータスにフォームの既定値を設定します。
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.GitHub = strings.TrimSpace(d.GitHub)
	d.Demo = strings.TrimSpace(d.Demo)
	d.Status = strings.TrimSpace(d.Status)
	if d.Category == "" {
		d.Category = string(CategoryWeb)
	}
	if d.Status == "" {
		d.Status = string(StatusCompleted)
	}
	d.Technologies = cleanTechnologies(d.Technologies)
	return d
}

// Validate は保存時に必須の項目を検証します。
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return NewValidationError("title is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return NewValidationError("description is required")
	}
	return nil
}

// DraftOf は保存するとpを再現するDraftを返します。
func DraftOf(p Project) Draft {
	return Draft{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Technologies: append([]string(nil), p.Technologies...),
		GitHub:       p.GitHub,
		Demo:         p.Demo,
		Status:       p.Status,
	}
}

// Build はdをnowに保存したProjectを生成します。createdAtは
// 置き換え対象の作成日時で、新規の場合はゼロ値です。
func (d Draft) Build(id int64, createdAt, now time.Time) Project {
	if createdAt.IsZero() {
		createdAt = now
	}
	techs := d.Technologies
	if techs == nil {
		techs = []string{}
	}
	return Project{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		Technologies: techs,
		GitHub:       d.GitHub,
		Demo:         d.Demo,
		Status:       d.Status,
		Date:         now,
		CreatedAt:    createdAt,
		UpdatedAt:    now,
	}
}

// Validate はバックアップファイルなどから読み込んだプロジェクトを検証します。
func (p *Project) Validate() error {
	if p.ID <= 0 {
		return NewValidationError("id must be positive")
	}
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return NewValidationError("description is required")
	}
	return nil
}

// Clone はpのディープコピーを返します。
func (p Project) Clone() Project {
	if p.Technologies != nil {
		p.Technologies = append([]string(nil), p.Technologies...)
	}
	return p
}

func cleanTechnologies(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
