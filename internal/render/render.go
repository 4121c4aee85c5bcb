// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces the localized HTML digest body.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// DateStats summarizes the publication-date distribution of the selected
// papers relative to the run time.
type DateStats struct {
	Today     int
	Yesterday int
	Older     int
	Earliest  time.Time
}

// Total returns the number of papers counted.
func (s DateStats) Total() int {
	return s.Today + s.Yesterday + s.Older
}

// sameDate reports whether a and b fall on the same calendar date in b's
// location.
func sameDate(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// AnalyzeDates counts papers published today, yesterday, and earlier,
// relative to now.
func AnalyzeDates(papers []types.ScoredPaper, now time.Time) DateStats {
	var stats DateStats
	yesterday := now.AddDate(0, 0, -1)

	for _, p := range papers {
		switch {
		case sameDate(p.Published, now):
			stats.Today++
		case sameDate(p.Published, yesterday):
			stats.Yesterday++
		default:
			stats.Older++
		}
		if stats.Earliest.IsZero() || p.Published.Before(stats.Earliest) {
			stats.Earliest = p.Published
		}
	}
	return stats
}

// noticeStyle selects the banner tone by how stale the digest is.
type noticeStyle struct {
	Icon       string
	Background string
	Border     string
	TextColor  string
}

// digestTmpl is the HTML email body. Per-paper fields are precomputed into
// paperView so the template stays declarative.
var digestTmpl = template.Must(template.New("digest").Parse(`<html>
<head>
<style>
  body { font-family: 'Segoe UI', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
  .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px; text-align: center; margin-bottom: 30px; }
  .header h1 { margin: 0; font-size: 28px; }
  .date { font-size: 14px; opacity: 0.9; margin-top: 10px; }
  .paper { background: white; padding: 25px; margin-bottom: 25px; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
  .paper-title { color: #667eea; font-size: 20px; font-weight: bold; margin-bottom: 10px; line-height: 1.4; }
  .quality-badge { display: inline-block; padding: 2px 8px; border-radius: 3px; font-size: 11px; font-weight: bold; margin-left: 8px; background: #ffd700; color: #856404; }
  .meta { color: #666; font-size: 14px; margin-bottom: 15px; padding-bottom: 15px; border-bottom: 2px solid #f0f0f0; }
  .meta-item { margin: 5px 0; }
  .date-badge { display: inline-block; padding: 2px 8px; border-radius: 3px; font-size: 11px; font-weight: bold; margin-left: 8px; }
  .date-today { background: #d4edda; color: #155724; }
  .date-yesterday { background: #d1ecf1; color: #0c5460; }
  .date-older { background: #f8d7da; color: #721c24; }
  .category-tag { background: #e8eaf6; color: #5c6bc0; padding: 3px 10px; border-radius: 12px; font-size: 12px; margin-right: 5px; display: inline-block; }
  .summary { background: #f8f9ff; padding: 15px; border-left: 4px solid #667eea; margin: 15px 0; border-radius: 4px; }
  .summary-title { font-weight: bold; color: #667eea; margin-bottom: 10px; }
  .link-button { display: inline-block; background: #667eea; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; font-size: 14px; }
  .footer { text-align: center; color: #999; font-size: 12px; margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; }
</style>
</head>
<body>
  <div class="header">
    <h1>📚 {{.Txt.Title}}</h1>
    <div class="date">{{.Date}}</div>
  </div>
{{if .Notice}}
  <div style="background: {{.Notice.Style.Background}}; border-left: 4px solid {{.Notice.Style.Border}}; padding: 15px 20px; margin-bottom: 25px; border-radius: 5px;">
    <div style="color: {{.Notice.Style.TextColor}}; font-size: 15px; line-height: 1.6;">
      <span style="font-size: 20px; margin-right: 8px;">{{.Notice.Style.Icon}}</span>
      <strong>{{.Txt.DateNotice}}:</strong> {{.Notice.Message}}
    </div>
  </div>
{{end}}
{{range .Papers}}
  <div class="paper">
    <div class="paper-title">{{.Index}}. {{.Title}}<span class="date-badge {{.DateBadgeClass}}">{{.DateBadge}}</span>{{if .HighQuality}}<span class="quality-badge">{{$.Txt.HighQuality}}</span>{{end}}</div>
    <div class="meta">
      <div class="meta-item"><strong>👥 {{$.Txt.Authors}}:</strong> {{.Authors}}</div>
      <div class="meta-item"><strong>📅 {{$.Txt.Published}}:</strong> {{.Published}}</div>
      <div class="meta-item"><strong>🏷️ {{$.Txt.Categories}}:</strong> {{range .Categories}}<span class="category-tag">{{.}}</span>{{end}}</div>
      <div class="meta-item"><strong>📊 {{$.Txt.QualityScore}}:</strong> {{.Score}}</div>
    </div>
    <div class="summary">
      <div class="summary-title">🤖 {{$.Txt.AISummary}}</div>
      {{if .Bilingual}}
      <div style="margin-bottom: 15px;">
        <div style="font-weight: bold; color: #667eea; margin-bottom: 8px;">🇨🇳 中文摘要</div>
        <div>{{.SummaryZH}}</div>
      </div>
      <div>
        <div style="font-weight: bold; color: #667eea; margin-bottom: 8px;">🇬🇧 English Summary</div>
        <div>{{.SummaryEN}}</div>
      </div>
      {{else}}
      <div>{{.SummaryOne}}</div>
      {{end}}
    </div>
    <div class="links"><a href="{{.PDFURL}}" class="link-button">📄 {{$.Txt.ViewPDF}}</a></div>
  </div>
{{end}}
  <div class="footer">
    <p>{{.Txt.FooterAuto}}</p>
    <p>{{.Txt.FooterPowered}}</p>
  </div>
</body>
</html>
`))

// paperView is one paper prepared for the template.
type paperView struct {
	Index          int
	Title          string
	DateBadge      string
	DateBadgeClass string
	HighQuality    bool
	Authors        string
	Published      string
	Categories     []string
	Score          string
	Bilingual      bool
	SummaryZH      template.HTML
	SummaryEN      template.HTML
	SummaryOne     template.HTML
	PDFURL         string
}

// notice is the date-reminder banner, nil when every paper is fresh.
type notice struct {
	Message template.HTML
	Style   noticeStyle
}

type digestData struct {
	Txt    Strings
	Date   string
	Notice *notice
	Papers []paperView
}

// HTML renders the full digest body for the selected papers.
func HTML(papers []types.SummarizedPaper, stats DateStats, now time.Time, lang types.Language) (string, error) {
	txt := localize(lang)

	data := digestData{
		Txt:    txt,
		Date:   now.Format("2006-01-02"),
		Notice: buildNotice(stats, now, txt),
	}

	yesterday := now.AddDate(0, 0, -1)
	for i, p := range papers {
		view := paperView{
			Index:       i + 1,
			Title:       p.Title,
			HighQuality: p.Score >= 5.0,
			Authors:     truncate(strings.Join(p.Authors, ", "), 200),
			Published:   p.Published.Format("2006-01-02 15:04"),
			Categories:  p.Categories,
			Score:       fmt.Sprintf("%.1f", p.Score),
			PDFURL:      p.PDFURL,
		}
		if len(view.Categories) > 3 {
			view.Categories = view.Categories[:3]
		}

		switch {
		case sameDate(p.Published, now):
			view.DateBadge = txt.NewToday
			view.DateBadgeClass = "date-today"
		case sameDate(p.Published, yesterday):
			view.DateBadge = txt.YesterdayLabel
			view.DateBadgeClass = "date-yesterday"
		default:
			days := daysBetween(p.Published, now)
			view.DateBadge = fmt.Sprintf(txt.DaysAgoLabel, days)
			view.DateBadgeClass = "date-older"
		}

		if lang == types.LangBilingual {
			view.Bilingual = true
			view.SummaryZH = nl2br(p.Summary[string(types.LangChinese)])
			view.SummaryEN = nl2br(p.Summary[string(types.LangEnglish)])
		} else {
			view.SummaryOne = nl2br(p.Summary[string(lang)])
		}

		data.Papers = append(data.Papers, view)
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering digest: %w", err)
	}
	return buf.String(), nil
}

// buildNotice assembles the date-reminder banner. An all-fresh digest (some
// papers today, none older than yesterday) needs no banner.
func buildNotice(stats DateStats, now time.Time, txt Strings) *notice {
	if stats.Older == 0 && stats.Today > 0 {
		return nil
	}

	var parts []string
	if stats.Today > 0 {
		parts = append(parts, fmt.Sprintf(txt.PublishedToday, stats.Today))
	}
	if stats.Yesterday > 0 {
		parts = append(parts, fmt.Sprintf(txt.PublishedYesterday, stats.Yesterday))
	}
	if stats.Older > 0 {
		parts = append(parts, fmt.Sprintf(txt.PublishedOlderMulti, stats.Older))
	}

	message := fmt.Sprintf(txt.NoticeText, stats.Total(), strings.Join(parts, txt.ListSeparator))

	style := noticeStyle{Icon: "✨", Background: "#d4edda", Border: "#28a745", TextColor: "#155724"}
	switch {
	case stats.Older*2 >= stats.Total() && stats.Total() > 0:
		style = noticeStyle{Icon: "⚠️", Background: "#fff3cd", Border: "#ffc107", TextColor: "#856404"}
	case stats.Older > 0:
		style = noticeStyle{Icon: "ℹ️", Background: "#d1ecf1", Border: "#17a2b8", TextColor: "#0c5460"}
	}

	// The localized fragments carry <strong> markup on the counts.
	return &notice{Message: template.HTML(message), Style: style}
}

// daysBetween returns whole calendar days from a to b, never negative.
func daysBetween(a, b time.Time) int {
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// nl2br escapes the text and converts newlines to <br> so multi-paragraph
// summaries keep their structure in HTML.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
