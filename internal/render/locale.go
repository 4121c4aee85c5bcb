// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "github.com/lelouchsola/arxiv-digest/pkg/types"

// Strings holds the localized digest text for one language.
type Strings struct {
	Title               string
	DateNotice          string
	PublishedToday      string // fmt verb: count
	PublishedYesterday  string // fmt verb: count
	PublishedOlderMulti string // fmt verb: count
	NoticeText          string // fmt verbs: total, parts
	ListSeparator       string
	NewToday            string
	YesterdayLabel      string
	DaysAgoLabel        string // fmt verb: days
	HighQuality         string
	Authors             string
	Published           string
	Categories          string
	QualityScore        string
	AISummary           string
	ViewPDF             string
	FooterAuto          string
	FooterPowered       string
}

var localeZH = Strings{
	Title:               "arXiv 每日论文推送",
	DateNotice:          "论文日期提醒",
	PublishedToday:      "<strong>%d 篇</strong>是今天发布",
	PublishedYesterday:  "<strong>%d 篇</strong>是昨天发布",
	PublishedOlderMulti: "<strong>%d 篇</strong>是 2 天及更早前发布（可能已读过）",
	NoticeText:          "本次推送的 %d 篇论文中，%s。",
	ListSeparator:       "、",
	NewToday:            "今日新发布",
	YesterdayLabel:      "昨日发布",
	DaysAgoLabel:        "%d 天前",
	HighQuality:         "⭐ 高质量",
	Authors:             "作者",
	Published:           "发布日期",
	Categories:          "分类",
	QualityScore:        "质量评分",
	AISummary:           "AI 摘要",
	ViewPDF:             "查看 PDF",
	FooterAuto:          "本邮件由 arxiv-digest 自动生成",
	FooterPowered:       "由 DeepSeek AI 提供摘要服务",
}

var localeEN = Strings{
	Title:               "arXiv Daily Paper Digest",
	DateNotice:          "Date Notice",
	PublishedToday:      "<strong>%d papers</strong> published today",
	PublishedYesterday:  "<strong>%d papers</strong> published yesterday",
	PublishedOlderMulti: "<strong>%d papers</strong> published 2+ days ago (may have been read)",
	NoticeText:          "Of the %d papers in this digest, %s.",
	ListSeparator:       ", ",
	NewToday:            "NEW TODAY",
	YesterdayLabel:      "YESTERDAY",
	DaysAgoLabel:        "%d DAYS AGO",
	HighQuality:         "⭐ HIGH QUALITY",
	Authors:             "Authors",
	Published:           "Published",
	Categories:          "Categories",
	QualityScore:        "Quality Score",
	AISummary:           "AI Summary",
	ViewPDF:             "View PDF",
	FooterAuto:          "Generated automatically by arxiv-digest",
	FooterPowered:       "Powered by DeepSeek AI",
}

// localize resolves the string table for a language selector. Bilingual mode
// uses the English table for the surrounding chrome.
func localize(lang types.Language) Strings {
	if lang == types.LangChinese {
		return localeZH
	}
	return localeEN
}
