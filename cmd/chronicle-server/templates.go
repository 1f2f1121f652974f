package main

import (
	"embed"
	"html/template"
	"strings"

	"github.com/devchronicle/chronicle/pkg/report"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"formatDate": report.FormatDate,
	"shortDate":  report.ShortDate,
	"daysAgo":    report.DaysAgo,
	"prColor":    report.PRColor,
	"add1":       func(i int) int { return i + 1 },
	"shortRepo": func(full string) string {
		if _, name, ok := strings.Cut(full, "/"); ok {
			return name
		}
		return full
	},
	"clip": func(s string, max int) string {
		runes := []rune(s)
		if len(runes) <= max {
			return s
		}
		return string(runes[:max]) + "…"
	},
}).ParseFS(templateFS, "templates/*.html"))
