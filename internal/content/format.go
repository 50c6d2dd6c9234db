package content

import (
	"fmt"
	"time"
	"unicode/utf8"

	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
)

// Reading speed in runes per minute.
const (
	runesPerMinuteEN = 200
	runesPerMinuteZH = 400
)

// ReadTime estimates the reading time of markdown in whole minutes,
// rounded up.
func ReadTime(markdown string, lang models.Language) int {
	perMinute := runesPerMinuteZH
	if lang.IsEnglish() {
		perMinute = runesPerMinuteEN
	}
	n := utf8.RuneCountInString(markdown)
	return (n + perMinute - 1) / perMinute
}

// ReadTimeLabel returns the localized reading time, e.g. "3 min read".
func ReadTimeLabel(table *i18n.Table, markdown string, lang models.Language) string {
	return table.Format(lang, "common.minutesRead", map[string]string{
		"minutes": fmt.Sprint(ReadTime(markdown, lang)),
	})
}

// FormatDate renders a YYYY-MM-DD date the way each locale writes it:
// "January 15, 2025" or "2025年1月15日". Malformed dates are returned
// unchanged.
func FormatDate(date string, lang models.Language) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	if lang.IsEnglish() {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}
