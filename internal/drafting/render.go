// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package drafting produces unpublished article drafts, either from the
// built-in topic catalog or from a news feed item written up by an LLM.
package drafting

import (
	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
)

// Render assembles the full Markdown document for topic. The output starts
// with a single "# " heading holding the display title, followed by the
// metadata line, the topic body and the fixed closing sections.
func Render(table *i18n.Table, topic Topic, date string) string {
	lang := models.LanguageZH

	sections := []Section{
		Heading{Level: 1, Text: topic.Title},
		Quote{Text: "**" + topic.Category + "** • " + date},
		Rule{},
	}
	sections = append(sections, topic.body()...)
	sections = append(sections,
		Heading{Text: table.T(lang, "article.authorHeading")},
		Paragraph{Text: table.T(lang, "article.authorBio")},
		Heading{Text: table.T(lang, "article.consultHeading")},
		Paragraph{Text: table.Format(lang, "article.consultIntro", map[string]string{"topic": topic.Topic})},
		Bullets{Items: []string{
			table.T(lang, "article.clinicHours"),
			table.T(lang, "article.clinicAddress"),
		}},
		Rule{},
		Paragraph{Text: "*" + table.T(lang, "article.disclaimer") + "*"},
	)
	return renderSections(sections)
}
