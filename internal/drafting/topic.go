// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package drafting

import (
	"math/rand/v2"
	"strings"

	"pocsclinic/internal/i18n"
)

// Topic is a hand-authored article outline. Optional parts that are left
// empty produce no section in the generated draft.
type Topic struct {
	ID        string
	Topic     string // short subject used for matching and the consultation line
	Title     string
	TitleEn   string
	Excerpt   string
	ExcerptEn string
	Category  string

	Intro       string
	Mechanisms  []Definition
	RiskFactors []string
	Comparison  *Table
	Phases      []string
	Advantages  []string
	Tips        []string
	Extra       []Section
}

// CategoryEn returns the English label of the topic's category.
func (t Topic) CategoryEn() string {
	return i18n.CategoryEn(t.Category)
}

// body returns the topic-specific sections in their fixed order.
func (t Topic) body() []Section {
	var s []Section
	if t.Intro != "" {
		s = append(s, Heading{Text: "引言"}, Paragraph{Text: t.Intro})
	}
	if len(t.Mechanisms) > 0 {
		s = append(s, Heading{Text: "形成机制"}, Definitions{Items: t.Mechanisms})
	}
	if len(t.RiskFactors) > 0 {
		s = append(s, Heading{Text: "危险因素"}, Bullets{Items: t.RiskFactors})
	}
	if t.Comparison != nil {
		s = append(s, Heading{Text: "方案对比"}, *t.Comparison)
	}
	if len(t.Phases) > 0 {
		s = append(s, Heading{Text: "阶段安排"}, Numbered{Items: t.Phases})
	}
	if len(t.Advantages) > 0 {
		s = append(s, Heading{Text: "主要优势"}, Bullets{Items: t.Advantages})
	}
	if len(t.Tips) > 0 {
		s = append(s, Heading{Text: "实用建议"}, Bullets{Items: t.Tips})
	}
	return append(s, t.Extra...)
}

// SelectTopic picks the first topic whose id or topic text contains
// keyword, ignoring case. With an empty keyword, or when nothing matches,
// a random topic is returned and matched is false.
func SelectTopic(topics []Topic, keyword string, rnd *rand.Rand) (topic Topic, matched bool) {
	if kw := strings.ToLower(strings.TrimSpace(keyword)); kw != "" {
		for _, t := range topics {
			if strings.Contains(strings.ToLower(t.ID), kw) || strings.Contains(strings.ToLower(t.Topic), kw) {
				return t, true
			}
		}
	}
	return topics[rnd.IntN(len(topics))], false
}
