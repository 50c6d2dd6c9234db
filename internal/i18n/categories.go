// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

// GeneralCategoryEn is the English label for a category with no mapping.
const GeneralCategoryEn = "General"

// Known blog categories, Chinese label first.
const (
	CategoryGallstonePrevention = "胆结石预防"
	CategoryHepatobiliaryHealth = "肝胆健康"
	CategoryDietaryGuidance     = "饮食指导"
	CategoryPostOperativeCare   = "术后护理"
	CategoryTechnology          = "技术介绍"
	CategoryCaseAnalysis        = "病例分析"
	CategoryRehabilitation      = "康复指导"
)

var categoryEn = map[string]string{
	CategoryGallstonePrevention: "Gallstone Prevention",
	CategoryHepatobiliaryHealth: "Hepatobiliary Health",
	CategoryDietaryGuidance:     "Dietary Guidance",
	CategoryPostOperativeCare:   "Post-operative Care",
	CategoryTechnology:          "Technology Introduction",
	CategoryCaseAnalysis:        "Case Analysis",
	CategoryRehabilitation:      "Rehabilitation Guide",
}

// CategoryEn maps a Chinese category label to its English label.
func CategoryEn(zh string) string {
	if en, ok := categoryEn[zh]; ok {
		return en
	}
	return GeneralCategoryEn
}
