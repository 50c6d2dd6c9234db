package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocsclinic/internal/models"
)

func TestTableLookup(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Home", tbl.T(models.LanguageEN, "common.home"))
	assert.Equal(t, "首页", tbl.T(models.LanguageZH, "common.home"))
	assert.Equal(t, "missing.key", tbl.T(models.LanguageEN, "missing.key"))
	// A subtree is not a string.
	assert.Equal(t, "assessment.verdicts", tbl.T(models.LanguageEN, "assessment.verdicts"))
}

func TestTableFormat(t *testing.T) {
	got := Default().Format(models.LanguageEN, "common.minutesRead", map[string]string{"minutes": "3"})
	assert.Equal(t, "3 min read", got)
}

// TestTablesAreParallel checks that both languages expose the same
// assessment shape, since the evaluator indexes answers by position.
func TestTablesAreParallel(t *testing.T) {
	zh := Default().Questions(models.LanguageZH)
	en := Default().Questions(models.LanguageEN)

	require.Len(t, zh, 7)
	require.Len(t, en, 7)
	for i := range zh {
		assert.Len(t, en[i].Options, len(zh[i].Options), "question %d", i)
		assert.NotEmpty(t, zh[i].Question)
	}
	assert.Equal(t, "Yes", en[0].Options[0])
	assert.Equal(t, "Not Sure", en[1].Options[4])
}

func TestList(t *testing.T) {
	assert.Nil(t, Default().List(models.LanguageEN, "common.home"))
	assert.Nil(t, Default().List(models.LanguageEN, "nope"))
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		accept   string
		want     models.Language
	}{
		{"explicit wins", "en", "zh-CN", models.LanguageEN},
		{"explicit zh", "zh", "en-US", models.LanguageZH},
		{"accept english", "", "en-US,en;q=0.9", models.LanguageEN},
		{"accept chinese", "", "zh-CN,zh;q=0.9,en;q=0.8", models.LanguageZH},
		{"empty header", "", "", models.LanguageZH},
		{"garbage header", "", ";;;", models.LanguageZH},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.explicit, tt.accept))
		})
	}
}

func TestCategoryEn(t *testing.T) {
	assert.Equal(t, "Gallstone Prevention", CategoryEn(CategoryGallstonePrevention))
	assert.Equal(t, "Technology Introduction", CategoryEn("技术介绍"))
	assert.Equal(t, GeneralCategoryEn, CategoryEn("未知分类"))
}
