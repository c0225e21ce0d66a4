package domain

import (
	"strings"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

const DefaultLanguage = "en"

var SupportedLanguages = []string{"en", "ru", "uk"}

// NormalizeLanguage reduces a tag like "ru-RU" to "ru" and reports whether it
// is one of the supported languages.
func NormalizeLanguage(tag string) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return "", false
	}
	tag, _, _ = strings.Cut(tag, "-")

	for _, lang := range SupportedLanguages {
		if tag == lang {
			return tag, true
		}
	}
	return tag, false
}

// ProductView is the localized, serialization-ready product.
type ProductView struct {
	ID               string        `json:"id"`
	Article          string        `json:"article"`
	CategoryID       *string       `json:"category_id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Price            float64       `json:"price"`
	PriceString      string        `json:"price_string"`
	IsBestseller     bool          `json:"is_bestseller"`
	ImageURLs        []string      `json:"imageUrls"`
	ImagePath        *string       `json:"image_path"`
	Composition      string        `json:"composition"`
	CareInstructions string        `json:"careInstructions"`
	Features         []FeatureView `json:"features"`
	Reviews          []any         `json:"reviews"`
	Gender           *string       `json:"gender"`
}

type FeatureView struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type featureRow struct {
	Title             string         `json:"title"`
	Value             string         `json:"value"`
	TitleTranslations map[string]any `json:"title_translations"`
	ValueTranslations map[string]any `json:"value_translations"`
}

// View renders the product for the given language. Missing translations fall
// back to English and then to the base column.
func (p Product) View(language string) ProductView {
	categoryID := p.CategoryID
	if categoryID == nil {
		categoryID = p.Gender
	}
	gender := p.Gender
	if gender == nil {
		gender = p.CategoryID
	}

	return ProductView{
		ID:               p.ID,
		Article:          p.Article,
		CategoryID:       categoryID,
		Name:             localizedText(p.Name, p.NameTranslations, language),
		Description:      localizedText(p.Description, p.DescriptionTranslations, language),
		Price:            p.NumericPrice(),
		PriceString:      p.PriceString,
		IsBestseller:     p.IsBestseller,
		ImageURLs:        imageList(p),
		ImagePath:        p.ImagePath,
		Composition:      localizedText(p.Composition, p.CompositionTranslations, language),
		CareInstructions: localizedText(p.CareInstructions, p.CareInstructionsTranslations, language),
		Features:         localizedFeatures(p.Features, language),
		Reviews:          jsonArray(p.Reviews),
		Gender:           gender,
	}
}

func localizedText(base string, translations map[string]any, language string) string {
	if text, ok := translations[language].(string); ok && language != "" && text != "" {
		return text
	}
	if text, ok := translations[DefaultLanguage].(string); ok && text != "" {
		return text
	}
	return base
}

func localizedFeatures(raw datatypes.JSON, language string) []FeatureView {
	out := []FeatureView{}
	if len(raw) == 0 {
		return out
	}

	var rows []featureRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return out
	}

	for _, row := range rows {
		out = append(out, FeatureView{
			Title: localizedText(row.Title, row.TitleTranslations, language),
			Value: localizedText(row.Value, row.ValueTranslations, language),
		})
	}
	return out
}

func imageList(p Product) []string {
	var images []string
	if len(p.ImageURLs) > 0 {
		if err := json.Unmarshal(p.ImageURLs, &images); err == nil && len(images) > 0 {
			return images
		}
	}

	if p.ImagePath != nil && *p.ImagePath != "" {
		return []string{*p.ImagePath}
	}
	return []string{}
}

func jsonArray(raw datatypes.JSON) []any {
	var out []any
	if len(raw) == 0 {
		return []any{}
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []any{}
	}
	return out
}
