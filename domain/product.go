package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id                              TEXT PRIMARY KEY,
//     article                         TEXT,
//     category_id                     TEXT,
//     gender                          TEXT,
//     brand                           TEXT,
//     name                            TEXT NOT NULL,
//     name_translations               JSONB,
//     description                     TEXT,
//     description_translations        JSONB,
//     composition                     TEXT,
//     composition_translations        JSONB,
//     care_instructions               TEXT,
//     care_instructions_translations  JSONB,
//     price                           NUMERIC,
//     price_string                    TEXT,
//     is_bestseller                   BOOLEAN DEFAULT FALSE,
//     image_urls                      JSONB,
//     image_path                      TEXT,
//     features                        JSONB,
//     reviews                         JSONB,
//     created_at                      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID                           string            `gorm:"primaryKey;column:id;type:text"`
	Article                      string            `gorm:"column:article;type:text"`
	CategoryID                   *string           `gorm:"column:category_id;type:text"`
	Gender                       *string           `gorm:"column:gender;type:text"`
	Brand                        *string           `gorm:"column:brand;type:text"`
	Name                         string            `gorm:"column:name;type:text"`
	NameTranslations             datatypes.JSONMap `gorm:"column:name_translations;type:jsonb"`
	Description                  string            `gorm:"column:description;type:text"`
	DescriptionTranslations      datatypes.JSONMap `gorm:"column:description_translations;type:jsonb"`
	Composition                  string            `gorm:"column:composition;type:text"`
	CompositionTranslations      datatypes.JSONMap `gorm:"column:composition_translations;type:jsonb"`
	CareInstructions             string            `gorm:"column:care_instructions;type:text"`
	CareInstructionsTranslations datatypes.JSONMap `gorm:"column:care_instructions_translations;type:jsonb"`
	Price                        *float64          `gorm:"column:price;type:numeric"`
	PriceString                  string            `gorm:"column:price_string;type:text"`
	IsBestseller                 bool              `gorm:"column:is_bestseller;default:false"`
	ImageURLs                    datatypes.JSON    `gorm:"column:image_urls;type:jsonb"`
	ImagePath                    *string           `gorm:"column:image_path;type:text"`
	Features                     datatypes.JSON    `gorm:"column:features;type:jsonb"`
	Reviews                      datatypes.JSON    `gorm:"column:reviews;type:jsonb"`
	CreatedAt                    time.Time         `gorm:"column:created_at"`
}

func (Product) TableName() string {
	return "products"
}

// Category returns the category id, or "" when the product has none.
func (p Product) Category() string {
	return deref(p.CategoryID)
}

func (p Product) BrandName() string {
	return deref(p.Brand)
}

func (p Product) GenderName() string {
	return deref(p.Gender)
}

// priceStrategy extracts a price from one source field. Strategies never fail;
// ok=false means "try the next one".
type priceStrategy func(p Product) (price float64, ok bool)

var priceStrategies = []priceStrategy{
	priceFromColumn,
	priceFromDisplayString,
}

// NumericPrice coerces the product price: the numeric column first, then the
// display string, else 0.
func (p Product) NumericPrice() float64 {
	for _, strategy := range priceStrategies {
		if price, ok := strategy(p); ok {
			return price
		}
	}
	return 0
}

func priceFromColumn(p Product) (float64, bool) {
	if p.Price == nil || math.IsNaN(*p.Price) || math.IsInf(*p.Price, 0) {
		return 0, false
	}
	return *p.Price, true
}

var (
	priceNoise  = regexp.MustCompile(`[^0-9.,-]`)
	leadingReal = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
)

// priceFromDisplayString reads strings like "1 200,50 ₴": non-numeric noise is
// dropped, the first comma becomes a decimal point and the longest numeric
// prefix is parsed.
func priceFromDisplayString(p Product) (float64, bool) {
	if strings.TrimSpace(p.PriceString) == "" {
		return 0, false
	}

	cleaned := priceNoise.ReplaceAllString(p.PriceString, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	prefix := leadingReal.FindString(cleaned)
	if prefix == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(price, 0) {
		return 0, false
	}
	return price, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
