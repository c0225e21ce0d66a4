//go:build !integration

package domain

import (
	"math"
	"testing"

	"gorm.io/datatypes"
)

func ptr[T any](v T) *T { return &v }

func TestNumericPrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    float64
	}{
		{"numeric column", Product{Price: ptr(1200.0), PriceString: "999"}, 1200},
		{"zero column is a price", Product{Price: ptr(0.0), PriceString: "999"}, 0},
		{"nan column falls through", Product{Price: ptr(math.NaN()), PriceString: "450"}, 450},
		{"display string", Product{PriceString: "1 500 ₴"}, 1500},
		{"comma decimal", Product{PriceString: "12,50 EUR"}, 12.5},
		{"prefix only", Product{PriceString: "1,200.50"}, 1.2},
		{"garbage string", Product{PriceString: "call us"}, 0},
		{"nothing", Product{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.NumericPrice(); got != tt.want {
				t.Errorf("NumericPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		tag       string
		want      string
		supported bool
	}{
		{"ru-RU", "ru", true},
		{" UK ", "uk", true},
		{"en", "en", true},
		{"de-DE", "de", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeLanguage(tt.tag)
		if got != tt.want || ok != tt.supported {
			t.Errorf("NormalizeLanguage(%q) = (%q, %v), want (%q, %v)", tt.tag, got, ok, tt.want, tt.supported)
		}
	}
}

func TestProductView_Localization(t *testing.T) {
	p := Product{
		ID:               "prod-001",
		Name:             "Parka",
		NameTranslations: datatypes.JSONMap{"en": "Insulated Parka", "ru": "Парка"},
		Description:      "Warm",
		CategoryID:       ptr("outerwear"),
		PriceString:      "1200",
		ImageURLs:        datatypes.JSON(`["outerwear/parka.jpg"]`),
		Features:         datatypes.JSON(`[{"title":"Fit","value":"Regular","title_translations":{"uk":"Крій"}}]`),
		Reviews:          datatypes.JSON(`not json`),
	}

	ru := p.View("ru")
	if ru.Name != "Парка" {
		t.Errorf("ru Name = %q, want Парка", ru.Name)
	}

	uk := p.View("uk")
	if uk.Name != "Insulated Parka" {
		t.Errorf("uk Name = %q, want english fallback", uk.Name)
	}
	if len(uk.Features) != 1 || uk.Features[0].Title != "Крій" || uk.Features[0].Value != "Regular" {
		t.Errorf("uk Features = %+v", uk.Features)
	}
	if uk.Description != "Warm" {
		t.Errorf("Description = %q, want base column", uk.Description)
	}
	if uk.Price != 1200 {
		t.Errorf("Price = %v, want 1200", uk.Price)
	}
	if len(uk.ImageURLs) != 1 || uk.ImageURLs[0] != "outerwear/parka.jpg" {
		t.Errorf("ImageURLs = %v", uk.ImageURLs)
	}
	if uk.Reviews == nil || len(uk.Reviews) != 0 {
		t.Errorf("Reviews = %v, want empty list", uk.Reviews)
	}
	if uk.Gender == nil || *uk.Gender != "outerwear" {
		t.Errorf("Gender = %v, want category fallback", uk.Gender)
	}
}

func TestProductView_ImagePathFallback(t *testing.T) {
	p := Product{ID: "p", ImagePath: ptr("single.jpg")}
	view := p.View("en")
	if len(view.ImageURLs) != 1 || view.ImageURLs[0] != "single.jpg" {
		t.Errorf("ImageURLs = %v, want [single.jpg]", view.ImageURLs)
	}
}
