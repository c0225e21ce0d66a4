package domain

import "gorm.io/datatypes"

// CREATE TABLE public.categories (
//     id                 TEXT PRIMARY KEY,
//     name               TEXT NOT NULL,
//     slug               TEXT UNIQUE NOT NULL,
//     parent_id          TEXT REFERENCES categories(id),
//     image_path         TEXT NOT NULL,
//     icon_path          TEXT NOT NULL,
//     name_translations  JSONB NOT NULL DEFAULT '{}'
// );

type Category struct {
	ID               string            `gorm:"primaryKey;column:id;type:text"`
	Name             string            `gorm:"column:name;type:text;not null"`
	Slug             string            `gorm:"column:slug;type:text"`
	ParentID         *string           `gorm:"column:parent_id;type:text"`
	ImagePath        string            `gorm:"column:image_path;type:text"`
	IconPath         string            `gorm:"column:icon_path;type:text"`
	NameTranslations datatypes.JSONMap `gorm:"column:name_translations;type:jsonb"`
}

func (Category) TableName() string {
	return "categories"
}

type CategoryView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	ParentID  *string `json:"parent_id"`
	ImagePath string  `json:"image_path"`
	IconPath  string  `json:"icon_path"`
}

func (c Category) View(language string) CategoryView {
	slug := c.Slug
	if slug == "" {
		slug = c.ID
	}
	icon := c.IconPath
	if icon == "" {
		icon = c.ImagePath
	}

	return CategoryView{
		ID:        c.ID,
		Name:      localizedText(c.Name, c.NameTranslations, language),
		Slug:      slug,
		ParentID:  c.ParentID,
		ImagePath: c.ImagePath,
		IconPath:  icon,
	}
}
