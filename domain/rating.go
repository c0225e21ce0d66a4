package domain

import "time"

// CREATE TABLE public.ratings (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id     BIGINT NOT NULL,
//     product_id  TEXT NOT NULL,
//     rating      SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, product_id)
// );

type Rating struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_ratings_user_product" json:"userId"`
	ProductID string    `gorm:"column:product_id;type:text;not null;uniqueIndex:idx_ratings_user_product" json:"productId"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Rating) TableName() string {
	return "ratings"
}
