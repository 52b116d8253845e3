package models

import "time"

// Categories offered when adding a keyword; the first one is the default.
var KeywordCategories = []string{"Política", "Economia", "Social", "Outros"}

type Keyword struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Termo     string    `json:"termo" gorm:"not null"`
	Categoria string    `json:"categoria" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Keyword) TableName() string {
	return "palavras_chaves"
}
