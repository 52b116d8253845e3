package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"mention-radar/models"
)

var ErrEmptyKeyword = errors.New("keyword term is empty")

// ListKeywords returns keywords newest first. limit <= 0 means no limit.
func ListKeywords(ctx context.Context, limit int) ([]models.Keyword, error) {
	query := GetDB().WithContext(ctx).Model(&models.Keyword{}).
		Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var keywords []models.Keyword
	if err := query.Find(&keywords).Error; err != nil {
		return nil, err
	}
	return keywords, nil
}

// KeywordTerms returns only the non-empty terms of the newest keywords.
func KeywordTerms(ctx context.Context, limit int) ([]string, error) {
	var terms []string
	err := GetDB().WithContext(ctx).Model(&models.Keyword{}).
		Where("termo <> ?", "").
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Pluck("termo", &terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func GetKeyword(ctx context.Context, id int64) (models.Keyword, error) {
	var keyword models.Keyword
	if err := GetDB().WithContext(ctx).Where("id = ?", id).First(&keyword).Error; err != nil {
		return models.Keyword{}, err
	}
	return keyword, nil
}

// CreateKeyword inserts a trimmed term. Unknown categories fall back to the
// default one.
func CreateKeyword(ctx context.Context, termo, categoria string) (models.Keyword, error) {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return models.Keyword{}, ErrEmptyKeyword
	}
	keyword := models.Keyword{
		Termo:     termo,
		Categoria: NormalizeCategory(categoria),
	}
	if err := GetDB().WithContext(ctx).Create(&keyword).Error; err != nil {
		return models.Keyword{}, err
	}
	return keyword, nil
}

// DeleteKeyword removes a keyword by id; a missing row is ErrRecordNotFound.
func DeleteKeyword(ctx context.Context, id int64) error {
	res := GetDB().WithContext(ctx).Where("id = ?", id).Delete(&models.Keyword{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func NormalizeCategory(categoria string) string {
	categoria = strings.TrimSpace(categoria)
	for _, c := range models.KeywordCategories {
		if strings.EqualFold(c, categoria) {
			return c
		}
	}
	return models.KeywordCategories[0]
}
