package repository

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/dcode-github/real_estate_portal/models"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Price band used by the similarity score, as a fraction of the reference price.
const similarPriceBand = 0.20

// Scores are bedrooms*3 + bathrooms*2 + balconies*1 + location*2 + price-in-range*1.
const similarQuery = `
SELECT s.id, s.score FROM (
	SELECT p.id, p.created_at,
		(CASE WHEN p.bedrooms = ? THEN 3 ELSE 0 END) +
		(CASE WHEN p.bathrooms = ? THEN 2 ELSE 0 END) +
		(CASE WHEN p.balconies = ? THEN 1 ELSE 0 END) +
		(CASE WHEN LOWER(p.location) = LOWER(?) THEN 2 ELSE 0 END) +
		(CASE WHEN p.price BETWEEN ? AND ? THEN 1 ELSE 0 END) AS score
	FROM properties p
	WHERE p.id <> ?
) s
WHERE s.score > 0
ORDER BY s.score DESC, s.created_at DESC, s.id DESC
LIMIT ?`

type scoredRow struct {
	ID    uint `db:"id"`
	Score int  `db:"score"`
}

type SimilarRepository struct {
	DB *gorm.DB
	X  *sqlx.DB
}

func NewSimilarRepository(db *gorm.DB, x *sqlx.DB) *SimilarRepository {
	return &SimilarRepository{DB: db, X: x}
}

// Similar ranks other properties against ref. If the scored query fails it
// falls back to the newest properties sharing ref's location or category.
func (r *SimilarRepository) Similar(ctx context.Context, ref *models.Property, limit int) ([]models.SimilarProperty, error) {
	out, err := r.scored(ctx, ref, limit)
	if err == nil {
		return out, nil
	}
	log.Printf("Similar properties query failed for %d, using fallback: %v", ref.ID, err)
	return r.fallback(ctx, ref, limit)
}

func (r *SimilarRepository) scored(ctx context.Context, ref *models.Property, limit int) ([]models.SimilarProperty, error) {
	low := ref.Price * (1 - similarPriceBand)
	high := ref.Price * (1 + similarPriceBand)

	var rows []scoredRow
	err := r.X.SelectContext(ctx, &rows, r.X.Rebind(similarQuery),
		ref.Bedrooms, ref.Bathrooms, ref.Balconies, ref.Location, low, high, ref.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("SimilarRepository.scored: %w", err)
	}
	if len(rows) == 0 {
		return []models.SimilarProperty{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	var props []models.Property
	if err := r.DB.WithContext(ctx).Preload("Photos").Where("id IN ?", ids).Find(&props).Error; err != nil {
		return nil, fmt.Errorf("SimilarRepository.scored load: %w", err)
	}
	byID := make(map[uint]models.Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}

	out := make([]models.SimilarProperty, 0, len(rows))
	for _, row := range rows {
		if p, ok := byID[row.ID]; ok {
			out = append(out, models.SimilarProperty{Property: p, Score: row.Score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (r *SimilarRepository) fallback(ctx context.Context, ref *models.Property, limit int) ([]models.SimilarProperty, error) {
	q := r.DB.WithContext(ctx).Preload("Photos").Where("id <> ?", ref.ID)
	if ref.CategoryID != nil {
		q = q.Where("(LOWER(location) = LOWER(?) OR category_id = ?)", ref.Location, *ref.CategoryID)
	} else {
		q = q.Where("LOWER(location) = LOWER(?)", ref.Location)
	}

	var props []models.Property
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&props).Error; err != nil {
		return nil, fmt.Errorf("SimilarRepository.fallback: %w", err)
	}
	out := make([]models.SimilarProperty, 0, len(props))
	for _, p := range props {
		out = append(out, models.SimilarProperty{Property: p})
	}
	return out, nil
}
