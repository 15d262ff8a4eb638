package storage

import (
	"context"
	"strings"

	"github.com/md-rashed-zaman/advobook/libs/db"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/model"
)

type AdvocateRepository struct {
	pool *db.Pool
}

func NewAdvocateRepository(pool *db.Pool) *AdvocateRepository {
	return &AdvocateRepository{pool: pool}
}

// searchPredicate matches the query substring case-insensitively against
// every searchable column. Numeric and jsonb columns are cast to text so
// "212" finds phone numbers and "Bipolar" finds specialty entries. The
// payload column holds the specialties jsonb array.
const searchPredicate = `
	first_name ILIKE $1
	OR last_name ILIKE $1
	OR city ILIKE $1
	OR degree ILIKE $1
	OR payload::text ILIKE $1
	OR years_of_experience::text ILIKE $1
	OR phone_number::text ILIKE $1`

// Search returns one page of advocates matching query plus the total
// match count. An empty or blank query matches every row (the pattern
// degenerates to %%). No ORDER BY: pages follow the table's natural
// order, which is stable enough for a read-mostly directory.
func (r *AdvocateRepository) Search(ctx context.Context, page, pageSize int, query string) ([]model.Advocate, int, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	offset := (page - 1) * pageSize

	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, city, degree, payload, years_of_experience, phone_number, created_at
		FROM advocates
		WHERE `+searchPredicate+`
		LIMIT $2 OFFSET $3
	`, pattern, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	advocates := []model.Advocate{}
	for rows.Next() {
		var a model.Advocate
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.City, &a.Degree, &a.Specialties, &a.YearsOfExperience, &a.PhoneNumber, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		if a.Specialties == nil {
			a.Specialties = []string{}
		}
		advocates = append(advocates, a)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	var total int
	err = r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM advocates
		WHERE `+searchPredicate+`
	`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return advocates, total, nil
}
