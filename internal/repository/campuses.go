package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Lounwb/AirCourse/internal/domain"
)

func (r *Repository) CreateCampus(campus *domain.Campus) error {
	query := `
		INSERT INTO campuses (display_name, address, pinyin_key, pinyin_abbr, class_times)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	classTimes, err := json.Marshal(campus.ClassTimes)
	if err != nil {
		return err
	}

	args := []any{campus.DisplayName, campus.Address, campus.PinyinKey, campus.PinyinAbbr, classTimes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&campus.ID, &campus.CreatedAt); err != nil {
		return err
	}

	return nil
}

// SearchCampuses 按名称、地址或拼音模糊检索校区
func (r *Repository) SearchCampuses(keyword string, limit int) ([]*domain.Campus, error) {
	query := `
		SELECT id, display_name, address, pinyin_key, pinyin_abbr, class_times, created_at
		FROM campuses
		WHERE display_name ILIKE $1
		   OR address ILIKE $1
		   OR pinyin_key LIKE $2
		   OR pinyin_abbr LIKE $2
		ORDER BY id
		LIMIT $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	pattern := "%" + keyword + "%"
	pinyinPattern := strings.ToLower(strings.ReplaceAll(keyword, " ", "")) + "%"

	rows, err := r.dbpool.QueryContext(ctx, query, pattern, pinyinPattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campuses := make([]*domain.Campus, 0)
	for rows.Next() {
		campus := &domain.Campus{}
		var classTimes []byte
		dst := []any{&campus.ID, &campus.DisplayName, &campus.Address, &campus.PinyinKey, &campus.PinyinAbbr, &classTimes, &campus.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if len(classTimes) > 0 {
			if err := json.Unmarshal(classTimes, &campus.ClassTimes); err != nil {
				return nil, err
			}
		}
		campuses = append(campuses, campus)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campuses, nil
}

func (r *Repository) GetCampusByID(id int64) (*domain.Campus, error) {
	query := `
		SELECT display_name, address, pinyin_key, pinyin_abbr, class_times, created_at
		FROM campuses WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	campus := &domain.Campus{
		ID: id,
	}

	var classTimes []byte
	dst := []any{&campus.DisplayName, &campus.Address, &campus.PinyinKey, &campus.PinyinAbbr, &classTimes, &campus.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if len(classTimes) > 0 {
		if err := json.Unmarshal(classTimes, &campus.ClassTimes); err != nil {
			return nil, err
		}
	}

	return campus, nil
}
