package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devillers/checkin-sub000/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) error {
	if p.ID == "" {
		return fmt.Errorf("upsert property: empty id")
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal property %s: %w", p.ID, err)
	}
	_, err = r.db.ExecContext(ctx, upsertPropertySQL,
		p.ID,
		p.Slug,
		p.Name,
		string(p.Type),
		p.Address.City,
		p.Address.PostalCode,
		p.MaxGuests,
		p.ProfilePhoto,
		string(doc),
	)
	return err
}

func (r *Repo) AppendActivity(ctx context.Context, e domain.ActivityEntry) error {
	_, err := r.db.ExecContext(ctx, insertActivitySQL, e.PropertyID, e.Action, e.Actor, e.Detail)
	return err
}

func (r *Repo) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	return r.scanDoc(r.db.QueryRowContext(ctx, getPropertySQL, id))
}

func (r *Repo) GetPropertyBySlug(ctx context.Context, slug string) (domain.Property, error) {
	return r.scanDoc(r.db.QueryRowContext(ctx, getPropertyBySlugSQL, slug))
}

func (r *Repo) scanDoc(row *sql.Row) (domain.Property, error) {
	var id string
	var doc []byte
	if err := row.Scan(&id, &doc); err != nil {
		if err == sql.ErrNoRows {
			return domain.Property{}, domain.ErrNotFound
		}
		return domain.Property{}, err
	}
	var p domain.Property
	if err := json.Unmarshal(doc, &p); err != nil {
		return domain.Property{}, fmt.Errorf("decode property %s: %w", id, err)
	}
	p.ID = id
	return p, nil
}

func (r *Repo) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	var (
		where []string
		args  []any
	)
	if q.City != nil {
		where = append(where, "city = ?")
		args = append(args, *q.City)
	}
	if q.Type != nil {
		where = append(where, "type = ?")
		args = append(args, string(*q.Type))
	}
	sqlStr := listPropertiesPrefix
	if len(where) > 0 {
		sqlStr += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	sqlStr += "ORDER BY name, id\nLIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return domain.PropertiesPage{}, err
	}
	defer rows.Close()

	var out []domain.PropertySummary
	for rows.Next() {
		var s domain.PropertySummary
		var typ string
		var profile sql.NullString
		if err := rows.Scan(&s.ID, &s.Slug, &s.Name, &typ, &s.City, &s.PostalCode, &s.MaxGuests, &profile); err != nil {
			return domain.PropertiesPage{}, err
		}
		s.Type = domain.PropertyType(typ)
		if profile.Valid {
			s.ProfilePhoto = profile.String
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return domain.PropertiesPage{}, err
	}
	return domain.PropertiesPage{Items: out}, nil
}
