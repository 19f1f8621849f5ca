package store

import (
	"context"
	"fmt"

	"github.com/John-Tuesday/unverdad"
	"github.com/google/uuid"
)

// Categories reads and writes the category and mod_category tables.
type Categories struct {
	s *Store
}

// Create inserts c.
func (r *Categories) Create(ctx context.Context, c Category) error {
	params := unverdad.NewNamedParams(map[string]any{
		"category_id": c.ID,
		"parent_id":   c.ParentID,
		"name":        c.Name,
	})
	query := r.s.SQL("INSERT INTO {category} (category_id, parent_id, name) VALUES (:category_id, :parent_id, :name)")
	if _, err := r.s.Exec(ctx, query, params); err != nil {
		return fmt.Errorf("inserting category %q: %w", c.Name, err)
	}
	return nil
}

// Assign files the mod under the category.
func (r *Categories) Assign(ctx context.Context, modID, categoryID uuid.UUID) error {
	params := unverdad.NewNamedParams(map[string]any{
		"mod_id":      modID,
		"category_id": categoryID,
	})
	query := r.s.SQL("INSERT INTO {mod_category} (mod_id, category_id) VALUES (:mod_id, :category_id)")
	if _, err := r.s.Exec(ctx, query, params); err != nil {
		return fmt.Errorf("assigning category: %w", err)
	}
	return nil
}

// Find returns the categories matching c. Columns are qualified with "c".
func (r *Categories) Find(ctx context.Context, c unverdad.Condition) ([]Category, error) {
	query := r.s.SQL("SELECT c.category_id, c.parent_id, c.name FROM {category} c " + unverdad.Where(c) + " ORDER BY c.name")
	return r.query(ctx, query, unverdad.Args(c))
}

// ForMod returns the categories a mod is filed under.
func (r *Categories) ForMod(ctx context.Context, modID uuid.UUID) ([]Category, error) {
	filter := r.s.Filter()
	leaf, err := r.s.Schema().Leaf(filter, TableModCategory, "mc", unverdad.AND)
	if err != nil {
		return nil, err
	}
	if err := leaf.Add("mod_id", modID, unverdad.EQ); err != nil {
		return nil, err
	}

	query := r.s.SQL("SELECT c.category_id, c.parent_id, c.name FROM {category} c " +
		"JOIN {mod_category} mc ON mc.category_id = c.category_id " +
		unverdad.Where(filter) + " ORDER BY c.name")
	return r.query(ctx, query, filter.Params())
}

func (r *Categories) query(ctx context.Context, query string, params unverdad.NamedParams) ([]Category, error) {
	rows, err := r.s.Query(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
