package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/service"
	"github.com/Veraticus/daily-ledger/internal/storage"
)

// Categories loads the category list, falling back to the built-ins.
func (l *Ledger) Categories(ctx context.Context) ([]model.Category, error) {
	cats, err := storage.GetJSON(ctx, l.store, service.KeyCategories, model.DefaultCategories())
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats, nil
}

// SaveCategories replaces the whole category list.
func (l *Ledger) SaveCategories(ctx context.Context, cats []model.Category) error {
	if cats == nil {
		cats = []model.Category{}
	}
	if err := storage.SetJSON(ctx, l.store, service.KeyCategories, cats); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// CategoriesFor returns the categories offered for a transaction type.
func (l *Ledger) CategoriesFor(ctx context.Context, t model.TransactionType) ([]model.Category, error) {
	cats, err := l.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return model.CategoriesFor(cats, t), nil
}

// Category returns a single category by id.
func (l *Ledger) Category(ctx context.Context, id string) (model.Category, error) {
	cats, err := l.Categories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	cat, ok := model.FindCategory(cats, id)
	if !ok {
		return model.Category{}, fmt.Errorf("category %q: %w", id, common.ErrNotFound)
	}
	return cat, nil
}

// AddCategory creates a user category. Name and icon are required; an empty
// color becomes model.DefaultCategoryColor.
func (l *Ledger) AddCategory(ctx context.Context, name, icon, color string) (model.Category, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	if name == "" {
		return model.Category{}, common.ErrMissingName
	}
	if icon == "" {
		return model.Category{}, common.ErrMissingIcon
	}
	if strings.TrimSpace(color) == "" {
		color = model.DefaultCategoryColor
	}

	cats, err := l.Categories(ctx)
	if err != nil {
		return model.Category{}, err
	}

	cat := model.Category{
		ID:    l.newID(),
		Name:  name,
		Icon:  icon,
		Color: color,
	}
	if err := l.SaveCategories(ctx, append(cats, cat)); err != nil {
		return model.Category{}, err
	}

	l.logger.Info("Added category", "id", cat.ID, "name", cat.Name)
	return cat, nil
}

// RenameCategory changes a category's name. Existing transactions keep the
// name they were recorded with.
func (l *Ledger) RenameCategory(ctx context.Context, id, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, common.ErrMissingName
	}

	cats, err := l.Categories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	for i := range cats {
		if cats[i].ID != id {
			continue
		}
		cats[i].Name = name
		if err := l.SaveCategories(ctx, cats); err != nil {
			return model.Category{}, err
		}
		return cats[i], nil
	}
	return model.Category{}, fmt.Errorf("category %q: %w", id, common.ErrNotFound)
}

// DeleteCategory removes a category from the list. Transactions already
// recorded under it keep their snapshot.
func (l *Ledger) DeleteCategory(ctx context.Context, id string) (model.Category, error) {
	cats, err := l.Categories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	for i, c := range cats {
		if c.ID != id {
			continue
		}
		kept := append(cats[:i:i], cats[i+1:]...)
		if err := l.SaveCategories(ctx, kept); err != nil {
			return model.Category{}, err
		}
		l.logger.Info("Deleted category", "id", id)
		return c, nil
	}
	return model.Category{}, fmt.Errorf("category %q: %w", id, common.ErrNotFound)
}
