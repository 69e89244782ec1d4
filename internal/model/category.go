package model

import "slices"

// DefaultCategoryColor is used for user categories created without a color.
const DefaultCategoryColor = "#FF7A00"

// Category is a user-visible label with an icon and a color.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Built-in category ids.
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryShopping      = "shopping"
	CategoryHealth        = "health"
	CategoryEducation     = "education"
	CategoryEntertainment = "entertainment"
	CategoryBills         = "bills"
	CategoryHome          = "home"
	CategorySalary        = "salary"
	CategoryFreelance     = "freelance"
	CategoryInvestment    = "investment"
	CategoryGift          = "gift"
	CategoryBonus         = "bonus"
	CategoryOther         = "other"
)

// IncomeCategoryIDs are offered when recording income.
// "other" is also offered for expenses.
var IncomeCategoryIDs = []string{
	CategorySalary,
	CategoryFreelance,
	CategoryInvestment,
	CategoryGift,
	CategoryBonus,
	CategoryOther,
}

// DefaultCategories returns a fresh copy of the built-in categories.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryFood, Name: "Alimentação", Icon: "🍽️", Color: "#FF6B6B"},
		{ID: CategoryTransport, Name: "Transporte", Icon: "🚗", Color: "#4ECDC4"},
		{ID: CategoryShopping, Name: "Compras", Icon: "🛍️", Color: "#45B7D1"},
		{ID: CategoryHealth, Name: "Saúde", Icon: "🏥", Color: "#96CEB4"},
		{ID: CategoryEducation, Name: "Educação", Icon: "📚", Color: "#FFEAA7"},
		{ID: CategoryEntertainment, Name: "Lazer", Icon: "🎬", Color: "#DDA0DD"},
		{ID: CategoryBills, Name: "Contas", Icon: "📄", Color: "#FFB347"},
		{ID: CategoryHome, Name: "Casa", Icon: "🏠", Color: "#98D8C8"},
		{ID: CategorySalary, Name: "Salário", Icon: "💰", Color: "#6BCF7F"},
		{ID: CategoryFreelance, Name: "Freelance", Icon: "💻", Color: "#4D96FF"},
		{ID: CategoryInvestment, Name: "Investimentos", Icon: "📈", Color: "#9B59B6"},
		{ID: CategoryGift, Name: "Presente", Icon: "🎁", Color: "#F39C12"},
		{ID: CategoryBonus, Name: "Bônus", Icon: "🎯", Color: "#1ABC9C"},
		{ID: CategoryOther, Name: "Outros", Icon: "💡", Color: "#95A5A6"},
	}
}

// IsIncomeCategory reports whether id is offered for income.
func IsIncomeCategory(id string) bool {
	return slices.Contains(IncomeCategoryIDs, id)
}

// IsIncomeOnly reports whether id is hidden from the expense picker.
func IsIncomeOnly(id string) bool {
	return id != CategoryOther && IsIncomeCategory(id)
}

// CategoriesFor filters categories to those offered for the given type.
// User-created categories are offered for expenses only.
func CategoriesFor(categories []Category, t TransactionType) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		switch t {
		case TypeIncome:
			if IsIncomeCategory(c.ID) {
				out = append(out, c)
			}
		default:
			if !IsIncomeOnly(c.ID) {
				out = append(out, c)
			}
		}
	}
	return out
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Label renders the category as "icon name".
func (c Category) Label() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}
