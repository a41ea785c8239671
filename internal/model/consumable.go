package model

import (
	"strings"
	"time"
)

// Category категория расходника
type Category string

const (
	CategoryWaterFilter        Category = "water_filter"
	CategoryAirPurifierFilter  Category = "air_purifier_filter"
	CategoryAirConditionFilter Category = "ac_filter"
	CategoryVacuumFilter       Category = "vacuum_filter"
	CategoryOther              Category = "other"
)

// Categories все допустимые категории в порядке отображения
var Categories = []Category{
	CategoryWaterFilter,
	CategoryAirPurifierFilter,
	CategoryAirConditionFilter,
	CategoryVacuumFilter,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryWaterFilter:        "Фильтр для воды",
	CategoryAirPurifierFilter:  "Фильтр очистителя воздуха",
	CategoryAirConditionFilter: "Фильтр кондиционера",
	CategoryVacuumFilter:       "Фильтр пылесоса",
	CategoryOther:              "Другое",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory принимает код категории или её название без учёта регистра
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if s == string(c) || s == strings.ToLower(c.Label()) {
			return c, true
		}
	}
	return "", false
}

// Label название категории для пользователя
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Consumable расходник с ограниченным сроком службы (фильтры, картриджи и т.п.)
type Consumable struct {
	ID               int64      `json:"id,omitempty"`
	Name             string     `json:"name"`
	Category         Category   `json:"category"`
	InstallationDate Date       `json:"installation_date"`
	LifetimeDays     int        `json:"lifetime_days"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	DaysRemaining    int        `json:"days_remaining"` // вычисляется API
}

// ConsumableInput тело запросов создания и обновления расходника
type ConsumableInput struct {
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	InstallationDate Date     `json:"installation_date"`
	LifetimeDays     int      `json:"lifetime_days"`
	Notes            string   `json:"notes,omitempty"`
}

// ExpiresOn дата окончания срока службы
func (c Consumable) ExpiresOn() Date {
	return c.InstallationDate.AddDays(c.LifetimeDays)
}

// DaysRemaining оставшийся срок службы в днях, не меньше нуля
func DaysRemaining(installed Date, lifetimeDays int, today Date) int {
	remaining := lifetimeDays - installed.DaysUntil(today)
	if remaining < 0 {
		return 0
	}
	return remaining
}
