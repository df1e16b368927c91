package reel

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// IngredientPlaceholder показывается вместо списка, если его не удалось разобрать
const IngredientPlaceholder = "解析失敗"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ingredientItem struct {
	Name     string `json:"name"`
	Quantity any    `json:"quantity"`
}

// ParseIngredients разбирает JSON вида [{"name": "...", "quantity": ...}] в строки "name(quantity)".
// Пустая строка даёт пустой список, ошибка разбора даёт список из одного IngredientPlaceholder
func ParseIngredients(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	var items []ingredientItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{IngredientPlaceholder}
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Quantity == nil {
			out = append(out, it.Name)
			continue
		}
		out = append(out, fmt.Sprintf("%s(%v)", it.Name, it.Quantity))
	}
	return out
}
