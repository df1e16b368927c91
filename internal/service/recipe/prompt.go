package recipe

import (
	"fmt"
	"sort"
	"strings"

	"yaminabe_backend/internal/model"
)

// Оси, которые попадают в отдельные строки запроса. Остальные выводятся списком
const (
	axisGenre  = "genre"
	axisMethod = "method"
	axisMood   = "mood"
)

func recipePrompt(ingredients []string, theme model.Theme) string {
	var b strings.Builder

	b.WriteString("あなたは「味覚の科学者」です。以下の食材を使って、\n")
	b.WriteString("「きゅうり+ハチミツ=メロン」や「プリン+醤油=ウニ」のような、\n")
	b.WriteString("**意外性があり、かつ理論的に美味しそうな（あるいは再現性のある）**レシピを1つ考案してください。\n\n")

	fmt.Fprintf(&b, "【使用食材】: %s\n", strings.Join(ingredients, ", "))

	var head []string
	for _, axis := range []string{axisGenre, axisMethod} {
		if v, ok := theme[axis]; ok && v != "" {
			head = append(head, v)
		}
	}
	if len(head) > 0 {
		fmt.Fprintf(&b, "【テーマ】: %s\n", strings.Join(head, " × "))
	}
	if v, ok := theme[axisMood]; ok && v != "" {
		fmt.Fprintf(&b, "【気分】: %s\n", v)
	}

	var rest []string
	for axis := range theme {
		switch axis {
		case axisGenre, axisMethod, axisMood:
			continue
		}
		rest = append(rest, axis)
	}
	sort.Strings(rest)
	for _, axis := range rest {
		fmt.Fprintf(&b, "【%s】: %s\n", axis, theme[axis])
	}

	b.WriteString(`
出力は以下のJSON形式のみで行ってください（余計な会話は不要）:
{
    "recipeName": "料理名（キャッチーに）",
    "summary": "一言で言うとどんな料理か",
    "detail": "味と食感の説明",
    "description": "なぜこの組み合わせなのかの理論的解説（例: 香気成分が似ているため〜など）",
    "steps": ["工程1", "工程2", "工程3"]
}
`)
	return b.String()
}

func imagePrompt(recipeName string, ingredients []string, theme model.Theme) string {
	var b strings.Builder

	b.WriteString("(best quality, masterpiece, food photography:1.3),\n")
	fmt.Fprintf(&b, "Delicious looking dish %q.\n", recipeName)
	fmt.Fprintf(&b, "Main ingredients: %s.\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Cuisine style: %s. Cooking method: %s.\n", theme[axisGenre], theme[axisMethod])
	b.WriteString("(steam rising:1.2), (glistening sauce:1.1), fresh ingredients,\n")
	b.WriteString("warm lighting, soft focus background, restaurant quality,\n")
	b.WriteString("4k, highly detailed, appetizing, mouth-watering.")

	return b.String()
}
