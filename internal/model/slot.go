package model

type SlotCreate struct {
	Ingredients []string
	// IngredientsRaw JSON с экрана ввода ингредиентов, разбирается движком
	IngredientsRaw string
}

type ReelState struct {
	Axis        string
	Position    float64
	Stopped     bool
	Settling    bool
	FinalSymbol string
}

type SlotState struct {
	SessionID   string
	Accepted    bool
	Spinning    bool
	Stopped     []bool
	Reels       []ReelState
	Theme       Theme
	Bonus       bool
	Ingredients []string
}

type SlotSession struct {
	State  SlotState
	Strips [][]string
}

type SlotOutcome struct {
	Ingredients []string
	Theme       Theme
	Bonus       bool
	Ticket      string
}

type AxisStats struct {
	Axis   string
	Counts map[string]int
	Total  int
}

type SlotStats struct {
	Sessions int
	Bonuses  int
	Axes     []AxisStats
}

// Draw символ, выпавший на оси в завершённой сессии
type Draw struct {
	Axis   string
	Symbol string
}
