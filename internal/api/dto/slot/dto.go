package slot

type CreateRequest struct {
	Ingredients    []string `json:"ingredients"`    // Готовый список ингредиентов (до 5)
	IngredientsRaw string   `json:"ingredientsRaw"` // JSON с экрана ввода: [{"name":"..","quantity":".."}]
}

type ReelState struct {
	Axis        string  `json:"axis"`
	Position    float64 `json:"position"` // Смещение ленты в пикселях
	Stopped     bool    `json:"stopped"`
	Settling    bool    `json:"settling"` // Идёт замедление к итоговому символу
	FinalSymbol string  `json:"finalSymbol,omitempty"`
}

type StateResponse struct {
	SessionID   string            `json:"sessionId"`
	Accepted    bool              `json:"accepted"` // Была ли принята последняя команда
	IsSpinning  bool              `json:"isSpinning"`
	StoppedMask []bool            `json:"stoppedMask"`
	Reels       []ReelState       `json:"reels"`
	Results     map[string]string `json:"results,omitempty"` // Ось -> символ, после подведения итогов
	Bonus       bool              `json:"bonus"`
	Ingredients []string          `json:"ingredients"`
}

type CreateResponse struct {
	State  StateResponse `json:"state"`
	Strips [][]string    `json:"strips"` // Ленты символов по барабанам
}

type ConfirmResponse struct {
	Ingredients []string          `json:"ingredients"`
	Theme       map[string]string `json:"theme"`
	Bonus       bool              `json:"bonus"`
	Ticket      string            `json:"ticket"` // Подписанный билет для /api/generate-recipe
}

type AxisStats struct {
	Axis   string         `json:"axis"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type StatsResponse struct {
	Sessions int         `json:"sessions"`
	Bonuses  int         `json:"bonuses"`
	Axes     []AxisStats `json:"axes"`
}
