package converter

import (
	"yaminabe_backend/internal/api/dto/slot"
	"yaminabe_backend/internal/model"
)

func ToSlotCreate(req slot.CreateRequest) model.SlotCreate {
	return model.SlotCreate{
		Ingredients:    req.Ingredients,
		IngredientsRaw: req.IngredientsRaw,
	}
}

func ToSlotStateResponse(state model.SlotState) slot.StateResponse {
	reels := make([]slot.ReelState, len(state.Reels))
	for i, r := range state.Reels {
		reels[i] = slot.ReelState{
			Axis:        r.Axis,
			Position:    r.Position,
			Stopped:     r.Stopped,
			Settling:    r.Settling,
			FinalSymbol: r.FinalSymbol,
		}
	}

	stopped := state.Stopped
	if stopped == nil {
		stopped = []bool{}
	}
	ingredients := state.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	return slot.StateResponse{
		SessionID:   state.SessionID,
		Accepted:    state.Accepted,
		IsSpinning:  state.Spinning,
		StoppedMask: stopped,
		Reels:       reels,
		Results:     state.Theme,
		Bonus:       state.Bonus,
		Ingredients: ingredients,
	}
}

func ToSlotCreateResponse(sess model.SlotSession) slot.CreateResponse {
	return slot.CreateResponse{
		State:  ToSlotStateResponse(sess.State),
		Strips: sess.Strips,
	}
}

func ToSlotConfirmResponse(out model.SlotOutcome) slot.ConfirmResponse {
	return slot.ConfirmResponse{
		Ingredients: out.Ingredients,
		Theme:       out.Theme,
		Bonus:       out.Bonus,
		Ticket:      out.Ticket,
	}
}

func ToSlotStatsResponse(stats model.SlotStats) slot.StatsResponse {
	axes := make([]slot.AxisStats, len(stats.Axes))
	for i, a := range stats.Axes {
		axes[i] = slot.AxisStats{
			Axis:   a.Axis,
			Counts: a.Counts,
			Total:  a.Total,
		}
	}
	return slot.StatsResponse{
		Sessions: stats.Sessions,
		Bonuses:  stats.Bonuses,
		Axes:     axes,
	}
}
