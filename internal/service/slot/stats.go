package slot

import (
	"yaminabe_backend/internal/model"
	"yaminabe_backend/internal/reel"

	"go.uber.org/zap"
)

// record вызывается движком после подведения итогов
func (s *serv) record(sessionID string, out reel.Outcome) {
	draws := make([]model.Draw, len(out.Results))
	for i, r := range out.Results {
		draws[i] = model.Draw{Axis: r.Axis, Symbol: r.Symbol}
	}
	s.statsRepo.Record(draws, out.Bonus)

	fields := []zap.Field{
		zap.String("session_id", sessionID),
		zap.Bool("bonus", out.Bonus),
	}
	for _, r := range out.Results {
		fields = append(fields, zap.String(r.Axis, r.Symbol))
	}
	s.log.Info("slot session finalized", fields...)
}

func (s *serv) Stats() model.SlotStats {
	return s.statsRepo.Stats()
}

func toState(sessionID string, accepted bool, snap reel.Snapshot) model.SlotState {
	state := model.SlotState{
		SessionID:   sessionID,
		Accepted:    accepted,
		Spinning:    snap.Spinning,
		Stopped:     snap.Stopped,
		Reels:       make([]model.ReelState, len(snap.Reels)),
		Bonus:       snap.Bonus,
		Ingredients: snap.Ingredients,
	}
	for i, r := range snap.Reels {
		state.Reels[i] = model.ReelState{
			Axis:        r.Axis,
			Position:    r.Position,
			Stopped:     r.Stopped,
			Settling:    r.Settling,
			FinalSymbol: r.FinalSymbol,
		}
	}
	if snap.Results != nil {
		state.Theme = model.Theme(reel.Theme(snap.Results))
	}
	return state
}
