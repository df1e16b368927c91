package slot

import (
	"errors"
	"net/http"
	"strconv"

	dto "yaminabe_backend/internal/api/dto/slot"
	"yaminabe_backend/internal/converter"
	"yaminabe_backend/internal/service"
	slotServ "yaminabe_backend/internal/service/slot"
	"yaminabe_backend/pkg/req"
	"yaminabe_backend/pkg/resp"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.SlotService
	Log  *zap.Logger
}

type Handler struct {
	serv service.SlotService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

// Create заводит слот-сессию с ингредиентами игрока
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.serv.Create(r.Context(), converter.ToSlotCreate(payload))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToSlotCreateResponse(*sess))
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.serv.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSlotStateResponse(*state))
}

// Start запуск барабанов. Если сессия уже крутится, accepted=false
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	state, err := h.serv.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSlotStateResponse(*state))
}

// Stop остановка барабана {reel}
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	reel, err := strconv.Atoi(chi.URLParam(r, "reel"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "reel must be an integer")
		return
	}

	state, err := h.serv.Stop(r.Context(), chi.URLParam(r, "id"), reel)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSlotStateResponse(*state))
}

// Confirm забирает итог и билет для генерации рецепта
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	out, err := h.serv.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSlotConfirmResponse(*out))
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	err := h.serv.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSlotStatsResponse(h.serv.Stats()))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, slotServ.ErrSessionNotFound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, slotServ.ErrNotFinished):
		resp.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, slotServ.ErrNoIngredients), errors.Is(err, slotServ.ErrTooManyIngredients):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("slot request failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
