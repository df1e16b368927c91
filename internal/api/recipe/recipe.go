package recipe

import (
	"errors"
	"net/http"

	dto "yaminabe_backend/internal/api/dto/recipe"
	"yaminabe_backend/internal/converter"
	"yaminabe_backend/internal/service"
	recipeServ "yaminabe_backend/internal/service/recipe"
	"yaminabe_backend/pkg/req"
	"yaminabe_backend/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.RecipeService
	Log  *zap.Logger
}

type Handler struct {
	serv service.RecipeService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

// GenerateRecipe рецепт по ингредиентам и теме либо по билету слот-сессии
func (h *Handler) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.GenerateRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "データ不足")
		return
	}

	recipe, err := h.serv.Generate(r.Context(), converter.ToRecipeRequest(payload))
	if err != nil {
		switch {
		case errors.Is(err, recipeServ.ErrMissingData):
			resp.WriteError(w, http.StatusBadRequest, "データ不足")
		case errors.Is(err, recipeServ.ErrInvalidTicket):
			resp.WriteError(w, http.StatusUnauthorized, err.Error())
		default:
			h.log.Error("generate recipe failed", zap.Error(err))
			resp.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRecipeResponse(*recipe))
}

func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ImageRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := h.serv.GenerateImage(r.Context(), converter.ToImageRequest(payload))
	if err != nil {
		switch {
		case errors.Is(err, recipeServ.ErrEmptyName):
			resp.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, recipeServ.ErrImageFailed):
			resp.WriteError(w, http.StatusBadGateway, err.Error())
		default:
			h.log.Error("generate image failed", zap.Error(err))
			resp.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToImageResponse(*img))
}

// SaveRecipe сохраняет рецепт для гачи
func (h *Handler) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SaveRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.serv.Save(r.Context(), converter.SaveRequestToRecipe(payload))
	if err != nil {
		if errors.Is(err, recipeServ.ErrEmptyName) {
			resp.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("save recipe failed", zap.Error(err))
		resp.WriteJSONResponse(w, http.StatusInternalServerError, dto.SaveResponse{Success: false})
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.SaveResponse{Success: true, ID: id})
}

// Gacha случайный сохранённый рецепт, null если сохранённых нет
func (h *Handler) Gacha(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.serv.Gacha(r.Context())
	if err != nil {
		h.log.Error("gacha failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if recipe == nil {
		resp.WriteJSONResponse(w, http.StatusOK, (*dto.RecipeResponse)(nil))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRecipeResponse(*recipe))
}
