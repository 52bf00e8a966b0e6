package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wzhuang/simpatient/backend/internal/model/persona"
	"github.com/wzhuang/simpatient/backend/pkg/utils"
)

// Handler 模擬病人角色的HTTP处理器
type Handler struct {
	personas persona.Store
}

// New 创建persona处理器
func New(personas persona.Store) *Handler {
	return &Handler{personas: personas}
}

// RegisterRoutes 注册persona相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
	r.Get("/personas/names", h.handleListNames)
}

// handleListPersonas 列出所有角色（含角色卡描述）
func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	type card struct {
		persona.Persona
		Card string `json:"card"`
	}

	personas := h.personas.List()
	cards := make([]card, 0, len(personas))
	for _, p := range personas {
		cards = append(cards, card{Persona: p, Card: p.Describe()})
	}
	utils.RespondJSON(w, http.StatusOK, cards)
}

// handleListNames 列出角色名称，供选单使用
func (h *Handler) handleListNames(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.Names())
}
