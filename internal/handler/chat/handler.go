package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wzhuang/simpatient/backend/internal/service/chat"
	"github.com/wzhuang/simpatient/backend/internal/store"
	"github.com/wzhuang/simpatient/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	controller *chat.Controller
}

// New 创建聊天处理器
func New(controller *chat.Controller) *Handler {
	return &Handler{controller: controller}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleSubmitTurn)
	r.Get("/history/{studentID}", h.handleHistory)
}

// handleSubmitTurn 提交一轮对话
func (h *Handler) handleSubmitTurn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		StudentID string `json:"studentId"`
		PersonaID string `json:"personaId"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchange, err := h.controller.SubmitTurn(r.Context(), payload.StudentID, payload.PersonaID, payload.Message)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, chat.ErrMissingStudentID), errors.Is(err, chat.ErrMissingPersona):
			status = http.StatusBadRequest
		case errors.Is(err, chat.ErrUnknownPersona):
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchange)
}

// handleHistory 載入學生的对话存档，供教师检视
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	session, err := h.controller.History(studentID)
	if err != nil {
		var recordErr *store.RecordError
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, "no saved session for student")
		case errors.As(err, &recordErr):
			utils.RespondError(w, http.StatusUnprocessableEntity, recordErr.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}
