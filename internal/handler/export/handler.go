package export

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wzhuang/simpatient/backend/internal/export"
	"github.com/wzhuang/simpatient/backend/pkg/utils"
)

// Handler 转录档匯出的HTTP处理器
type Handler struct {
	exporter *export.PDFExporter
}

// New 创建匯出处理器
func New(exporter *export.PDFExporter) *Handler {
	return &Handler{exporter: exporter}
}

// RegisterRoutes 注册匯出相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/export/{studentID}", h.handleExport)
	r.Get("/export/{studentID}/download", h.handleDownload)
}

// handleExport 产生转录PDF并返回其路径
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	path, err := h.exporter.Export(studentID)
	if err != nil {
		if errors.Is(err, export.ErrNoSuchSession) {
			utils.RespondError(w, http.StatusNotFound, "no saved session for student")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{"path": path})
}

// handleDownload 重新产生并下载转录PDF
func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	path, err := h.exporter.Export(studentID)
	if err != nil {
		if errors.Is(err, export.ErrNoSuchSession) {
			utils.RespondError(w, http.StatusNotFound, "no saved session for student")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}
