package handler

import (
	"net/http"

	"smarthost/internal/users/service"
	httputil "smarthost/pkg/http"
	"smarthost/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// DBProbeResponse is the body of GET /api/test-db.
type DBProbeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserCount *int64 `json:"userCount,omitempty"`
	Error     string `json:"error,omitempty"`
}

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// TestDB reports whether the store answers a user count.
func (h *UserHandler) TestDB(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.log.Error("Database connection error", "error", err)
		resp := DBProbeResponse{
			Success: false,
			Message: "Database connection failed",
			Error:   err.Error(),
		}
		if writeErr := httputil.WriteJSON(w, http.StatusInternalServerError, resp); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "TestDB", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	resp := DBProbeResponse{
		Success:   true,
		Message:   "Database connection successful",
		UserCount: &count,
	}
	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "TestDB", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/test-db", h.TestDB)
	router.GET("/api/v1/users/:id", h.GetByID)
}
