package admin

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type ServiceAPI interface {
	CreateAdmin(ctx context.Context, dto CreateAdminDTO) (*AdminResponse, error)
	GetAdmin(ctx context.Context, id int64) (*AdminResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var dto CreateAdminDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	admin, err := h.Service.CreateAdmin(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, admin)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || !principal.IsAdmin() {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	admin, err := h.Service.GetAdmin(r.Context(), principal.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, admin)
}
