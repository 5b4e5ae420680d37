package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     svc,
	}
}

type loginFunc func(ctx context.Context, dto LoginDTO) (*TokenResponse, error)

func (h *Handler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.Service.LoginAdmin)
}

func (h *Handler) LoginEmployee(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.Service.LoginEmployee)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, fn loginFunc) {
	var dto LoginDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	tokens, err := fn(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Authenticate admits requests carrying a bearer token valid for one of
// roles, in order, and stores the resulting Principal in the context.
func (h *Handler) Authenticate(roles ...internal.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := h.ExtractTokenFromHeader(r)
			if token == "" {
				h.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			var (
				principal *internal.Principal
				err       error
			)
			for _, role := range roles {
				principal, err = h.Service.ValidateToken(r.Context(), token, role)
				if err == nil || !errors.Is(err, internal.ErrRoleMismatch) {
					break
				}
			}
			if err != nil {
				logger.From(r.Context()).Warn("token rejected", "error", err, "roles", roles)
				h.HandleServiceError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(internal.ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return h.Authenticate(internal.RoleAdmin)(next)
}

func (h *Handler) RequireEmployee(next http.Handler) http.Handler {
	return h.Authenticate(internal.RoleEmployee)(next)
}

func (h *Handler) RequireAdminOrEmployee(next http.Handler) http.Handler {
	return h.Authenticate(internal.RoleAdmin, internal.RoleEmployee)(next)
}
