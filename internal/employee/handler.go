package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type ServiceAPI interface {
	ListEmployees(ctx context.Context, query ListQuery) ([]EmployeeResponse, error)
	GetEmployee(ctx context.Context, id int64) (*EmployeeResponse, error)
	CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (int64, error)
	UpdateEmployee(ctx context.Context, id int64, dto UpdateEmployeeDTO) (*EmployeeResponse, error)
	AssignTeam(ctx context.Context, id int64, dto AssignTeamDTO) (*EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id int64) error
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	skip, appErr := h.QueryInt(r, "skip", 0)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	limit, appErr := h.QueryInt(r, "limit", DefaultListLimit)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	employees, err := h.Service.ListEmployees(r.Context(), ListQuery{Skip: skip, Limit: limit})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, EmployeesResponse{Employees: employees})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.ParseIDParam(r, "id")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	employee, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employee)
}

// GetMe serves the profile of the employee the token belongs to.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || principal.Role != internal.RoleEmployee {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	employee, err := h.Service.GetEmployee(r.Context(), principal.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employee)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	id, err := h.Service.CreateEmployee(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err, "username", dto.Username)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created successfully", "employee_id", id, "team_id", dto.TeamID)
	h.WriteJSON(w, http.StatusCreated, CreateEmployeeResponse{ID: id})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.ParseIDParam(r, "id")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	var dto UpdateEmployeeDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	employee, err := h.Service.UpdateEmployee(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employee)
}

func (h *Handler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.ParseIDParam(r, "id")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	var dto AssignTeamDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	employee, err := h.Service.AssignTeam(r.Context(), id, dto)
	if err != nil {
		h.Logger.Warn("AssignTeam: service error", "error", err, "employee_id", id, "team_id", dto.TeamID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.ParseIDParam(r, "id")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, DeleteEmployeeResponse{ID: id, Message: "employee deleted"})
}
