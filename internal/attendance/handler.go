package attendance

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type ServiceAPI interface {
	CreateAttendanceLog(ctx context.Context, principal *internal.Principal, dto CreateAttendanceLogDTO) (*AttendanceLog, error)
	GetAttendanceInRange(ctx context.Context, start, end time.Time) ([]*AttendanceLog, error)
	GetEmployeeAttendance(ctx context.Context, employeeID int64) ([]*AttendanceLog, error)
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

func (h *Handler) CreateAttendanceLog(w http.ResponseWriter, r *http.Request) {
	principal, _ := internal.PrincipalFromContext(r.Context())

	var dto CreateAttendanceLogDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	log, err := h.Service.CreateAttendanceLog(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, log)
}

func (h *Handler) GetAttendanceInRange(w http.ResponseWriter, r *http.Request) {
	start, appErr := validation.ParseTime("start_date", r.URL.Query().Get("start_date"))
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	end, appErr := validation.ParseTime("end_date", r.URL.Query().Get("end_date"))
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	logs, err := h.Service.GetAttendanceInRange(r.Context(), start, end)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, AttendanceLogsResponse{AttendanceLogs: logs})
}

func (h *Handler) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.ParseIDParam(r, "id")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	logs, err := h.Service.GetEmployeeAttendance(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, AttendanceLogsResponse{AttendanceLogs: logs})
}
