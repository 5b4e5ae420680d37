package leave

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
	CreateDailyLeave(ctx context.Context, principal *internal.Principal, dto CreateDailyLeaveDTO) (*DailyLeaveRecord, error)
	GetDailyLeaveInRange(ctx context.Context, start, end time.Time) ([]*DailyLeaveRecord, error)
	CreateHourlyLeave(ctx context.Context, principal *internal.Principal, dto CreateHourlyLeaveDTO) (*HourlyLeaveRecord, error)
	GetHourlyLeaveInRange(ctx context.Context, start, end time.Time) ([]*HourlyLeaveRecord, error)
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

func (h *Handler) CreateDailyLeave(w http.ResponseWriter, r *http.Request) {
	principal, _ := internal.PrincipalFromContext(r.Context())

	var dto CreateDailyLeaveDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	record, err := h.Service.CreateDailyLeave(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) GetDailyLeaveInRange(w http.ResponseWriter, r *http.Request) {
	start, end, appErr := rangeParams(r, validation.ParseDate)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	records, err := h.Service.GetDailyLeaveInRange(r.Context(), start, end)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, DailyLeaveRecordsResponse{DailyLeaveRecords: records})
}

func (h *Handler) CreateHourlyLeave(w http.ResponseWriter, r *http.Request) {
	principal, _ := internal.PrincipalFromContext(r.Context())

	var dto CreateHourlyLeaveDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	record, err := h.Service.CreateHourlyLeave(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) GetHourlyLeaveInRange(w http.ResponseWriter, r *http.Request) {
	start, end, appErr := rangeParams(r, validation.ParseTime)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	records, err := h.Service.GetHourlyLeaveInRange(r.Context(), start, end)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, HourlyLeaveRecordsResponse{HourlyLeaveRecords: records})
}

type parseFunc func(field, raw string) (time.Time, *internal.AppError)

func rangeParams(r *http.Request, parse parseFunc) (time.Time, time.Time, *internal.AppError) {
	start, appErr := parse("start_date", r.URL.Query().Get("start_date"))
	if appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}
	end, appErr := parse("end_date", r.URL.Query().Get("end_date"))
	if appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}
	return start, end, nil
}
