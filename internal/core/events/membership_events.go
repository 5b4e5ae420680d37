package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated     = "employee.created"
	EventTypeEmployeeTeamChanged = "employee.team_changed"
	EventTypeEmployeeDeleted     = "employee.deleted"
)

type EmployeeCreatedEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	TeamID     *int64 `json:"team_id,omitempty"`
}

func NewEmployeeCreatedEvent(employeeID int64, teamID *int64) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeCreated,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"team_id":     teamID,
			},
		},
		EmployeeID: employeeID,
		TeamID:     teamID,
	}
}

// EmployeeTeamChangedEvent carries the previous team when the employee had one.
type EmployeeTeamChangedEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	FromTeamID *int64 `json:"from_team_id,omitempty"`
	ToTeamID   int64  `json:"to_team_id"`
}

func NewEmployeeTeamChangedEvent(employeeID int64, fromTeamID *int64, toTeamID int64) *EmployeeTeamChangedEvent {
	return &EmployeeTeamChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeTeamChanged,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"employee_id":  employeeID,
				"from_team_id": fromTeamID,
				"to_team_id":   toTeamID,
			},
		},
		EmployeeID: employeeID,
		FromTeamID: fromTeamID,
		ToTeamID:   toTeamID,
	}
}

type EmployeeDeletedEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	TeamID     *int64 `json:"team_id,omitempty"`
}

func NewEmployeeDeletedEvent(employeeID int64, teamID *int64) *EmployeeDeletedEvent {
	return &EmployeeDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeDeleted,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"team_id":     teamID,
			},
		},
		EmployeeID: employeeID,
		TeamID:     teamID,
	}
}
