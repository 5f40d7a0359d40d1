package timer

import (
	timerService "github.com/JorgeSaicoski/time-keeper/internal/services/timer"
)

// Request DTOs

type StartTimerRequest struct {
	TaskName    string   `json:"task_name" binding:"required"`
	Description string   `json:"description"`
	ProjectID   *string  `json:"project_id"`
	Tags        []string `json:"tags"`
}

func (r *StartTimerRequest) ToInput() timerService.StartTimerInput {
	return timerService.StartTimerInput{
		TaskName:    r.TaskName,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		Tags:        r.Tags,
	}
}
