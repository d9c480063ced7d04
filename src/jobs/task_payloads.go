package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeBirthdayScan = "birthday:scan"

type BirthdayScanPayload struct {
	SchoolCode string `json:"school_code,omitempty"`
}

func NewBirthdayScanTask(schoolCode string) (*asynq.Task, error) {
	payload, err := json.Marshal(BirthdayScanPayload{SchoolCode: schoolCode})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBirthdayScan, payload), nil
}
