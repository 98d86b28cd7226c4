package handler

import "github.com/google/uuid"

type SubmitResponse struct {
	RunID uuid.UUID `json:"run_id"`
}
