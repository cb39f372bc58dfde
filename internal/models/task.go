package models

import (
	"time"
)

// Task is a personal to-do item, optionally linked to a case.
type Task struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	IsCompleted bool      `json:"isCompleted"`
	CaseID      string    `json:"caseId,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}
