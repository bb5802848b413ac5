package models

import (
	"encoding/json"
	"time"
)

// EventLog is an observer-side copy of an emitted event.
type EventLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Contract  string    `gorm:"index;not null" json:"contract"`
	Name      string    `gorm:"index;not null" json:"name"`
	Payload   JSON      `gorm:"type:jsonb" json:"payload"`
	Record    string    `gorm:"type:text;not null" json:"record"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPayload flattens an event into the JSON column type.
func EventPayload(e Event) (JSON, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var payload JSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
