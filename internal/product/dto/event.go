package dto

import "time"

const EventTypeProductCreated = "product.created"

type ProductCreatedEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Payload   ProductCreated `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

type ProductCreated struct {
	ID       int64                  `json:"id"`
	Name     string                 `json:"name"`
	Cost     float64                `json:"cost"`
	Active   bool                   `json:"active"`
	Variants []VariantValuesPayload `json:"variants"`
}

type VariantValuesPayload struct {
	Name   string    `json:"name"`
	Values []*string `json:"values"`
}
