package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	Services     []string  `json:"services"`
	Total        float64   `json:"total"`
}
