package models

// Hotel khách sạn, chủ sở hữu của Room và Service
type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Description string   `json:"description,omitempty"`
	Stars       int      `json:"stars"`
	Images      []string `json:"images,omitempty"`
	State       bool     `json:"state"`
}
