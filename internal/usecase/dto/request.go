package dto

// UpdateMapRequest - запрос на раскраску карты по году
type UpdateMapRequest struct {
	Year string `json:"year" validate:"required,risk_year" example:"2025"`
}
