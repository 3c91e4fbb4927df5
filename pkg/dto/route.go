package dto

type RouteResponse struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Component string `json:"component"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
