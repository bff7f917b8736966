package models

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalCount int64       `json:"totalCount"`
	TotalPages int         `json:"totalPages"`
	HasNext    bool        `json:"hasNext"`
	HasPrev    bool        `json:"hasPrev"`
}

func NewPaginatedResponse(data interface{}, page, pageSize int, total int64) PaginatedResponse {
	totalPages := 1
	if pageSize > 0 && total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginatedResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

type DashboardStats struct {
	Properties        int64            `json:"properties"`
	PropertiesByState map[string]int64 `json:"propertiesByStatus"`
	Hotspots          int64            `json:"hotspots"`
	Agents            int64            `json:"agents"`
	Banks             int64            `json:"banks"`
	Categories        int64            `json:"categories"`
	Customers         int64            `json:"customers"`
	Leads             int64            `json:"leads"`
	LeadsByStatus     map[string]int64 `json:"leadsByStatus"`
	Reviews           int64            `json:"reviews"`
}
