package models

type PaginatedFormsResponse struct {
	Forms      []FormSchema `json:"forms"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

type PaginatedSubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
	Total       int64        `json:"total"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	TotalPages  int          `json:"totalPages"`
}
