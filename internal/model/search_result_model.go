package model

import "time"

// SearchResult is a ranked hit. MatchScore is opaque: it is displayed and kept
// in the order the backend returned it.
type SearchResult struct {
	FileRef
	MatchScore      float64    `json:"match_score"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Location        string     `json:"location,omitempty"`
	CurrentCompany  string     `json:"current_company,omitempty"`
	CurrentPosition string     `json:"current_position,omitempty"`
	LastEducation   string     `json:"last_education,omitempty"`
	GraduationBatch int        `json:"graduation_batch,omitempty"`
	Skills          []string   `json:"skills,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	UploadTime      *time.Time `json:"upload_time,omitempty"`
}
