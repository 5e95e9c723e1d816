package dto

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type TagRequest struct {
	Tag string `json:"tag" form:"tag"`
}

type SearchRequest struct {
	Query string `json:"query" form:"query"`
}

// FilterRequest edits the filter panel. Nil fields are left as they are;
// ClearUploadRange resets the recency bucket.
type FilterRequest struct {
	BatchMin         *int    `json:"batch_min" form:"batch_min"`
	BatchMax         *int    `json:"batch_max" form:"batch_max"`
	LastEducation    *string `json:"last_education" form:"last_education"`
	UploadRange      *string `json:"upload_range" form:"upload_range"`
	ClearUploadRange bool    `json:"clear_upload_range" form:"clear_upload_range"`
}

type PanelOpenRequest struct {
	Source string `json:"source" form:"source"`
	Index  int    `json:"index" form:"index"`
}

type PanelClickRequest struct {
	Target string `json:"target" form:"target"`
}
