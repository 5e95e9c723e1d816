package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/search"
)

const (
	UnknownName    = "Unknown"
	NotAvailable   = "N/A"
	cardTimeLayout = "2006-01-02 15:04"
)

type SearchCardDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Score            string   `json:"score"`
	MatchScore       float64  `json:"match_score"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Location         string   `json:"location,omitempty"`
	CurrentCompany   string   `json:"current_company"`
	CurrentPosition  string   `json:"current_position"`
	LastEducation    string   `json:"last_education"`
	Batch            string   `json:"batch"`
	Skills           []string `json:"skills"`
	Tags             []string `json:"tags"`
	OriginalFilename string   `json:"original_filename"`
	StoredFilename   string   `json:"stored_filename"`
	UploadedAt       string   `json:"uploaded_at,omitempty"`
}

func NewSearchCard(r model.SearchResult, loc *time.Location) SearchCardDTO {
	card := SearchCardDTO{
		ID:               r.ID,
		Name:             orDefault(r.Name, UnknownName),
		Score:            fmt.Sprintf("%.2f", r.MatchScore),
		MatchScore:       r.MatchScore,
		Email:            orDefault(r.Email, NotAvailable),
		Phone:            orDefault(r.Phone, NotAvailable),
		Location:         r.Location,
		CurrentCompany:   orDefault(r.CurrentCompany, NotAvailable),
		CurrentPosition:  orDefault(r.CurrentPosition, NotAvailable),
		LastEducation:    r.LastEducation,
		Batch:            NotAvailable,
		Skills:           append([]string{}, r.Skills...),
		Tags:             append([]string{}, r.Tags...),
		OriginalFilename: r.OriginalFilename,
		StoredFilename:   r.StoredFilename,
	}
	if r.GraduationBatch != 0 {
		card.Batch = strconv.Itoa(r.GraduationBatch)
	}
	if r.UploadTime != nil {
		card.UploadedAt = formatIn(*r.UploadTime, loc, cardTimeLayout)
	}
	return card
}

type FilterPanelDTO struct {
	Visible        bool                   `json:"visible"`
	Filters        search.FilterSet       `json:"filters"`
	Summary        string                 `json:"summary,omitempty"`
	BatchFloor     int                    `json:"batch_floor"`
	BatchCeiling   int                    `json:"batch_ceiling"`
	RecencyOptions []search.RecencyOption `json:"recency_options"`
}

type SearchViewDTO struct {
	Query      string          `json:"query"`
	Filters    FilterPanelDTO  `json:"filters"`
	Loading    bool            `json:"loading"`
	Results    []SearchCardDTO `json:"results"`
	EmptyState string          `json:"empty_state,omitempty"`
}

func NewSearchView(q search.Query, results []model.SearchResult, loading bool, loc *time.Location) SearchViewDTO {
	cards := make([]SearchCardDTO, 0, len(results))
	for _, r := range results {
		cards = append(cards, NewSearchCard(r, loc))
	}

	view := SearchViewDTO{
		Query: q.Term,
		Filters: FilterPanelDTO{
			Visible:        q.FiltersVisible,
			Filters:        q.Filters,
			BatchFloor:     search.BatchFloor,
			BatchCeiling:   search.BatchCeiling,
			RecencyOptions: search.RecencyOptions(),
		},
		Loading: loading,
		Results: cards,
	}
	if q.FiltersVisible {
		view.Filters.Summary = q.Filters.Summary()
	}
	if len(cards) == 0 && !loading {
		view.EmptyState = EmptyState(q.Term)
	}
	return view
}

// EmptyState is the hint shown when there are no results to list.
func EmptyState(term string) string {
	if term == "" {
		return "Start by entering a search query."
	}
	return `No matches found for "` + term + `".`
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
