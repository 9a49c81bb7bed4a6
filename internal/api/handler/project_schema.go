package handler

import (
	"bytes"
	"encoding/json"
	"time"
)

type createProjectRequest struct {
	Title        string  `json:"title"        validate:"required,max=255"`
	Description  string  `json:"description"  validate:"required"`
	ImageURL     *string `json:"imageUrl"     validate:"omitempty,max=500"`
	ProjectLink  *string `json:"projectLink"  validate:"omitempty,max=500"`
	Technologies *string `json:"technologies"`
}

// updateProjectRequest is a partial update: absent fields are left alone and
// null clears a nullable field.
type updateProjectRequest struct {
	Title        optionalString `json:"title"`
	Description  optionalString `json:"description"`
	ImageURL     optionalString `json:"imageUrl"`
	ProjectLink  optionalString `json:"projectLink"`
	Technologies optionalString `json:"technologies"`
}

// optionalString records whether a JSON field was present and whether it was null.
type optionalString struct {
	set   bool
	value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.value = &s
	return nil
}

type projectResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ImageURL       *string   `json:"imageUrl"`
	ProjectLink    *string   `json:"projectLink"`
	Technologies   *string   `json:"technologies"`
	TechnologyList []string  `json:"technologyList"`
	Status         string    `json:"status"       enums:"draft,published"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	UserID         string    `json:"userId"`
}

type statsResponse struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Recent    int64 `json:"recent"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
