package httpapi

import (
	"time"

	"insightboard/internal/server/models"
	"insightboard/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Expiration   time.Time `json:"expiration"`
}

type createNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

type updateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type setVisibilityRequest struct {
	IsPublic bool `json:"isPublic"`
}

type noteDto struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	IsPublic  bool      `json:"isPublic"`
}

type pagedResponse struct {
	Data         []noteDto `json:"data"`
	PageNumber   int       `json:"pageNumber"`
	PageSize     int       `json:"pageSize"`
	TotalRecords int       `json:"totalRecords"`
}

func toAuthResponse(pair *services.TokenPair) authResponse {
	return authResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Expiration:   pair.ExpiresAt,
	}
}

func toNoteDto(n *models.Note) noteDto {
	return noteDto{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		IsPublic:  n.IsPublic,
	}
}

func toNoteDtos(notes []*models.Note) []noteDto {
	dtos := make([]noteDto, 0, len(notes))
	for _, n := range notes {
		dtos = append(dtos, toNoteDto(n))
	}
	return dtos
}
