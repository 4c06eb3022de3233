package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"insightboard/internal/common"
	"insightboard/internal/logging"
	"insightboard/internal/server/auth"
	"insightboard/internal/server/models"
	"insightboard/internal/server/services"
)

const testSecret = "test-secret"

// --- fakes ---

type fakeSessions struct {
	pair *services.TokenPair
	err  error

	lastEmail    string
	lastPassword string
	lastRefresh  string
}

func (f *fakeSessions) Register(ctx context.Context, username, email, password string) (*services.TokenPair, error) {
	f.lastEmail = email
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

func (f *fakeSessions) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	f.lastEmail = email
	f.lastPassword = password
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

func (f *fakeSessions) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	f.lastRefresh = refreshToken
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

type fakeNotes struct {
	note  *models.Note
	list  []*models.Note
	page  *services.PublicNotesPage
	err   error
	calls []string

	lastUserID string
	lastNoteID string
	lastPublic bool
}

func (f *fakeNotes) Create(ctx context.Context, userID, title, content string, isPublic bool) (*models.Note, error) {
	f.calls = append(f.calls, "create")
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.note, nil
}

func (f *fakeNotes) ListByOwner(ctx context.Context, userID string) ([]*models.Note, error) {
	f.calls = append(f.calls, "list")
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeNotes) Update(ctx context.Context, noteID, userID, title, content string) error {
	f.calls = append(f.calls, "update")
	f.lastNoteID = noteID
	f.lastUserID = userID
	return f.err
}

func (f *fakeNotes) Delete(ctx context.Context, noteID, userID string) error {
	f.calls = append(f.calls, "delete")
	f.lastNoteID = noteID
	f.lastUserID = userID
	return f.err
}

func (f *fakeNotes) SetVisibility(ctx context.Context, noteID, userID string, isPublic bool) error {
	f.calls = append(f.calls, "visibility")
	f.lastNoteID = noteID
	f.lastUserID = userID
	f.lastPublic = isPublic
	return f.err
}

func (f *fakeNotes) ListPublicByUsername(ctx context.Context, username string) ([]*models.Note, error) {
	f.calls = append(f.calls, "publicByUsername")
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeNotes) ListPublicPaged(ctx context.Context, pageNumber, pageSize int, sortBy string) (*services.PublicNotesPage, error) {
	f.calls = append(f.calls, "publicPaged")
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

// --- helpers ---

func newTestServer(t *testing.T, sessions *fakeSessions, notes *fakeNotes) *Server {
	t.Helper()
	if sessions == nil {
		sessions = &fakeSessions{}
	}
	if notes == nil {
		notes = &fakeNotes{}
	}
	l := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	return NewServer(":0", l, sessions, notes, testSecret)
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	tok, _, err := auth.GenerateAccessToken(
		&models.User{ID: userID, Username: "alice", Email: "alice@x.com"},
		[]byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	return "Bearer " + tok
}

func doJSON(t *testing.T, h http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func testPair() *services.TokenPair {
	return &services.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
}

// --- auth endpoints ---

func TestRegister_OK(t *testing.T) {
	sessions := &fakeSessions{pair: testPair()}
	h := newTestServer(t, sessions, nil).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "alice", "email": "alice@x.com", "password": "Secret123!"})

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "access" || resp.RefreshToken != "refresh" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	sessions := &fakeSessions{err: common.ErrEmailTaken}
	h := newTestServer(t, sessions, nil).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "bob", "email": "alice@x.com", "password": "pw"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestRegister_MalformedBody(t *testing.T) {
	h := newTestServer(t, nil, nil).Routes()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	sessions := &fakeSessions{err: common.ErrInvalidCredentials}
	h := newTestServer(t, sessions, nil).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "alice@x.com", "password": "wrong"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestRefresh_InvalidToken(t *testing.T) {
	sessions := &fakeSessions{err: common.ErrInvalidToken}
	h := newTestServer(t, sessions, nil).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/refresh", "",
		map[string]string{"refreshToken": "stale"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
	if sessions.lastRefresh != "stale" {
		t.Fatalf("refresh secret not passed through: %q", sessions.lastRefresh)
	}
}

func TestRefresh_OK(t *testing.T) {
	sessions := &fakeSessions{pair: testPair()}
	h := newTestServer(t, sessions, nil).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/refresh", "",
		map[string]string{"refreshToken": "good"})

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

// --- bearer middleware ---

func TestNotes_MissingToken(t *testing.T) {
	h := newTestServer(t, nil, nil).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/notes", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestNotes_GarbageToken(t *testing.T) {
	h := newTestServer(t, nil, nil).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/notes", "Bearer not.a.jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestNotes_ExpiredToken(t *testing.T) {
	h := newTestServer(t, nil, nil).Routes()

	tok, _, err := auth.GenerateAccessToken(
		&models.User{ID: "u1", Username: "alice", Email: "alice@x.com"},
		[]byte(testSecret), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/notes", "Bearer "+tok, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

// --- note endpoints ---

func TestListNotes_OK(t *testing.T) {
	notes := &fakeNotes{list: []*models.Note{
		{ID: "n-1", Title: "T", Content: "C", OwnerID: "u1", CreatedAt: time.Now()},
	}}
	h := newTestServer(t, nil, notes).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/notes", bearerFor(t, "u1"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if notes.lastUserID != "u1" {
		t.Fatalf("acting user not taken from token: %q", notes.lastUserID)
	}

	var dtos []noteDto
	if err := json.Unmarshal(rec.Body.Bytes(), &dtos); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(dtos) != 1 || dtos[0].ID != "n-1" {
		t.Fatalf("unexpected dtos: %+v", dtos)
	}
}

func TestCreateNote_Created(t *testing.T) {
	notes := &fakeNotes{note: &models.Note{ID: "n-1", Title: "T", Content: "C", OwnerID: "u1"}}
	h := newTestServer(t, nil, notes).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/notes", bearerFor(t, "u1"),
		map[string]any{"title": "T", "content": "C", "isPublic": false})

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d", rec.Code)
	}
}

func TestUpdateNote_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"owner succeeds", nil, http.StatusNoContent},
		{"non-owner", common.ErrForbidden, http.StatusUnauthorized},
		{"missing note", common.ErrorNotFound, http.StatusNotFound},
		{"malformed id", common.ErrInvalidID, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &fakeNotes{err: tt.err}
			h := newTestServer(t, nil, notes).Routes()

			rec := doJSON(t, h, http.MethodPut, "/api/notes/n-1", bearerFor(t, "u1"),
				map[string]string{"title": "T2", "content": "C2"})
			if rec.Code != tt.want {
				t.Fatalf("want %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestDeleteNote_NoContent(t *testing.T) {
	notes := &fakeNotes{}
	h := newTestServer(t, nil, notes).Routes()

	rec := doJSON(t, h, http.MethodDelete, "/api/notes/n-1", bearerFor(t, "u1"), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", rec.Code)
	}
	if notes.lastNoteID != "n-1" || notes.lastUserID != "u1" {
		t.Fatalf("wrong scoping: note=%q user=%q", notes.lastNoteID, notes.lastUserID)
	}
}

func TestSetVisibility_NoContent(t *testing.T) {
	notes := &fakeNotes{}
	h := newTestServer(t, nil, notes).Routes()

	rec := doJSON(t, h, http.MethodPatch, "/api/notes/n-1/visibility", bearerFor(t, "u1"),
		map[string]bool{"isPublic": true})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", rec.Code)
	}
	if !notes.lastPublic {
		t.Fatalf("isPublic not passed through")
	}
}

func TestPublishUnpublish_Shorthands(t *testing.T) {
	notes := &fakeNotes{}
	h := newTestServer(t, nil, notes).Routes()

	rec := doJSON(t, h, http.MethodPatch, "/api/notes/n-1/publish", bearerFor(t, "u1"), nil)
	if rec.Code != http.StatusNoContent || !notes.lastPublic {
		t.Fatalf("publish: code=%d public=%v", rec.Code, notes.lastPublic)
	}

	rec = doJSON(t, h, http.MethodPatch, "/api/notes/n-1/unpublish", bearerFor(t, "u1"), nil)
	if rec.Code != http.StatusNoContent || notes.lastPublic {
		t.Fatalf("unpublish: code=%d public=%v", rec.Code, notes.lastPublic)
	}
}

// --- public read paths ---

func TestPublicByUsername_OK(t *testing.T) {
	notes := &fakeNotes{list: []*models.Note{{ID: "n-1", IsPublic: true}}}
	h := newTestServer(t, nil, notes).Routes()

	// no bearer token required
	rec := doJSON(t, h, http.MethodGet, "/api/notes/public/alice", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestPublicByUsername_UnknownUser(t *testing.T) {
	notes := &fakeNotes{err: common.ErrorNotFound}
	h := newTestServer(t, nil, notes).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/notes/public/ghost", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestPublicPaged_OK(t *testing.T) {
	notes := &fakeNotes{page: &services.PublicNotesPage{
		Notes:        []*models.Note{{ID: "n-1", IsPublic: true}},
		PageNumber:   2,
		PageSize:     5,
		TotalRecords: 11,
	}}
	h := newTestServer(t, nil, notes).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/publicnote?pageNumber=2&pageSize=5&sortBy=createdAt_desc", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var resp pagedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PageNumber != 2 || resp.PageSize != 5 || resp.TotalRecords != 11 || len(resp.Data) != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestInternalError_Opaque(t *testing.T) {
	notes := &fakeNotes{err: context.DeadlineExceeded}
	h := newTestServer(t, nil, notes).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/notes", bearerFor(t, "u1"), nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// no internal detail leaks to the client
	if resp.Message != "Something went wrong. Please contact the developers team." {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, nil, nil).Routes()

	rec := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}
