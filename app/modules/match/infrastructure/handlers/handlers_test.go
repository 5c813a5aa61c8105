package matchhandlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(svc *FakeMatchService) http.Handler {
	h := NewMatchHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Get("/api/matches", h.HandleListMatches)
	r.Get("/api/admin/matches/{matchID}", h.HandleAdminGetMatch)
	r.Patch("/api/admin/matches/{matchID}", h.HandleAdminRecordResult)
	return r
}

func TestHandleListMatches_EmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&FakeMatchService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/matches", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"matches":[]}`, rec.Body.String())
}

func TestHandleAdminRecordResult(t *testing.T) {
	matchID := uuid.New()

	tests := []struct {
		name       string
		path       string
		body       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ok",
			path:       "/api/admin/matches/" + matchID.String(),
			body:       `{"homeGoals": 2, "awayGoals": null}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad id",
			path:       "/api/admin/matches/not-a-uuid",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"MATCH_NOT_FOUND"}`,
		},
		{
			name:       "malformed body",
			path:       "/api/admin/matches/" + matchID.String(),
			body:       `{"homeGoals": 1.5}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"INVALID_BODY"}`,
		},
		{
			name:       "validation failure code",
			path:       "/api/admin/matches/" + matchID.String(),
			body:       `{"decidedByPenalties": true}`,
			serviceErr: fmt.Errorf("wrapped: %w", matchdomain.ErrPenaltyWinnerRequired),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"PENALTY_WINNER_REQUIRED"}`,
		},
		{
			name:       "unknown match",
			path:       "/api/admin/matches/" + matchID.String(),
			body:       `{"homeGoals": 1}`,
			serviceErr: matchdomain.ErrMatchNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "infrastructure failure",
			path:       "/api/admin/matches/" + matchID.String(),
			body:       `{"homeGoals": 1}`,
			serviceErr: errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"INTERNAL"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPatch matchdomain.ResultPatch
			svc := &FakeMatchService{
				RecordResultFunc: func(ctx context.Context, id uuid.UUID, patch matchdomain.ResultPatch) (*matchdomain.Match, error) {
					gotPatch = patch
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &matchdomain.Match{ID: id, HomeGoals: patch.HomeGoals.Value}, nil
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body))
			newRouter(svc).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.name == "ok" {
				assert.True(t, gotPatch.AwayGoals.Set)
				assert.Nil(t, gotPatch.AwayGoals.Value)
				assert.Contains(t, rec.Body.String(), `"ok":true`)
			}
		})
	}
}
