package teams

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stampcard/internal/shared/constants"
	"stampcard/pkg/cache/cachetest"
	"stampcard/pkg/logger"
)

type dummyRepository struct {
	teams    []Team
	lists    int
	failList bool
}

func (r *dummyRepository) List(context.Context) ([]Team, error) {
	r.lists++
	if r.failList {
		return nil, errors.New("db down")
	}
	return append([]Team(nil), r.teams...), nil
}

func (r *dummyRepository) Count(context.Context) (int64, error) {
	return int64(len(r.teams)), nil
}

func (r *dummyRepository) Replace(_ context.Context, names []string) error {
	r.teams = r.teams[:0]
	for i, n := range names {
		r.teams = append(r.teams, Team{Name: n, Position: i})
	}
	return nil
}

func TestParseTeamList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"basic", "CMG\nOE\nFinance", []string{"CMG", "OE", "Finance"}},
		{"trims and drops blanks", "  CMG \n\n\t\nOE\r\n", []string{"CMG", "OE"}},
		{"dedupes keeping first", "A\nB\nA\nb", []string{"A", "B", "b"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTeamList(tt.in))
		})
	}
}

func TestSeedDefaultsOnlyWhenEmpty(t *testing.T) {
	repo := &dummyRepository{}
	svc := NewService(repo, nil, logger.Discard())
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx, []string{"CMG", "OE"}))
	names, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CMG", "OE"}, names)

	require.NoError(t, svc.SeedDefaults(ctx, []string{"Other"}))
	names, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CMG", "OE"}, names)
}

func TestListUsesCacheAndReplaceInvalidates(t *testing.T) {
	repo := &dummyRepository{}
	mem := cachetest.NewMemory()
	svc := NewService(repo, mem, logger.Discard())
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx, []string{"CMG"}))

	for range 3 {
		names, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"CMG"}, names)
	}
	assert.Equal(t, 1, repo.lists)
	assert.True(t, mem.Exists(ctx, constants.CACHE_KEY_TEAMS_ALL))

	names, err := svc.Replace(ctx, "Legal\nPOD\nLegal")
	require.NoError(t, err)
	assert.Equal(t, []string{"Legal", "POD"}, names)
	assert.False(t, mem.Exists(ctx, constants.CACHE_KEY_TEAMS_ALL))

	ok, err := svc.Contains(ctx, "POD")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Contains(ctx, "CMG")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplaceRejectsEmptyList(t *testing.T) {
	svc := NewService(&dummyRepository{}, nil, logger.Discard())
	_, err := svc.Replace(context.Background(), " \n\n")
	assert.ErrorIs(t, err, ErrEmptyTeamList)
}

func TestListPropagatesRepositoryErrors(t *testing.T) {
	svc := NewService(&dummyRepository{failList: true}, nil, logger.Discard())
	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

func TestTeamEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &dummyRepository{}
	svc := NewService(repo, nil, logger.Discard())
	require.NoError(t, svc.SeedDefaults(context.Background(), []string{"CMG", "OE"}))

	r := gin.New()
	SetupTeamRoutes(r.Group("/api/v1"), NewController(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data TeamListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"CMG", "OE"}, body.Data.Teams)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/teams", strings.NewReader(`{"teams":"Finance\nLegal"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Finance", repo.teams[0].Name)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/admin/teams", strings.NewReader(`{"teams":"  \n "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
