package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	authdomain "blog-backend/internal/auth/domain"
	authUsecase "blog-backend/internal/auth/usecase"
	postdomain "blog-backend/internal/post/domain"
	postUsecase "blog-backend/internal/post/usecase"
	"blog-backend/pkg/apperror"
	"blog-backend/pkg/config"
	"blog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors the wire shape for assertions.
type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Metadata *struct {
		TotalElements int64 `json:"total_elements"`
	} `json:"metadata"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
	Stack   string          `json:"stack"`
}

type memUserRepo struct {
	users map[string]*authdomain.User
	fail  error
}

func (r *memUserRepo) Create(u *authdomain.User) error {
	u.ID = uuid.New().String()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(id string) (*authdomain.User, error) {
	return r.users[id], nil
}

type memPostRepo struct {
	posts map[string]*postdomain.Post
	seq   int
}

func (r *memPostRepo) Create(p *postdomain.Post) error {
	p.ID = uuid.New().String()
	r.seq++
	p.CreatedAt = time.Unix(int64(r.seq), 0)
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.posts[p.ID] = &cp
	p.Author = &postdomain.Author{ID: p.AuthorID, Name: "author", Email: "author@example.com"}
	return nil
}

func (r *memPostRepo) FindByID(id string) (*postdomain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) List(q postdomain.ListQuery) ([]*postdomain.Post, int64, error) {
	var all []*postdomain.Post
	for _, p := range r.posts {
		if q.Search == "" ||
			strings.Contains(strings.ToLower(p.Title), strings.ToLower(q.Search)) ||
			strings.Contains(strings.ToLower(p.Content), strings.ToLower(q.Search)) {
			cp := *p
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if q.Skip >= len(all) {
		return nil, total, nil
	}
	end := q.Skip + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[q.Skip:end], total, nil
}

func (r *memPostRepo) FindByAuthor(authorID string, skip, limit int) ([]*postdomain.Post, int64, error) {
	var all []*postdomain.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			cp := *p
			all = append(all, &cp)
		}
	}
	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (r *memPostRepo) Update(p *postdomain.Post) error {
	stored, ok := r.posts[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Title = p.Title
	stored.Content = p.Content
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *memPostRepo) Delete(id string) error {
	if _, ok := r.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.posts, id)
	return nil
}

type testServer struct {
	engine   *gin.Engine
	userRepo *memUserRepo
	authUc   authUsecase.AuthUsecase
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	userRepo := &memUserRepo{users: make(map[string]*authdomain.User)}
	postRepo := &memPostRepo{posts: make(map[string]*postdomain.Post)}

	authUc := authUsecase.NewAuthUsecase(userRepo, cfg)
	postUc := postUsecase.NewPostUsecase(postRepo)

	r := gin.New()
	r.Use(ErrorHandler(logger.New("panic"), cfg))
	SetupRoutes(r, authUc, postUc)

	return &testServer{engine: r, userRepo: userRepo, authUc: authUc}
}

func devConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: body is not an envelope: %s", method, path, w.Body.String())
		}
	}
	return w, env
}

func (s *testServer) registerAndLogin(t *testing.T, name, email string) (userID, token string) {
	t.Helper()
	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}

	w, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var data struct {
		User  authdomain.User `json:"user"`
		Token string          `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	return data.User.ID, data.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, devConfig())
	w, _ := s.do(t, http.MethodGet, "/api/v1/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
}

func TestRegisterNeverReturnsPassword(t *testing.T) {
	s := newTestServer(t, devConfig())
	w, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "secret123",
	})
	if w.Code != http.StatusCreated || !env.Success {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") || strings.Contains(w.Body.String(), "secret123") {
		t.Fatalf("response leaks credential material: %s", w.Body.String())
	}
}

func TestRegisterValidationDetails(t *testing.T) {
	s := newTestServer(t, devConfig())
	w, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "A", "email": "not-an-email", "password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if env.Error != apperror.CodeValidation {
		t.Errorf("error = %q, want %s", env.Error, apperror.CodeValidation)
	}
	if len(env.Details) == 0 {
		t.Error("validation failure carries no per-field details")
	}
}

func TestAuthHeaderTable(t *testing.T) {
	s := newTestServer(t, devConfig())
	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no scheme", "abcdef"},
		{"wrong scheme", "Token abcdef"},
		{"bare bearer", "Bearer"},
		{"extra parts", "Bearer a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			s.engine.ServeHTTP(w, req)

			var env envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatal(err)
			}
			if w.Code != http.StatusUnauthorized || env.Error != apperror.CodeAuthentication {
				t.Errorf("got %d %s, want 401 %s", w.Code, env.Error, apperror.CodeAuthentication)
			}
		})
	}
}

func TestExpiredTokenCode(t *testing.T) {
	s := newTestServer(t, devConfig())
	userID, _ := s.registerAndLogin(t, "Ada", "ada@example.com")

	// Mint an already-expired token for the same user against the same secret
	expiredCfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Second}
	expiredUc := authUsecase.NewAuthUsecase(s.userRepo, expiredCfg)
	user, _ := s.userRepo.FindByID(userID)
	token, err := expiredUc.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}

	w, env := s.do(t, http.MethodGet, "/api/v1/posts/me", token, nil)
	if w.Code != http.StatusUnauthorized || env.Error != apperror.CodeTokenExpired {
		t.Fatalf("got %d %s, want 401 %s", w.Code, env.Error, apperror.CodeTokenExpired)
	}
}

func TestInvalidTokenCode(t *testing.T) {
	s := newTestServer(t, devConfig())
	w, env := s.do(t, http.MethodGet, "/api/v1/posts/me", "not-a-real-token", nil)
	if w.Code != http.StatusUnauthorized || env.Error != apperror.CodeTokenInvalid {
		t.Fatalf("got %d %s, want 401 %s", w.Code, env.Error, apperror.CodeTokenInvalid)
	}
}

func TestPostCRUDAndOwnership(t *testing.T) {
	s := newTestServer(t, devConfig())
	_, ownerToken := s.registerAndLogin(t, "Owner", "owner@example.com")
	_, otherToken := s.registerAndLogin(t, "Other", "other@example.com")

	// Create
	w, env := s.do(t, http.MethodPost, "/api/v1/posts", ownerToken, gin.H{
		"title": "First Post", "content": "<p>some real content here</p>",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var created postdomain.Post
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Author == nil || created.Author.Name == "" {
		t.Error("created post missing author join")
	}

	// Public read
	w, env = s.do(t, http.MethodGet, "/api/v1/posts/"+created.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d", w.Code)
	}

	// Public list carries metadata
	w, env = s.do(t, http.MethodGet, "/api/v1/posts?sort=newest", "", nil)
	if w.Code != http.StatusOK || env.Metadata == nil || env.Metadata.TotalElements != 1 {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}

	// Non-owner update
	w, env = s.do(t, http.MethodPut, "/api/v1/posts/"+created.ID, otherToken, gin.H{"title": "Hijacked"})
	if w.Code != http.StatusForbidden || env.Error != apperror.CodeForbidden {
		t.Fatalf("intruder update: %d %s", w.Code, env.Error)
	}

	// Non-owner delete
	w, env = s.do(t, http.MethodDelete, "/api/v1/posts/"+created.ID, otherToken, nil)
	if w.Code != http.StatusForbidden || env.Error != apperror.CodeForbidden {
		t.Fatalf("intruder delete: %d %s", w.Code, env.Error)
	}

	// Owner update
	w, env = s.do(t, http.MethodPut, "/api/v1/posts/"+created.ID, ownerToken, gin.H{"title": "Renamed Post"})
	if w.Code != http.StatusOK {
		t.Fatalf("owner update: %d %s", w.Code, w.Body.String())
	}

	// Owner delete
	w, env = s.do(t, http.MethodDelete, "/api/v1/posts/"+created.ID, ownerToken, nil)
	if w.Code != http.StatusOK || env.Message == "" {
		t.Fatalf("owner delete: %d %s", w.Code, w.Body.String())
	}

	// Gone
	w, env = s.do(t, http.MethodGet, "/api/v1/posts/"+created.ID, "", nil)
	if w.Code != http.StatusNotFound || env.Error != apperror.CodeNotFound {
		t.Fatalf("deleted post read: %d %s", w.Code, env.Error)
	}
}

func TestEmptyFeedDataIsArray(t *testing.T) {
	s := newTestServer(t, devConfig())

	w, env := s.do(t, http.MethodGet, "/api/v1/posts", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("empty feed: %d", w.Code)
	}
	if env.Metadata == nil || env.Metadata.TotalElements != 0 {
		t.Fatalf("metadata = %+v, want total 0", env.Metadata)
	}
	if string(env.Data) != "[]" {
		t.Fatalf(`data = %s, want [] (array-expecting clients break on null)`, env.Data)
	}

	// Same guarantee for the user-scoped list
	_, token := s.registerAndLogin(t, "Ada", "ada@example.com")
	w, env = s.do(t, http.MethodGet, "/api/v1/posts/me", token, nil)
	if w.Code != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("empty my-posts: %d data=%s, want []", w.Code, env.Data)
	}

	// A search matching nothing is the same empty-page case
	w, env = s.do(t, http.MethodGet, "/api/v1/posts?search=nomatch", "", nil)
	if w.Code != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("no-match search: %d data=%s, want []", w.Code, env.Data)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := newTestServer(t, devConfig())
	w, env := s.do(t, http.MethodGet, "/api/v1/posts/nonexistent-id", "", nil)
	if w.Code != http.StatusNotFound || env.Error != apperror.CodeNotFound || env.Success {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}

func TestRouteNotFound(t *testing.T) {
	s := newTestServer(t, devConfig())
	w, env := s.do(t, http.MethodGet, "/api/v1/nope", "", nil)
	if w.Code != http.StatusNotFound || env.Error != apperror.CodeRouteNotFound {
		t.Fatalf("got %d %s", w.Code, env.Error)
	}
}

func TestMyPostsScopedToRequester(t *testing.T) {
	s := newTestServer(t, devConfig())
	_, aToken := s.registerAndLogin(t, "A", "a@example.com")
	_, bToken := s.registerAndLogin(t, "B", "b@example.com")

	for i := 0; i < 3; i++ {
		s.do(t, http.MethodPost, "/api/v1/posts", aToken, gin.H{
			"title": fmt.Sprintf("A post %d", i), "content": "<p>sufficient content body</p>",
		})
	}
	s.do(t, http.MethodPost, "/api/v1/posts", bToken, gin.H{
		"title": "B post", "content": "<p>sufficient content body</p>",
	})

	w, env := s.do(t, http.MethodGet, "/api/v1/posts/me?limit=2", aToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("my posts: %d", w.Code)
	}
	if env.Metadata == nil || env.Metadata.TotalElements != 3 {
		t.Fatalf("metadata = %+v, want total 3 independent of the page window", env.Metadata)
	}
	var page []postdomain.Post
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
}

func TestInternalErrorHiddenInProduction(t *testing.T) {
	boom := errors.New("pq: connection reset by peer")

	prod := devConfig()
	prod.Environment = "production"

	for _, tc := range []struct {
		name      string
		cfg       *config.Config
		wantStack bool
	}{
		{"development", devConfig(), true},
		{"production", prod, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, tc.cfg)
			s.userRepo.fail = boom

			w, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
				"email": "ada@example.com", "password": "secret123",
			})
			if w.Code != http.StatusInternalServerError || env.Error != apperror.CodeInternal {
				t.Fatalf("got %d %s", w.Code, env.Error)
			}
			gotStack := env.Stack != ""
			leaked := strings.Contains(env.Message, "connection reset")
			if tc.wantStack && !gotStack {
				t.Error("development response missing diagnostic stack")
			}
			if !tc.wantStack && (gotStack || leaked) {
				t.Errorf("production response leaks internals: %s", w.Body.String())
			}
		})
	}
}
