package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/model"
	"github.com/iliyamo/movie-review-api/internal/repository"
)

// In-memory stores backing handler tests. They mirror the contracts of the
// mongo repositories: business-key probes return nil when absent, id
// lookups return repository.ErrNotFound.

type fakeUserStore struct {
	seq   int
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (s *fakeUserStore) nextID() string { s.seq++; return strconv.Itoa(s.seq) }

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, other := range s.users {
		if other.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = s.nextID()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	u, found := s.users[id]
	if !found {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) UpdateName(_ context.Context, id, firstName, lastName string) error {
	u, found := s.users[id]
	if !found {
		return repository.ErrNotFound
	}
	u.FirstName = firstName
	u.LastName = lastName
	return nil
}

func (s *fakeUserStore) SetApproval(_ context.Context, id string, approved bool) error {
	u, found := s.users[id]
	if !found {
		return repository.ErrNotFound
	}
	u.Approved = approved
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id string) error {
	if _, found := s.users[id]; !found {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type fakeActorStore struct {
	seq   int
	links map[string]*model.Actor
}

func newFakeActorStore() *fakeActorStore {
	return &fakeActorStore{links: map[string]*model.Actor{}}
}

func (s *fakeActorStore) Create(_ context.Context, a *model.Actor) error {
	s.seq++
	a.ID = strconv.Itoa(s.seq)
	cp := *a
	s.links[a.ID] = &cp
	return nil
}

func (s *fakeActorStore) FindByID(_ context.Context, id string) (*model.Actor, error) {
	a, found := s.links[id]
	if !found {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeActorStore) FindByPair(_ context.Context, actorDetailsID, movieID string) (*model.Actor, error) {
	for _, a := range s.links {
		if a.ActorDetailsID == actorDetailsID && a.MovieID == movieID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeActorStore) ListByMovie(_ context.Context, movieID string) ([]model.Actor, error) {
	out := []model.Actor{}
	for _, a := range s.links {
		if a.MovieID == movieID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *fakeActorStore) ListByActorDetails(_ context.Context, actorDetailsID string) ([]model.Actor, error) {
	out := []model.Actor{}
	for _, a := range s.links {
		if a.ActorDetailsID == actorDetailsID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *fakeActorStore) Delete(_ context.Context, id string) error {
	if _, found := s.links[id]; !found {
		return repository.ErrNotFound
	}
	delete(s.links, id)
	return nil
}

type fakeReviewStore struct {
	seq     int
	reviews map[string]*model.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[string]*model.Review{}}
}

func (s *fakeReviewStore) Create(_ context.Context, r *model.Review) error {
	s.seq++
	r.ID = strconv.Itoa(s.seq)
	cp := *r
	s.reviews[r.ID] = &cp
	return nil
}

func (s *fakeReviewStore) Update(_ context.Context, r *model.Review) error {
	if _, found := s.reviews[r.ID]; !found {
		return repository.ErrNotFound
	}
	cp := *r
	s.reviews[r.ID] = &cp
	return nil
}

func (s *fakeReviewStore) FindByID(_ context.Context, id string) (*model.Review, error) {
	r, found := s.reviews[id]
	if !found {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeReviewStore) FindByUserAndMovie(_ context.Context, userID, movieID string) (*model.Review, error) {
	for _, r := range s.reviews {
		if r.UserID == userID && r.MovieID == movieID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeReviewStore) ListPending(_ context.Context) ([]model.Review, error) {
	out := []model.Review{}
	for _, r := range s.reviews {
		if !r.Approved {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReviewStore) ListApprovedByMovie(_ context.Context, movieID string) ([]model.Review, error) {
	out := []model.Review{}
	for _, r := range s.reviews {
		if r.MovieID == movieID && r.Approved {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReviewStore) ListByUser(_ context.Context, userID string) ([]model.Review, error) {
	out := []model.Review{}
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReviewStore) SetApproval(_ context.Context, id string, approved bool) error {
	r, found := s.reviews[id]
	if !found {
		return repository.ErrNotFound
	}
	r.Approved = approved
	return nil
}

func (s *fakeReviewStore) Delete(_ context.Context, id string) error {
	if _, found := s.reviews[id]; !found {
		return repository.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

type fakeMovieStore struct {
	seq     int
	movies  map[string]*model.Movie
	actors  *fakeActorStore
	reviews *fakeReviewStore
}

func newFakeMovieStore(actors *fakeActorStore, reviews *fakeReviewStore) *fakeMovieStore {
	return &fakeMovieStore{movies: map[string]*model.Movie{}, actors: actors, reviews: reviews}
}

func (s *fakeMovieStore) Create(_ context.Context, m *model.Movie) error {
	s.seq++
	m.ID = strconv.Itoa(s.seq)
	cp := *m
	s.movies[m.ID] = &cp
	return nil
}

func (s *fakeMovieStore) FindByID(_ context.Context, id string) (*model.Movie, error) {
	m, found := s.movies[id]
	if !found {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *fakeMovieStore) FindByTitle(_ context.Context, title string) (*model.Movie, error) {
	for _, m := range s.movies {
		if strings.EqualFold(m.Title, title) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeMovieStore) List(_ context.Context) ([]model.Movie, error) {
	out := []model.Movie{}
	for _, m := range s.movies {
		out = append(out, *m)
	}
	return out, nil
}

func (s *fakeMovieStore) SearchByTitle(_ context.Context, keyword string) ([]model.Movie, error) {
	out := []model.Movie{}
	for _, m := range s.movies {
		if strings.Contains(strings.ToLower(m.Title), strings.ToLower(keyword)) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeMovieStore) Update(_ context.Context, id string, upd model.MovieUpdate) error {
	m, found := s.movies[id]
	if !found {
		return repository.ErrNotFound
	}
	if upd.Title != nil {
		m.Title = *upd.Title
	}
	if upd.Description != nil {
		m.Description = *upd.Description
	}
	if upd.ImgURL != nil {
		m.ImgURL = *upd.ImgURL
	}
	if upd.Cost != nil {
		m.Cost = *upd.Cost
	}
	if upd.YearRelease != nil {
		m.YearRelease = *upd.YearRelease
	}
	return nil
}

func (s *fakeMovieStore) DeleteCascade(_ context.Context, id string) error {
	if _, found := s.movies[id]; !found {
		return repository.ErrNotFound
	}
	delete(s.movies, id)
	for lid, link := range s.actors.links {
		if link.MovieID == id {
			delete(s.actors.links, lid)
		}
	}
	for rid, r := range s.reviews.reviews {
		if r.MovieID == id {
			delete(s.reviews.reviews, rid)
		}
	}
	return nil
}

type fakeActorDetailsStore struct {
	seq     int
	details map[string]*model.ActorDetails
	actors  *fakeActorStore
}

func newFakeActorDetailsStore(actors *fakeActorStore) *fakeActorDetailsStore {
	return &fakeActorDetailsStore{details: map[string]*model.ActorDetails{}, actors: actors}
}

func (s *fakeActorDetailsStore) Create(_ context.Context, a *model.ActorDetails) error {
	s.seq++
	a.ID = strconv.Itoa(s.seq)
	cp := *a
	s.details[a.ID] = &cp
	return nil
}

func (s *fakeActorDetailsStore) FindByID(_ context.Context, id string) (*model.ActorDetails, error) {
	a, found := s.details[id]
	if !found {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeActorDetailsStore) FindByName(_ context.Context, firstName, lastName string) (*model.ActorDetails, error) {
	for _, a := range s.details {
		if a.FirstName == firstName && a.LastName == lastName {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeActorDetailsStore) List(_ context.Context) ([]model.ActorDetails, error) {
	out := []model.ActorDetails{}
	for _, a := range s.details {
		out = append(out, *a)
	}
	return out, nil
}

func (s *fakeActorDetailsStore) SearchByName(_ context.Context, query string) ([]model.ActorDetails, error) {
	tokens := strings.Fields(strings.ToLower(query))
	seen := map[string]bool{}
	out := []model.ActorDetails{}
	for _, a := range s.details {
		for _, tok := range tokens {
			if strings.Contains(strings.ToLower(a.FirstName), tok) ||
				strings.Contains(strings.ToLower(a.LastName), tok) {
				key := strings.ToLower(a.FirstName) + "\x00" + strings.ToLower(a.LastName)
				if !seen[key] {
					seen[key] = true
					out = append(out, *a)
				}
				break
			}
		}
	}
	return out, nil
}

func (s *fakeActorDetailsStore) Update(_ context.Context, id string, upd model.ActorDetailsUpdate) error {
	a, found := s.details[id]
	if !found {
		return repository.ErrNotFound
	}
	if upd.FirstName != nil {
		a.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		a.LastName = *upd.LastName
	}
	if upd.Gender != nil {
		a.Gender = *upd.Gender
	}
	if upd.Age != nil {
		a.Age = *upd.Age
	}
	return nil
}

func (s *fakeActorDetailsStore) Delete(_ context.Context, id string) error {
	for _, link := range s.actors.links {
		if link.ActorDetailsID == id {
			return repository.ErrConflict
		}
	}
	if _, found := s.details[id]; !found {
		return repository.ErrNotFound
	}
	delete(s.details, id)
	return nil
}

// ----- request helpers -----

type testCaller struct {
	id          string
	email       string
	permissions []string
}

// invoke runs a handler against a synthetic request. params are alternating
// name/value pairs for route parameters; caller, when non-nil, simulates
// the context JWTAuth would have populated.
func invoke(h echo.HandlerFunc, method, body string, caller *testCaller, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) >= 2 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if caller != nil {
		c.Set("user_id", caller.id)
		c.Set("email", caller.email)
		c.Set("permissions", caller.permissions)
	}
	_ = h(c)
	return rec
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(rec *httptest.ResponseRecorder) testEnvelope {
	var env testEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return env
}
