// Package testutil provides an in-memory stand-in for the remote user API so
// the client, services and screens can be tested end to end over real HTTP.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/common"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

// Route names, usable with Calls and FailNext.
const (
	RouteLogin  = "login"
	RouteSignup = "signup"
	RouteSearch = "search"
	RouteCreate = "create"
	RouteUpdate = "update"
	RouteDelete = "delete"
)

type record struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	password  string
}

type failure struct {
	status  int
	payload any
}

// FakeAPI mimics the user API: JWT bearer tokens for create/update, basic
// credentials for search/delete, JSON error payloads with "error" or
// "message" keys.
type FakeAPI struct {
	*httptest.Server

	Secret []byte

	mu       sync.Mutex
	nextID   int
	users    map[int]*record
	calls    map[string]int
	failures map[string]failure
	lastAuth map[string]string
	lastBody map[string]map[string]any
}

// NewFakeAPI starts the fake and registers its shutdown with t.Cleanup.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	secret, err := common.MakeRandHexString(32)
	if err != nil {
		t.Fatalf("fake api secret: %v", err)
	}
	f := &FakeAPI{
		Secret:   []byte(secret),
		nextID:   1,
		users:    make(map[int]*record),
		calls:    make(map[string]int),
		failures: make(map[string]failure),
		lastAuth: make(map[string]string),
		lastBody: make(map[string]map[string]any),
	}

	r := mux.NewRouter()
	r.Use(f.count)
	r.HandleFunc("/auth/login", f.login).Methods(http.MethodPost).Name(RouteLogin)
	r.HandleFunc("/auth/signup", f.signup).Methods(http.MethodPost).Name(RouteSignup)
	r.HandleFunc("/users/search", f.requireBasic(f.search)).Methods(http.MethodPost).Name(RouteSearch)
	r.HandleFunc("/users", f.requireBearer(f.create)).Methods(http.MethodPost).Name(RouteCreate)
	r.HandleFunc("/users/{id}", f.requireBearer(f.update)).Methods(http.MethodPut).Name(RouteUpdate)
	r.HandleFunc("/users/{id}", f.requireBasic(f.remove)).Methods(http.MethodDelete).Name(RouteDelete)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// AddAccount registers a login-capable account without profile data, the way
// signup does. It returns the account id.
func (f *FakeAPI) AddAccount(username, password string) int {
	return f.AddUser(username, "", "", "", password)
}

// AddUser stores a full record and returns its id.
func (f *FakeAPI) AddUser(username, first, last, email, password string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(&record{Username: username, FirstName: first, LastName: last, Email: email, password: password})
}

// User returns a copy of the stored record.
func (f *FakeAPI) User(id int) (record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return record{}, false
	}
	return *u, true
}

// Calls reports how many requests reached the named route.
func (f *FakeAPI) Calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// LastAuthorization returns the Authorization header of the last request to route.
func (f *FakeAPI) LastAuthorization(route string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth[route]
}

// LastBody returns the decoded JSON body of the last request to route.
func (f *FakeAPI) LastBody(route string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody[route]
}

// FailNext makes the next request to route answer with status and payload.
func (f *FakeAPI) FailNext(route string, status int, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = failure{status: status, payload: payload}
}

// Token issues a bearer token for the given account id.
func (f *FakeAPI) Token(id int, username string) string {
	claims := jwt.MapClaims{
		"sub":      strconv.Itoa(id),
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.Secret)
	if err != nil {
		panic(err)
	}
	return s
}

func (f *FakeAPI) insert(r *record) int {
	r.ID = f.nextID
	f.nextID++
	f.users[r.ID] = r
	return r.ID
}

func (f *FakeAPI) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}

		f.mu.Lock()
		f.calls[name]++
		f.lastAuth[name] = r.Header.Get("Authorization")
		f.lastBody[name] = body
		fail, failing := f.failures[name]
		delete(f.failures, name)
		f.mu.Unlock()

		if failing {
			writeJSON(w, fail.status, fail.payload)
			return
		}
		next.ServeHTTP(w, r.WithContext(withBody(r.Context(), body)))
	})
}

func (f *FakeAPI) requireBasic(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || !f.checkPassword(username, password) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		next(w, r)
	}
}

func (f *FakeAPI) requireBearer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Missing token"})
			return
		}
		_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) { return f.Secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		next(w, r)
	}
}

func (f *FakeAPI) checkPassword(username, password string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byUsername(username)
	return u != nil && u.password == password
}

func (f *FakeAPI) byUsername(username string) *record {
	for _, u := range f.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	username, password := str(body, "username"), str(body, "password")

	f.mu.Lock()
	u := f.byUsername(username)
	f.mu.Unlock()

	if u == nil || u.password != password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": f.Token(u.ID, u.Username), "userId": u.ID})
}

func (f *FakeAPI) signup(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	username, password := str(body, "username"), str(body, "password")
	if username == "" || password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byUsername(username) != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Username already exists"})
		return
	}
	f.insert(&record{Username: username, password: password})
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (f *FakeAPI) search(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]record, 0, len(f.users))
	for _, u := range f.users {
		if matches(u, body) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func matches(u *record, query map[string]any) bool {
	for field, v := range query {
		want := strings.ToLower(str(query, field))
		if _, isNum := v.(float64); isNum {
			want = strconv.FormatFloat(v.(float64), 'f', -1, 64)
		}
		var have string
		switch field {
		case "id":
			if strconv.Itoa(u.ID) != want {
				return false
			}
			continue
		case "username":
			have = u.Username
		case "firstName":
			have = u.FirstName
		case "lastName":
			have = u.LastName
		case "email":
			have = u.Email
		default:
			return false
		}
		if !strings.Contains(strings.ToLower(have), want) {
			return false
		}
	}
	return true
}

func (f *FakeAPI) create(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byUsername(str(body, "username")) != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already taken"})
		return
	}
	id := f.insert(&record{
		Username:  str(body, "username"),
		FirstName: str(body, "firstName"),
		LastName:  str(body, "lastName"),
		Email:     str(body, "email"),
		password:  str(body, "password"),
	})
	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

func (f *FakeAPI) update(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}
	if name, ok := body["username"]; ok {
		if other := f.byUsername(name.(string)); other != nil && other.ID != id {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Username already taken"})
			return
		}
		u.Username = name.(string)
	}
	u.FirstName, u.LastName, u.Email = str(body, "firstName"), str(body, "lastName"), str(body, "email")
	writeJSON(w, http.StatusOK, u)
}

func (f *FakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}
	delete(f.users, id)
	w.WriteHeader(http.StatusNoContent)
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
