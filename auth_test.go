package main

import (
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/robertojose17/MacroGoal-sub000/internal/store"
)

// authStore returns a goalStore with one user "sam" whose password is "hunter22".
func authStore(t *testing.T) *fakeStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	st := goalStore()
	st.users = map[string]store.User{
		"sam": {ID: 7, Username: "sam", Password: string(hash), AuthToken: "tok-sam"},
	}
	st.tokens = map[string]int{"tok-sam": 7}
	return st
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, authStore(t))

	cases := []struct {
		name string
		body string
		want int
	}{
		{"valid credentials", `{"username":"sam","password":"hunter22"}`, http.StatusOK},
		{"wrong password", `{"username":"sam","password":"hunter2"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"alex","password":"hunter22"}`, http.StatusUnauthorized},
		{"malformed body", `{"username":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := srv.do(http.MethodPost, "/api/login", tc.body, nil)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestLogin_ReturnsToken(t *testing.T) {
	srv := newTestServer(t, authStore(t))

	w := srv.do(http.MethodPost, "/api/login", `{"username":"sam","password":"hunter22"}`, nil)
	resp := decode[struct {
		Token  string `json:"token"`
		UserID int    `json:"user_id"`
	}](t, w.Body.Bytes())
	if resp.Token != "tok-sam" || resp.UserID != 7 {
		t.Errorf("unexpected login response: %+v", resp)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t, authStore(t))
	path := "/api/secure/progress/goal-profile?today=2026-01-10"

	cases := []struct {
		name   string
		header map[string]string
		want   int
	}{
		{"no header", nil, http.StatusUnauthorized},
		{"not bearer", map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized},
		{"unknown token", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"valid token", map[string]string{"Authorization": "Bearer tok-sam"}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := srv.do(http.MethodGet, path, "", tc.header)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}
