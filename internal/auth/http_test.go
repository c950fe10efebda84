package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc(loginPath, h).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	var got loginRequest
	var headers http.Header
	srv := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, map[string]any{
			"key":  "tok",
			"user": map[string]any{"pii": "u1", "patients": []string{"P1", "P2"}},
		})
	})

	c := NewHTTPClient(srv.URL+"/", time.Second, WithLanguage("en-US"))
	resp, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, []string{"P1", "P2"}, resp.User.Patients)
	require.Equal(t, "tok", resp.Key)
	require.Equal(t, loginRequest{Username: "a@b.com", Password: "x"}, got)
	require.Equal(t, "en-US", headers.Get("Accept-Language"))
	require.NotEmpty(t, headers.Get("X-Request-ID"))
}

func TestLoginFailureClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"credentials rejected", http.StatusBadRequest, `{"non_field_errors":["Unable to log in with provided credentials."]}`, KindUserNotFound},
		{"not found", http.StatusNotFound, `{}`, KindUserNotFound},
		{"field error", http.StatusBadRequest, `{"username":["This field is required."]}`, KindGeneric},
		{"empty non field errors", http.StatusBadRequest, `{"non_field_errors":[]}`, KindGeneric},
		{"unauthorized", http.StatusUnauthorized, `{}`, KindGeneric},
		{"server error", http.StatusInternalServerError, `oops`, KindGeneric},
		{"malformed success", http.StatusOK, `{"user":`, KindGeneric},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := NewHTTPClient(srv.URL, time.Second).Login(context.Background(), "a", "b")
			require.Error(t, err)
			require.Equal(t, tc.want, KindOf(err))

			var ae *Error
			require.True(t, errors.As(err, &ae))
			require.Equal(t, tc.status, ae.Status)
		})
	}
}

func TestLoginErrorTruncatesLargeBody(t *testing.T) {
	t.Parallel()
	srv := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 64<<10)))
	})

	_, err := NewHTTPClient(srv.URL, time.Second).Login(context.Background(), "a", "b")
	require.Error(t, err)
	require.Less(t, len(err.Error()), 300)
	require.Contains(t, err.Error(), "...")
}

func TestLoginMalformedWrapsSentinel(t *testing.T) {
	t.Parallel()
	srv := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	_, err := NewHTTPClient(srv.URL, time.Second).Login(context.Background(), "a", "b")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestLoginTransportFailureIsGeneric(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	_, err := NewHTTPClient(srv.URL, 50*time.Millisecond).Login(context.Background(), "a", "b")
	require.Error(t, err)
	require.Equal(t, KindGeneric, KindOf(err))
}

func TestLoginUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, time.Second).Login(context.Background(), "a", "b")
	require.Error(t, err)
	require.Equal(t, KindGeneric, KindOf(err))
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindGeneric, KindOf(errors.New("boom")))
	require.Equal(t, KindUserNotFound, KindOf(NotFound("op", 404)))
	require.Equal(t, KindUserNotFound, KindOf(ErrUserNotFound))
	require.ErrorIs(t, NotFound("op", 400), ErrUserNotFound)
	require.Equal(t, "user_not_found", KindUserNotFound.String())
	require.Equal(t, "generic", KindGeneric.String())
}
