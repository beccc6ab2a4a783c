package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iola1999/AssppWeb/internal/domain"
)

func TestAuthenticate_Success(t *testing.T) {
	var gotCreds Credentials
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotCreds); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(domain.Account{
			Email:            gotCreds.Email,
			Password:         gotCreds.Password,
			PasswordToken:    "tok-1",
			DeviceIdentifier: gotCreds.DeviceIdentifier,
			Cookies:          []domain.Cookie{{Name: "sid", Value: "abc"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	acct, err := c.Authenticate(context.Background(), Credentials{
		Email:            "a@b.com",
		Password:         "pw",
		Code:             "123456",
		DeviceIdentifier: "D1",
	})
	if err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}

	if gotCreds.Code != "123456" {
		t.Errorf("sent code = %q, want %q", gotCreds.Code, "123456")
	}
	if acct.PasswordToken != "tok-1" {
		t.Errorf("passwordToken = %q, want %q", acct.PasswordToken, "tok-1")
	}
	if len(acct.Cookies) != 1 || acct.Cookies[0].Name != "sid" {
		t.Errorf("cookies = %+v, want one sid cookie", acct.Cookies)
	}
	// The refreshed record is normalized before being handed back.
	if acct.AppleID != "a@b.com" {
		t.Errorf("appleId = %q, want email fallback", acct.AppleID)
	}
}

func TestAuthenticate_CodeRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(AuthError{
			Message:      "verification code sent to trusted devices",
			CodeRequired: true,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	if err == nil {
		t.Fatal("Authenticate() should fail with a code challenge")
	}
	if !CodeRequired(err) {
		t.Errorf("CodeRequired(%v) = false, want true", err)
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error type = %T, want *AuthError", err)
	}
	if authErr.Message != "verification code sent to trusted devices" {
		t.Errorf("message = %q", authErr.Message)
	}
}

func TestAuthenticate_HardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(AuthError{Message: "invalid password"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "bad"})
	if err == nil {
		t.Fatal("Authenticate() should fail")
	}
	if CodeRequired(err) {
		t.Error("CodeRequired() = true for a hard failure")
	}
	if err.Error() != "invalid password" {
		t.Errorf("error = %q, want %q", err.Error(), "invalid password")
	}
}

func TestAuthenticate_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	if err == nil {
		t.Fatal("Authenticate() should fail")
	}
	want := "authentication failed with status 502"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestAuthenticate_PodEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(domain.Account{Email: "a@b.com"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/auth", srv.URL+"/pod/%s/auth", 5*time.Second)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "pw", Pod: "p25"})
	if err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}
	if gotPath != "/pod/p25/auth" {
		t.Errorf("path = %q, want pod-specific endpoint", gotPath)
	}

	// Without a pod the default endpoint is used.
	_, err = c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}
	if gotPath != "/auth" {
		t.Errorf("path = %q, want /auth", gotPath)
	}
}

func TestCredentialsFor(t *testing.T) {
	a := &domain.Account{
		Email:            "a@b.com",
		Password:         "pw",
		DeviceIdentifier: "D1",
		Pod:              "p7",
		Cookies:          []domain.Cookie{{Name: "sid", Value: "v"}},
	}
	creds := CredentialsFor(a, "654321")
	if creds.Email != "a@b.com" || creds.Password != "pw" || creds.DeviceIdentifier != "D1" {
		t.Errorf("creds = %+v", creds)
	}
	if creds.Code != "654321" {
		t.Errorf("code = %q, want %q", creds.Code, "654321")
	}
	if creds.Pod != "p7" {
		t.Errorf("pod = %q, want %q", creds.Pod, "p7")
	}
	if len(creds.Cookies) != 1 {
		t.Errorf("cookies not carried over: %+v", creds.Cookies)
	}
}
