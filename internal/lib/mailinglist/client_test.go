package mailinglist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubscribe(t *testing.T) {
	var got importRequest
	var user, pass string
	var path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		user, pass, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"created"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/v3/", "user@mediconect.sk", "api-key", 7, srv.Client())
	if err := c.Subscribe(context.Background(), " jan@example.com "); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if path != "/api/v3/import" {
		t.Errorf("path = %q", path)
	}
	if user != "user@mediconect.sk" || pass != "api-key" {
		t.Errorf("basic auth = %q:%q", user, pass)
	}
	if got.Settings != defaultSettings {
		t.Errorf("settings = %+v", got.Settings)
	}
	if len(got.Data) != 1 || got.Data[0].EmailAddress != "jan@example.com" {
		t.Fatalf("data = %+v", got.Data)
	}
	lists := got.Data[0].ContactLists
	if len(lists) != 1 || lists[0].ID != 7 || lists[0].Status != "confirmed" {
		t.Errorf("contactlists = %+v", lists)
	}
}

func TestSubscribeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":"error","message":"Invalid list"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "u", "k", 1, srv.Client()).Subscribe(context.Background(), "jan@example.com")

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
	}
	if upErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d", upErr.StatusCode)
	}
	if upErr.Body != `{"status":"error","message":"Invalid list"}` {
		t.Errorf("Body = %q", upErr.Body)
	}
}

func TestSubscribeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := NewClient(srv.URL, "u", "k", 1, nil).Subscribe(context.Background(), "jan@example.com")
	if err == nil {
		t.Fatal("expected error")
	}
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		t.Error("transport failure should not be an UpstreamError")
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/check-credentials" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if _, pass, _ := r.BasicAuth(); pass != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "u", "good", 1, srv.Client()).Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := NewClient(srv.URL, "u", "bad", 1, srv.Client()).Ping(context.Background()); err == nil {
		t.Error("Ping() with bad key should fail")
	}
}
