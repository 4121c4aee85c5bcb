// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetOK(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer srv.Close()

	if err := getOK(srv.Client(), srv.URL); err != nil {
		t.Fatalf("getOK: %v", err)
	}
	if gotMethod != http.MethodGet {
		t.Errorf("method = %s, want GET", gotMethod)
	}
}

func TestGetOKNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if err := getOK(srv.Client(), srv.URL); err == nil {
		t.Fatal("want error for HTTP 503")
	}
}

func TestGetOKConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	srv.Close()

	if err := getOK(client, srv.URL); err == nil {
		t.Fatal("want error for closed server")
	}
}
