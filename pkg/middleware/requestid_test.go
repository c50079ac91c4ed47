package middleware

import (
	"testing"

	"github.com/fitpulse/fitpulse-api/pkg/common"
	"github.com/google/uuid"
)

func TestRequestIDAssignsAndEchoes(t *testing.T) {
	mw := RequestID()

	var seen string
	resp, err := mw(&common.Request{Method: "GET", Path: "/api/meals"}, func(req *common.Request) (*common.Response, error) {
		seen = req.Auth.RequestID
		return okContinuation(req)
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if seen == "" {
		t.Fatal("Expected a request id to be attached to the context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("Expected a valid uuid, got %q", seen)
	}
	if resp.Headers[RequestIDHeader] != seen {
		t.Errorf("Expected response header to echo %q, got %q", seen, resp.Headers[RequestIDHeader])
	}
}

func TestRequestIDReusesCallerSupplied(t *testing.T) {
	mw := RequestID()

	req := &common.Request{
		Method:  "GET",
		Path:    "/api/meals",
		Headers: map[string]string{"x-request-id": "caller-id"},
	}

	var seen string
	resp, err := mw(req, func(req *common.Request) (*common.Response, error) {
		seen = req.Auth.RequestID
		return okContinuation(req)
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if seen != "caller-id" {
		t.Errorf("Expected caller-supplied id to be reused, got %q", seen)
	}
	if resp.Headers[RequestIDHeader] != "caller-id" {
		t.Errorf("Expected response header %q, got %q", "caller-id", resp.Headers[RequestIDHeader])
	}
}

func TestRequestIDPreservesExistingContext(t *testing.T) {
	mw := RequestID()

	req := &common.Request{
		Method: "GET",
		Path:   "/api/meals",
		Auth:   &common.AuthContext{RequestID: "gateway-id", Custom: map[string]string{"stage": "prod"}},
	}

	var seen *common.AuthContext
	_, err := mw(req, func(req *common.Request) (*common.Response, error) {
		seen = req.Auth
		return okContinuation(req)
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if seen.Custom["stage"] != "prod" {
		t.Error("Expected existing context fields to be preserved")
	}
	if seen.RequestID != "gateway-id" {
		t.Errorf("Expected the gateway's request id to be reused, got %q", seen.RequestID)
	}
}
