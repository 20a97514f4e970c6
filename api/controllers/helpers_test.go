package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/beggy/beggy-backend/api/middleware"
	"github.com/beggy/beggy-backend/pkg/types"
)

// newRequest builds a request carrying userID (when non-nil) and chi URL params.
func newRequest(method, target string, body io.Reader, userID *uuid.UUID, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := req.Context()
	if userID != nil {
		ctx = middleware.WithUserID(ctx, userID.String())
	}
	routeCtx := chi.NewRouteContext()
	for k, v := range params {
		routeCtx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

type rawEnvelope struct {
	Data     json.RawMessage `json:"data"`
	Warnings []any           `json:"warnings"`
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder, dest any) rawEnvelope {
	t.Helper()
	var env rawEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if dest != nil {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body %s)", err, rec.Body.String())
	}
	return env.Error.Code
}
