package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"trade_desk/internal/models"
	"trade_desk/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
)

func TestListInstances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/user/instances" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"i-1","indexName":"NIFTY","expiry":"27-Jun","ltpRange":150.5,
			"tradeDetails":[{"id":"d-1","instanceId":"i-1","qty":50,"currentQty":25,"entrySide":"SELL","entryType":"CE","entryPrice":101.5,"mtm":-20}]}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", StaticToken("secret"))
	got, err := c.ListInstances(context.Background())
	if err != nil {
		t.Fatalf("ListInstances: %v", err)
	}

	want := models.Instance{
		ID: "i-1", IndexName: models.IndexNifty, Expiry: "27-Jun", LtpRange: 150.5,
		TradeDetails: []models.TradeDetail{{
			ID: "d-1", InstanceID: "i-1", Qty: 50, CurrentQty: 25, EntrySide: "SELL", EntryType: "CE", EntryPrice: 101.5, MTM: -20,
		}},
	}
	if len(got) != 1 {
		t.Fatalf("got %d instances", len(got))
	}
	if got[0].ID != want.ID || got[0].IndexName != want.IndexName || got[0].LtpRange != want.LtpRange {
		t.Errorf("instance = %+v", got[0])
	}
	if len(got[0].TradeDetails) != 1 || got[0].TradeDetails[0] != want.TradeDetails[0] {
		t.Errorf("trade details = %+v", got[0].TradeDetails)
	}
}

func TestListInstancesEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL, StaticToken("t")).ListInstances(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty slice", got)
	}
}

func TestDeleteInstance(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := NewClient(server.URL, StaticToken("t")).DeleteInstance(context.Background(), "a/b"); err != nil {
		t.Fatalf("DeleteInstance: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %s", gotMethod)
	}
	if gotPath != "/user/instances/a%2Fb" {
		t.Errorf("path = %s", gotPath)
	}
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"nope"}`, http.StatusForbidden)
	}))
	defer server.Close()

	err := NewClient(server.URL, StaticToken("t")).DeleteInstance(context.Background(), "i-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Message != "Forbidden" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if apiErr.Error() != "backend error 403: Forbidden" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestMissingToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, StaticToken("")).ListInstances(context.Background()); err == nil {
		t.Fatal("expected error without token")
	}
	if called {
		t.Error("request sent without a token")
	}
}

func TestSpans(t *testing.T) {
	tracer := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(prev)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_ = NewClient(server.URL, StaticToken("t")).DeleteInstance(context.Background(), "i-9")

	spans := tracer.FinishedSpans()
	if len(spans) != 1 {
		t.Fatalf("finished spans = %d, want 1", len(spans))
	}
	s := spans[0]
	if s.OperationName != "backend.DeleteInstance" {
		t.Errorf("operation = %s", s.OperationName)
	}
	if s.Tag("instance_id") != "i-9" {
		t.Errorf("instance_id tag = %v", s.Tag("instance_id"))
	}
	if s.Tag("error") != true {
		t.Errorf("error tag = %v", s.Tag("error"))
	}
	if s.Tag("http.method") != http.MethodDelete || s.Tag("http.status_code") != uint16(500) {
		t.Errorf("http tags = %v", s.Tags())
	}
}

func TestSpansUseConfiguredPrefix(t *testing.T) {
	tracer := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(prev)

	old := tracing.SetSpanPrefix("desk")
	defer tracing.SetSpanPrefix(old)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, StaticToken("t")).ListInstances(context.Background()); err != nil {
		t.Fatal(err)
	}
	spans := tracer.FinishedSpans()
	if len(spans) != 1 || spans[0].OperationName != "desk.backend.ListInstances" {
		t.Fatalf("spans = %+v", spans)
	}
	if spans[0].Tag("error") != nil {
		t.Errorf("successful call tagged as error")
	}
}
