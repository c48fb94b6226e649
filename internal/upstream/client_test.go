package upstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hris-console/internal/shared/apperror"
	"go-hris-console/internal/shared/contextutil"
	"go-hris-console/internal/upstream"

	"github.com/stretchr/testify/assert"
)

type errRoundTripper struct{}

func (errRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("boom")
}

func TestNew(t *testing.T) {
	for _, bad := range []string{"", "   ", "ftp://backend", "http://", "http://%zz"} {
		_, err := upstream.New(bad, time.Second)
		assert.Error(t, err, bad)
	}

	c, err := upstream.New("http://backend:8000/", time.Second)
	assert.NoError(t, err)
	assert.Equal(t, "http://backend:8000", c.BaseURL())
}

func TestClient_GetJSON(t *testing.T) {
	var gotRequestID string
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/payroll/payroll-runs/", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-ID")
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1}})
	}))
	defer srv.Close()

	c, err := upstream.New(srv.URL, time.Second)
	assert.NoError(t, err)

	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	var out []map[string]any
	err = c.GetJSON(ctx, upstream.PayrollBasePath+"/payroll-runs/", map[string][]string{"limit": {"10"}}, &out)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "rid-1", gotRequestID)
	assert.Equal(t, "limit=10", gotQuery)
}

func TestClient_PutJSON_SendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"payment_status":"PAID"}`, string(b))
		_, _ = w.Write([]byte(`{"id":5}`))
	}))
	defer srv.Close()

	c, _ := upstream.New(srv.URL, time.Second)
	var out struct {
		ID int64 `json:"id"`
	}
	err := c.PutJSON(context.Background(), "/x", map[string]string{"payment_status": "PAID"}, &out)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
}

func TestClient_HTTPErrorIsFormatted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"ไม่พบรายการเงินเดือน"}`))
	}))
	defer srv.Close()

	c, _ := upstream.New(srv.URL, time.Second)
	err := c.Delete(context.Background(), "/api/v1/payroll/payroll-entries/9")

	var httpErr *upstream.HTTPError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "ไม่พบรายการเงินเดือน", httpErr.Error())

	mapped := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusNotFound, mapped.Status)
	assert.Equal(t, apperror.CodeUpstreamRejected, mapped.Code)
}

func TestClient_TransportError(t *testing.T) {
	c, _ := upstream.New("http://backend.invalid", time.Second)
	c = c.WithTransport(errRoundTripper{})

	err := c.GetJSON(context.Background(), "/x", nil, nil)

	var tErr *upstream.TransportError
	assert.True(t, errors.As(err, &tErr))
	mapped := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusBadGateway, mapped.Status)
	assert.Equal(t, apperror.CodeUpstreamUnavailable, mapped.Code)
}

func TestClient_EmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := upstream.New(srv.URL, time.Second)
	var out map[string]any
	err := c.PostJSON(context.Background(), "/calc", nil, &out)

	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	c, _ := upstream.New(srv.URL, time.Second)
	var out struct {
		ID int64 `json:"id"`
	}
	err := c.GetJSON(context.Background(), "/x", nil, &out)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upstream: decode GET /x")
	var tErr *upstream.TransportError
	assert.False(t, errors.As(err, &tErr))
}

func TestClient_StreamHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["query","month"],"msg":"invalid month"}]}`))
	}))
	defer srv.Close()

	c, _ := upstream.New(srv.URL, time.Second)
	body, _, err := c.Stream(context.Background(), "/report.csv", nil)

	assert.Nil(t, body)
	var httpErr *upstream.HTTPError
	if assert.True(t, errors.As(err, &httpErr)) {
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
		assert.Equal(t, "ข้อมูลไม่ถูกต้อง:\n(month) - invalid month", httpErr.Message)
	}
}

func TestClient_Stream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "month=2025-01", r.URL.RawQuery)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("employee_id,net_salary\n7,21200\n"))
	}))
	defer srv.Close()

	c, _ := upstream.New(srv.URL, time.Second)
	body, contentType, err := c.Stream(context.Background(), "/report.csv", map[string][]string{"month": {"2025-01"}})
	assert.NoError(t, err)
	defer body.Close()

	b, _ := io.ReadAll(body)
	assert.Equal(t, "text/csv", contentType)
	assert.True(t, strings.HasPrefix(string(b), "employee_id"))
}

func TestFormatErrorBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "string detail",
			body: `{"detail":"run not found"}`,
			want: "run not found",
		},
		{
			name: "validation list",
			body: `{"detail":[{"loc":["body","gross_salary"],"msg":"field required"},{"loc":["month"],"msg":"bad format"}]}`,
			want: "ข้อมูลไม่ถูกต้อง:\n(gross_salary) - field required\n(month) - bad format",
		},
		{
			name: "object detail",
			body: `{"detail":{"reason":"locked"}}`,
			want: `{"reason":"locked"}`,
		},
		{
			name: "plain text",
			body: "Internal Server Error",
			want: "HTTP 500: Internal Server Error",
		},
		{
			name: "empty body",
			body: "",
			want: "HTTP 500: Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upstream.FormatErrorBody(http.StatusInternalServerError, "", []byte(tt.body)))
		})
	}
}

func TestFormatErrorBody_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := upstream.FormatErrorBody(http.StatusBadGateway, "text/html", []byte(long))

	assert.True(t, strings.HasPrefix(got, "HTTP 502: "))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, got, len("HTTP 502: ")+200+3)
}
