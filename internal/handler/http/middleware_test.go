package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-fall/internal/apperr"
	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/trace"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var hexID = regexp.MustCompile(`^[0-9a-f]{16}$`)

// recordingRequestHandler captures the hook calls.
type recordingRequestHandler struct {
	mu         sync.Mutex
	preErr     error
	preCalls   int
	postStatus []int
}

func (h *recordingRequestHandler) PreRequest(*http.Request) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.preCalls++
	return h.preErr
}

func (h *recordingRequestHandler) PostResponse(_ *http.Request, status int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.postStatus = append(h.postStatus, status)
}

func TestWithTrace_FromHeaders(t *testing.T) {
	h := newTestHandler(t, nil)

	var got trace.OpenTrace
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = trace.FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(trace.HeaderTraceID, "463ac35c9f6413ad")
	req.Header.Set(trace.HeaderSpanID, "a2fb4a1d1a96d312")
	req.Header.Set(trace.HeaderParentSpanID, "0020000000000001")
	rec := httptest.NewRecorder()

	h.withTrace(next).ServeHTTP(rec, req)

	assert.Equal(t, trace.OpenTrace{TraceID: "463ac35c9f6413ad", SpanID: "a2fb4a1d1a96d312", ParentSpanID: "0020000000000001"}, got)
	assert.Equal(t, "463ac35c9f6413ad", rec.Header().Get(trace.HeaderTraceID))
	assert.Equal(t, "a2fb4a1d1a96d312", rec.Header().Get(trace.HeaderSpanID))
}

func TestWithTrace_NewRootWhenMissing(t *testing.T) {
	h := newTestHandler(t, nil)

	var got trace.OpenTrace
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = trace.FromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	h.withTrace(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Regexp(t, hexID, got.TraceID)
	assert.Equal(t, got.TraceID, got.SpanID)
	assert.Empty(t, got.ParentSpanID)
	assert.Equal(t, got.TraceID, rec.Header().Get(trace.HeaderTraceID))
}

func TestWithTrace_LoggerCarriesTraceFields(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(t, nil)
	h.logger = &logger.Logger{Logger: zerolog.New(&buf)}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(trace.HeaderTraceID, "00000000000000aa")
	h.withTrace(next).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "00000000000000aa", entry[logger.TraceIDField])
	assert.Equal(t, "00000000000000aa", entry[logger.SpanIDField])
	assert.Equal(t, "", entry[logger.ParentSpanIDField])
	assert.Equal(t, "inside", entry["message"])
}

func TestWithLogging_AccessLog(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(t, nil)
	h.logger = &logger.Logger{Logger: zerolog.New(&buf)}

	h.greeting.EXPECT().Hello(gomock.Any()).Return("Hello, world")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var access map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &access))

	assert.Equal(t, "/hello", access["uri"])
	assert.Equal(t, http.MethodGet, access["method"])
	assert.Equal(t, float64(http.StatusOK), access["status"])
	assert.Equal(t, float64(len("Hello, world")), access["size"])
	assert.Contains(t, access, "duration")
	assert.Contains(t, access, logger.TraceIDField)
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	assert.Equal(t, http.StatusOK, rw.Status())

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)
	n, err := rw.Write([]byte("abc"))
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, 3, rw.size)
	assert.Equal(t, http.StatusCreated, rw.Status())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Same(t, rec, rw.Unwrap())
}

func TestWithRequestHandler_PostResponseSeesStatus(t *testing.T) {
	h := newTestHandler(t, nil)
	rh := &recordingRequestHandler{}
	h.WithRequestHandler(rh)

	h.greeting.EXPECT().Hello(gomock.Any()).Return("Hello, world")

	router := h.Init()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/hello", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2, rh.preCalls)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, rh.postStatus)
}

func TestWithRequestHandler_RejectSkipsRoute(t *testing.T) {
	h := newTestHandler(t, nil)
	rh := &recordingRequestHandler{preErr: apperr.New(http.StatusForbidden, "forbidden here")}
	h.WithRequestHandler(rh)

	h.greeting.EXPECT().Hello(gomock.Any()).Times(0)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"forbidden here"`)
	assert.Equal(t, []int{http.StatusForbidden}, rh.postStatus)
}

func TestWithRequestHandler_PlainErrorIs500(t *testing.T) {
	h := newTestHandler(t, nil)
	h.WithRequestHandler(&recordingRequestHandler{preErr: errors.New("hook failed")})

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithRequestHandler_PanicRecovered(t *testing.T) {
	h := newTestHandler(t, nil)
	rh := &recordingRequestHandler{}
	h.WithRequestHandler(rh)

	h.greeting.EXPECT().Hello(gomock.Any()).DoAndReturn(func(any) string { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	req.Header.Set(trace.HeaderTraceID, "00000000000000ee")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"trace_id":"00000000000000ee","status":500,"message":"internal server error"}`, rec.Body.String())
	assert.Equal(t, []int{http.StatusInternalServerError}, rh.postStatus)
}

// panickingRequestHandler panics in PreRequest.
type panickingRequestHandler struct {
	recordingRequestHandler
}

func (h *panickingRequestHandler) PreRequest(*http.Request) error {
	panic("hook exploded")
}

func TestWithRequestHandler_PreRequestPanicRecovered(t *testing.T) {
	h := newTestHandler(t, nil)
	rh := &panickingRequestHandler{}
	h.WithRequestHandler(rh)

	h.greeting.EXPECT().Hello(gomock.Any()).Times(0)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body apperr.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, body.Status)
	assert.Equal(t, ErrPanicRecovered.Error(), body.Message)
	assert.Regexp(t, hexID, body.TraceID)
	assert.Equal(t, []int{http.StatusInternalServerError}, rh.postStatus)
}

func TestWithRecoverer_AbortHandlerPropagates(t *testing.T) {
	h := newTestHandler(t, nil)
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) })

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.withRecoverer(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestCompress_GzipWhenAccepted(t *testing.T) {
	h := newTestHandler(t, nil)
	h.greeting.EXPECT().Hello(gomock.Any()).Return("Hello, world")

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", string(plain))
}

func TestCompress_PlainWithoutAcceptEncoding(t *testing.T) {
	h := newTestHandler(t, nil)
	h.greeting.EXPECT().Hello(gomock.Any()).Return("Hello, world")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Hello, world", rec.Body.String())
}

func signToken(t *testing.T, key string, claims jwt.RegisteredClaims, method jwt.SigningMethod) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func TestJWTRequestHandler(t *testing.T) {
	const key = "sign-key"
	now := time.Now()

	valid := signToken(t, key, jwt.RegisteredClaims{
		Issuer:    "fall",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}, jwt.SigningMethodHS256)
	expired := signToken(t, key, jwt.RegisteredClaims{
		Issuer:    "fall",
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}, jwt.SigningMethodHS256)
	wrongIssuer := signToken(t, key, jwt.RegisteredClaims{Issuer: "other"}, jwt.SigningMethodHS256)
	wrongKey := signToken(t, "other-key", jwt.RegisteredClaims{Issuer: "fall"}, jwt.SigningMethodHS256)
	wrongMethod := signToken(t, key, jwt.RegisteredClaims{Issuer: "fall"}, jwt.SigningMethodHS512)

	tests := []struct {
		name    string
		path    string
		header  string
		wantErr string
	}{
		{name: "valid token", path: "/hello", header: "Bearer " + valid},
		{name: "management route skips auth", path: "/endpoints/health"},
		{name: "missing header", path: "/hello", wantErr: ErrEmptyAuthorizationHeader.Error()},
		{name: "not bearer", path: "/hello", header: "Basic abc", wantErr: "invalid `Authorization` header"},
		{name: "expired", path: "/hello", header: "Bearer " + expired, wantErr: ErrTokenIsExpired.Error()},
		{name: "wrong issuer", path: "/hello", header: "Bearer " + wrongIssuer, wantErr: ErrInvalidToken.Error()},
		{name: "wrong key", path: "/hello", header: "Bearer " + wrongKey, wantErr: ErrInvalidToken.Error()},
		{name: "wrong method", path: "/hello", header: "Bearer " + wrongMethod, wantErr: ErrInvalidToken.Error()},
		{name: "garbage", path: "/hello", header: "Bearer not.a.jwt", wantErr: ErrInvalidToken.Error()},
	}

	rh := NewJWTRequestHandler(key, "fall")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			err := rh.PreRequest(req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, apperr.StatusCode(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestJWTRequestHandler_NoIssuerConfigured(t *testing.T) {
	token := signToken(t, "k", jwt.RegisteredClaims{Issuer: "anyone"}, jwt.SigningMethodHS256)

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	assert.NoError(t, NewJWTRequestHandler("k", "").PreRequest(req))
}

func TestJWTRequestHandler_ThroughRouter(t *testing.T) {
	h := newTestHandler(t, &config.StructuredConfig{App: config.App{Name: "test", TokenSignKey: "k"}})
	h.greeting.EXPECT().Hello(gomock.Any()).Times(0)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrEmptyAuthorizationHeader.Error())
	assert.NotEmpty(t, rec.Header().Get(trace.HeaderTraceID))
}
