package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-fall/internal/apperr"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// RequestHandler hooks into every request.
//
// PreRequest runs before the route. A non-nil error is written as the
// response through [apperr.Write] and the route is skipped. PostResponse
// runs after the response has been written, with its final status, whether
// or not the route ran. A panic is reported to PostResponse as 500.
type RequestHandler interface {
	PreRequest(r *http.Request) error
	PostResponse(r *http.Request, status int)
}

// DefaultRequestHandler accepts every request.
type DefaultRequestHandler struct{}

func (DefaultRequestHandler) PreRequest(*http.Request) error { return nil }

func (DefaultRequestHandler) PostResponse(*http.Request, int) {}

func (h *Handler) withRequestHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}

		defer func() {
			if rvr := recover(); rvr != nil {
				h.requestHandler.PostResponse(r, http.StatusInternalServerError)
				panic(rvr)
			}
			h.requestHandler.PostResponse(r, rw.Status())
		}()

		if err := h.requestHandler.PreRequest(r); err != nil {
			logger.FromRequest(r).Err(err).Str("uri", r.RequestURI).Msg("request rejected")
			apperr.Write(rw, r, err)
			return
		}

		next.ServeHTTP(rw, r)
	})
}

// JWTRequestHandler requires a bearer token signed with HS256 on every route
// outside /endpoints/.
type JWTRequestHandler struct {
	DefaultRequestHandler

	signKey []byte
	parser  *jwt.Parser
}

// NewJWTRequestHandler verifies tokens against signKey. A non-empty issuer
// must match the "iss" claim.
func NewJWTRequestHandler(signKey, issuer string) *JWTRequestHandler {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &JWTRequestHandler{
		signKey: []byte(signKey),
		parser:  jwt.NewParser(opts...),
	}
}

func (j *JWTRequestHandler) PreRequest(r *http.Request) error {
	if strings.HasPrefix(r.URL.Path, endpointsPrefix) {
		return nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return apperr.Unauthorized(ErrEmptyAuthorizationHeader.Error())
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return apperr.Unauthorized(err.Error())
	}

	_, err = j.parser.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return j.signKey, nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperr.Unauthorized(ErrTokenIsExpired.Error())
	default:
		return apperr.Unauthorized(ErrInvalidToken.Error())
	}
}
