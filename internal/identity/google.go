// Package identity resolves Google OAuth credentials to verified claims.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chronicle/internal/cache"
	"chronicle/internal/models"
	"chronicle/internal/observability"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Claims are the verified identity attributes attached to a request.
type Claims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

// Verifier resolves a bearer credential to verified claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

const providerTimeout = 5 * time.Second

// GoogleVerifier verifies Google credentials. ID tokens (three dot-separated
// segments) go through the tokeninfo endpoint with an audience check; opaque
// access tokens are resolved via the userinfo endpoint. Verified claims are
// cached in Redis keyed by a digest of the credential so hot clients do not
// hit the provider on every request.
type GoogleVerifier struct {
	httpClient   *http.Client
	tokenInfoURL string
	userInfoURL  string
	clientID     string
	rdb          *redis.Client
}

// NewGoogleVerifier returns a GoogleVerifier. rdb may be nil, in which case
// every verification goes to the provider.
func NewGoogleVerifier(tokenInfoURL, userInfoURL, clientID string, rdb *redis.Client) *GoogleVerifier {
	return &GoogleVerifier{
		httpClient:   &http.Client{Timeout: providerTimeout},
		tokenInfoURL: tokenInfoURL,
		userInfoURL:  userInfoURL,
		clientID:     clientID,
		rdb:          rdb,
	}
}

// tokenInfoResponse is the tokeninfo wire format. Google returns booleans
// and the expiry as strings here.
type tokenInfoResponse struct {
	Subject       string `json:"sub"`
	Audience      string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, models.NewUnauthenticatedError("Credential required")
	}

	digest := credentialDigest(token)
	if claims := v.cachedClaims(ctx, digest); claims != nil {
		observability.IdentityVerifications.WithLabelValues("hit").Inc()
		return claims, nil
	}

	var (
		claims *Claims
		err    error
	)
	if isIDToken(token) {
		claims, err = v.verifyIDToken(ctx, token)
	} else {
		claims, err = v.verifyAccessToken(ctx, token)
	}
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeUpstreamFailure {
			observability.IdentityVerifications.WithLabelValues("upstream_error").Inc()
		} else {
			observability.IdentityVerifications.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	observability.IdentityVerifications.WithLabelValues("verified").Inc()
	v.storeClaims(ctx, digest, token, claims)
	return claims, nil
}

// isIDToken reports whether the credential looks like a JWT rather than an
// opaque access token.
func isIDToken(token string) bool {
	return strings.Count(token, ".") == 2
}

func credentialDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (v *GoogleVerifier) cachedClaims(ctx context.Context, digest string) *Claims {
	if v.rdb == nil {
		return nil
	}
	s, err := v.rdb.Get(ctx, cache.ClaimsKey(digest)).Result()
	if err != nil {
		return nil
	}
	var claims Claims
	if err := json.Unmarshal([]byte(s), &claims); err != nil {
		return nil
	}
	return &claims
}

// storeClaims caches verified claims best-effort. The TTL never exceeds the
// token's own remaining validity, so a cached entry can not outlive the
// credential that produced it.
func (v *GoogleVerifier) storeClaims(ctx context.Context, digest, token string, claims *Claims) {
	if v.rdb == nil {
		return
	}
	ttl := cache.ClaimsMaxTTL
	if isIDToken(token) {
		if remaining, ok := tokenRemainingValidity(token); ok {
			if remaining <= 0 {
				return
			}
			if remaining < ttl {
				ttl = remaining
			}
		}
	}
	b, err := json.Marshal(claims)
	if err != nil {
		return
	}
	v.rdb.Set(ctx, cache.ClaimsKey(digest), b, ttl)
}

// tokenRemainingValidity reads the exp claim without verifying the
// signature. The token was already verified by the provider; this only
// bounds the cache TTL.
func tokenRemainingValidity(token string) (time.Duration, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return 0, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	return time.Until(exp.Time), true
}

func (v *GoogleVerifier) verifyIDToken(ctx context.Context, token string) (*Claims, error) {
	endpoint := v.tokenInfoURL + "?id_token=" + url.QueryEscape(token)
	body, status, err := v.get(ctx, endpoint, "")
	if err != nil {
		return nil, models.NewUpstreamError("Identity provider unreachable", err)
	}
	if status >= 500 {
		return nil, models.NewUpstreamError("Identity provider error", fmt.Errorf("tokeninfo returned %d", status))
	}
	if status != http.StatusOK {
		return nil, models.NewUnauthenticatedError("Invalid or expired credential")
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, models.NewUpstreamError("Malformed identity provider response", err)
	}
	if v.clientID != "" && info.Audience != v.clientID {
		return nil, models.NewUnauthenticatedError("Credential issued for a different application")
	}
	if info.Subject == "" {
		return nil, models.NewUnauthenticatedError("Credential carries no subject")
	}

	return &Claims{
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: info.EmailVerified == "true",
		Name:          info.Name,
		GivenName:     info.GivenName,
		Picture:       info.Picture,
	}, nil
}

func (v *GoogleVerifier) verifyAccessToken(ctx context.Context, token string) (*Claims, error) {
	body, status, err := v.get(ctx, v.userInfoURL, token)
	if err != nil {
		return nil, models.NewUpstreamError("Identity provider unreachable", err)
	}
	if status >= 500 {
		return nil, models.NewUpstreamError("Identity provider error", fmt.Errorf("userinfo returned %d", status))
	}
	if status != http.StatusOK {
		return nil, models.NewUnauthenticatedError("Invalid or expired credential")
	}

	var claims Claims
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, models.NewUpstreamError("Malformed identity provider response", err)
	}
	if claims.Subject == "" {
		return nil, models.NewUnauthenticatedError("Credential carries no subject")
	}
	return &claims, nil
}

func (v *GoogleVerifier) get(ctx context.Context, endpoint, bearer string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
