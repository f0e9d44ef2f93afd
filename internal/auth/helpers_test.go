package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/homegrid/community-service/internal/config"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

const testSecret = "test-secret"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:               testSecret,
		AccessTokenTTLMinutes:   15,
		HeaderName:              "Authorization",
		TokenPrefix:             "Bearer",
		TokenResponseHeader:     "Authorization",
		PrincipalResponseHeader: "X-User-Id",
		PublicPaths:             []string{"/health/*", "/auth/login"},
	}
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apperrors.FiberErrorHandler})
}

func mustToken(t *testing.T, codec *TokenCodec, subject string) string {
	t.Helper()
	token, err := codec.Encode(subject, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return token
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeError(t *testing.T, data []byte) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

// principalEcho reports the principal seen by the handler and counts calls.
type principalEcho struct {
	calls atomic.Int32
}

func (p *principalEcho) handle(c *fiber.Ctx) error {
	p.calls.Add(1)
	fromLocals, _ := CurrentPrincipal(c)
	fromCtx, _ := PrincipalFromContext(c.UserContext())
	return c.JSON(fiber.Map{"principal": fromLocals, "ctx_principal": fromCtx})
}

type fakeAdminLister struct {
	mu     sync.Mutex
	admins map[string][]string
	err    error
	calls  int
}

func (f *fakeAdminLister) ListAdminPrincipalIDs(_ context.Context, communityID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.admins[communityID]...), nil
}

func (f *fakeAdminLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
