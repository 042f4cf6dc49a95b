package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/main.c"))
	assert.True(t, IsURL("http://localhost/main.c"))
	assert.False(t, IsURL("src/main.c"))
	assert.False(t, IsURL("ftp://example.com/main.c"))
}

func TestClient_Get(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/main.c":
			_, _ = w.Write([]byte("int main(void);\n"))
		case "/big.c":
			_, _ = w.Write([]byte(strings.Repeat("x", MaxSize+1)))
		default:
			http.Error(w, "no such file", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	t.Setenv("EPISTYLE_TOKEN", "secret")
	c := NewClient()

	body, err := c.Get(context.Background(), srv.URL+"/main.c")
	require.NoError(t, err)
	assert.Equal(t, "int main(void);\n", string(body))
	assert.Equal(t, "Bearer secret", gotAuth)

	_, err = c.Get(context.Background(), srv.URL+"/missing.c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404 - no such file")

	_, err = c.Get(context.Background(), srv.URL+"/big.c")
	assert.ErrorContains(t, err, "exceeds")
}

func TestClient_GetCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().Get(ctx, "http://127.0.0.1:1/main.c")
	assert.ErrorIs(t, err, context.Canceled)
}
