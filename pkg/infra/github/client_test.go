package github_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
	githubinfra "github.com/m-mizutani/gitdbfs/pkg/infra/github"
)

type contentEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	Path     string `json:"path"`
	SHA      string `json:"sha,omitempty"`
	Size     int    `json:"size,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

// newTestServer serves a tiny repository acme/models:
//
//	releases/v5/app.json
//	releases/v5/conf/a.yaml
//	releases/v5/big.bin      (content omitted, served as a blob)
//	releases/v5/link         (symlink, skipped)
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}

		switch r.URL.Path {
		case "/repos/acme/models/contents/releases/v5":
			if r.URL.Query().Get("ref") != "abc123" {
				writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "No commit found for the ref"})
				return
			}
			writeJSON(t, w, http.StatusOK, []contentEntry{
				{Type: "file", Name: "app.json", Path: "releases/v5/app.json"},
				{Type: "dir", Name: "conf", Path: "releases/v5/conf"},
				{Type: "file", Name: "big.bin", Path: "releases/v5/big.bin"},
				{Type: "symlink", Name: "link", Path: "releases/v5/link"},
			})
		case "/repos/acme/models/contents/releases/v5/conf":
			writeJSON(t, w, http.StatusOK, []contentEntry{
				{Type: "file", Name: "a.yaml", Path: "releases/v5/conf/a.yaml"},
			})
		case "/repos/acme/models/contents/releases/v5/app.json":
			writeJSON(t, w, http.StatusOK, contentEntry{
				Type:     "file",
				Name:     "app.json",
				Path:     "releases/v5/app.json",
				Encoding: "base64",
				Content:  base64.StdEncoding.EncodeToString([]byte(`{"version":5}`)),
			})
		case "/repos/acme/models/contents/releases/v5/big.bin":
			writeJSON(t, w, http.StatusOK, contentEntry{
				Type:     "file",
				Name:     "big.bin",
				Path:     "releases/v5/big.bin",
				SHA:      "deadbeef",
				Size:     2 << 20,
				Encoding: "none",
			})
		case "/repos/acme/models/git/blobs/deadbeef":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("large blob content"))
		case "/repos/acme/models/contents/releases/v9/flaky.json":
			writeJSON(t, w, http.StatusServiceUnavailable, map[string]string{"message": "unavailable"})
		case "/repos/acme/models/contents/releases/v9/broken.json":
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"message": "server error"})
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		}
	}))
}

func TestClient_ListFiles(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client, err := githubinfra.NewClient("acme/models", "test-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	t.Run("walks sub directories and skips non-files", func(t *testing.T) {
		files, err := client.ListFiles(t.Context(), "releases/v5", "abc123")
		gt.NoError(t, err)
		gt.V(t, files).Equal([]string{"app.json", "conf/a.yaml", "big.bin"})
	})

	t.Run("trailing slash is ignored", func(t *testing.T) {
		files, err := client.ListFiles(t.Context(), "/releases/v5/", "abc123")
		gt.NoError(t, err)
		gt.A(t, files).Length(3)
	})

	t.Run("missing folder is NotFound", func(t *testing.T) {
		files, err := client.ListFiles(t.Context(), "releases/v7", "abc123")
		gt.Error(t, err)
		gt.V(t, files).Nil()
		gt.V(t, types.KindOf(err)).Equal(types.KindNotFound)
	})

	t.Run("single file path yields its name", func(t *testing.T) {
		files, err := client.ListFiles(t.Context(), "releases/v5/app.json", "abc123")
		gt.NoError(t, err)
		gt.V(t, files).Equal([]string{"app.json"})
	})
}

func TestClient_FetchFile(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client, err := githubinfra.NewClient("acme/models", "test-token", githubinfra.WithBaseURL(server.URL+"/"))
	gt.NoError(t, err)

	t.Run("decodes base64 content", func(t *testing.T) {
		data, err := client.FetchFile(t.Context(), "releases/v5/app.json", "abc123")
		gt.NoError(t, err)
		gt.V(t, string(data)).Equal(`{"version":5}`)
	})

	t.Run("reads large files as blobs", func(t *testing.T) {
		data, err := client.FetchFile(t.Context(), "releases/v5/big.bin", "abc123")
		gt.NoError(t, err)
		gt.V(t, string(data)).Equal("large blob content")
	})

	t.Run("directory is NotFound", func(t *testing.T) {
		_, err := client.FetchFile(t.Context(), "releases/v5/conf", "abc123")
		gt.Error(t, err)
		gt.V(t, types.KindOf(err)).Equal(types.KindNotFound)
	})

	tests := []struct {
		name string
		path string
		want types.ErrorKind
	}{
		{name: "404 is NotFound", path: "releases/v5/missing.json", want: types.KindNotFound},
		{name: "503 is Transient", path: "releases/v9/flaky.json", want: types.KindTransient},
		{name: "500 is Upstream", path: "releases/v9/broken.json", want: types.KindUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := client.FetchFile(t.Context(), tt.path, "abc123")
			gt.Error(t, err)
			gt.V(t, data).Nil()
			gt.V(t, types.KindOf(err)).Equal(tt.want)
		})
	}
}

func TestClient_BadCredentials(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client, err := githubinfra.NewClient("acme/models", "wrong-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	_, err = client.FetchFile(t.Context(), "releases/v5/app.json", "abc123")
	gt.Error(t, err)
	gt.V(t, types.KindOf(err)).Equal(types.KindAuth)
}

func TestClient_UnreachableHost(t *testing.T) {
	server := newTestServer(t)
	serverURL := server.URL
	server.Close()

	client, err := githubinfra.NewClient("acme/models", "test-token", githubinfra.WithBaseURL(serverURL))
	gt.NoError(t, err)

	_, err = client.FetchFile(t.Context(), "releases/v5/app.json", "abc123")
	gt.Error(t, err)
	gt.V(t, types.KindOf(err)).Equal(types.KindTransient)
}

func TestNewClient_InvalidRepository(t *testing.T) {
	for _, repo := range []string{"", "acme", "acme/", "/models", "acme/models/extra"} {
		t.Run(repo, func(t *testing.T) {
			_, err := githubinfra.NewClient(repo, "token")
			gt.Error(t, err)
		})
	}
}

func TestNewAppClient(t *testing.T) {
	// This test requires GitHub App credentials from environment variables
	appID := os.Getenv("TEST_GITHUB_APP_ID")
	installationID := os.Getenv("TEST_GITHUB_INSTALLATION_ID")
	privateKey := os.Getenv("TEST_GITHUB_PRIVATE_KEY")

	if appID == "" || installationID == "" || privateKey == "" {
		t.Skip("Test GitHub App credentials not provided via environment variables")
	}

	appIDInt, err := strconv.ParseInt(appID, 10, 64)
	gt.NoError(t, err)

	installationIDInt, err := strconv.ParseInt(installationID, 10, 64)
	gt.NoError(t, err)

	client, err := githubinfra.NewAppClient("acme/models", appIDInt, installationIDInt, []byte(privateKey))
	gt.NoError(t, err)
	gt.Value(t, client).NotNil()
}
