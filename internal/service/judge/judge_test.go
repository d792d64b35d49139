package judge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/submissions", r.URL.Path)
		require.Equal(t, "false", r.URL.Query().Get("base64_encoded"))
		require.Equal(t, "true", r.URL.Query().Get("wait"))
		require.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))

		var req submissionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 71, req.LanguageID)
		assert.Equal(t, "print(1+1)", req.SourceCode)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"stdout": "2\n",
			"time":   "0.01",
			"memory": 3456.0,
			"status": map[string]interface{}{"id": 3, "description": "Accepted"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	res, err := c.Execute(context.Background(), &domain.ExecutionRequest{Language: "python", Code: "print(1+1)"})
	require.NoError(t, err)
	assert.Equal(t, "2\n", res.Stdout)
	assert.Equal(t, "Accepted", res.Status)
	assert.Equal(t, 3456.0, res.Memory)
}

func TestExecuteCompileError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"compile_output": "main.c:1: error: expected ';'",
			"status":         map[string]interface{}{"id": 6, "description": "Compilation Error"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	res, err := c.Execute(context.Background(), &domain.ExecutionRequest{Language: "c", Code: "int main() { return 0 }"})
	require.NoError(t, err)
	assert.Equal(t, "Compilation Error", res.Status)
	assert.Contains(t, res.CompileOutput, "expected ';'")
}

func TestExecuteUnsupportedLanguage(t *testing.T) {
	c := NewClient("http://judge.invalid", "", time.Second)
	_, err := c.Execute(context.Background(), &domain.ExecutionRequest{Language: "brainfuck", Code: "+"})
	assert.ErrorIs(t, err, xerrors.ErrUnsupportedLanguage)
}

func TestExecuteJudgeDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Execute(context.Background(), &domain.ExecutionRequest{Language: "go", Code: "package main"})
	assert.ErrorIs(t, err, xerrors.ErrJudgeUnavailable)
}

func TestExecuteUnreachableHost(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", 500*time.Millisecond)
	_, err := c.Execute(context.Background(), &domain.ExecutionRequest{Language: "go", Code: "package main"})
	assert.ErrorIs(t, err, xerrors.ErrJudgeUnavailable)
}

func TestLanguagesCoversCourseSet(t *testing.T) {
	langs := Languages()
	assert.ElementsMatch(t, []string{"c", "cpp", "java", "python", "go"}, langs)
}
