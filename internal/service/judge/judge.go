package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// Judge0-style language ids for the course languages.
var languageIDs = map[string]int{
	"c":      50,
	"cpp":    54,
	"java":   62,
	"python": 71,
	"go":     60,
}

// Client proxies code-execution requests to an external judge API. The judge
// itself is a third-party service; we only normalize its request/response.
type Client struct {
	BaseURL    string
	APIKey     string
	HttpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HttpClient: &http.Client{Timeout: timeout},
	}
}

type submissionRequest struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin,omitempty"`
}

type submissionResponse struct {
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	CompileOutput string  `json:"compile_output"`
	Time          string  `json:"time"`
	Memory        float64 `json:"memory"`
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// Execute submits code and waits for the verdict. wait=true keeps it a single
// round trip; the surrounding client timeout bounds the whole call.
func (c *Client) Execute(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	langID, ok := languageIDs[req.Language]
	if !ok {
		return nil, xerrors.ErrUnsupportedLanguage
	}

	payload, err := json.Marshal(submissionRequest{
		LanguageID: langID,
		SourceCode: req.Code,
		Stdin:      req.Stdin,
	})
	if err != nil {
		return nil, err
	}

	url := c.BaseURL + "/submissions?base64_encoded=false&wait=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("X-RapidAPI-Key", c.APIKey)
	}

	resp, err := c.HttpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrJudgeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: judge returned %d: %s", xerrors.ErrJudgeUnavailable, resp.StatusCode, string(body))
	}

	var out submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: bad judge response: %v", xerrors.ErrJudgeUnavailable, err)
	}

	return &domain.ExecutionResult{
		Stdout:        out.Stdout,
		Stderr:        out.Stderr,
		CompileOutput: out.CompileOutput,
		Status:        out.Status.Description,
		Time:          out.Time,
		Memory:        out.Memory,
	}, nil
}

// Languages lists the identifiers the proxy accepts.
func Languages() []string {
	out := make([]string, 0, len(languageIDs))
	for k := range languageIDs {
		out = append(out, k)
	}
	return out
}
