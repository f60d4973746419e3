// Package oracle talks to the external match-score service.
package oracle

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const scorePath = "/match-score"

// ErrMalformed is returned when the service replies with a body that does not
// have the expected shape.
var ErrMalformed = errors.New("malformed match-score response")

//go:embed schema/batch_response.json
var batchSchemaJSON string

//go:embed schema/single_response.json
var singleSchemaJSON string

var (
	batchSchema  = mustSchema(batchSchemaJSON)
	singleSchema = mustSchema(singleSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("oracle: invalid embedded schema: %v", err))
	}
	return s
}

// Input is one (job, candidate) pair sent for scoring.
type Input struct {
	JobDescription  string   `json:"jobDescription"`
	JobSkills       []string `json:"jobSkills"`
	CandidateBio    string   `json:"candidateBio"`
	CandidateSkills []string `json:"candidateSkills"`
}

// Client calls the match-score service. Every call is bounded by the
// client timeout regardless of the caller's context.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		logger:  logger.OrNop(log),
	}
}

// ScoreBatch scores every input in one request. The result has one entry
// per input in the same order; a nil entry means the service returned no
// score for that position.
func (c *Client) ScoreBatch(ctx context.Context, inputs []Input) ([]*float64, error) {
	body, err := c.post(ctx, inputs)
	if err != nil {
		return nil, err
	}

	if err := validate(batchSchema, body); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(items) != len(inputs) {
		return nil, fmt.Errorf("%w: got %d scores for %d inputs", ErrMalformed, len(items), len(inputs))
	}

	scores := make([]*float64, len(items))
	for i, item := range items {
		s, err := decodeScore(item)
		if err != nil {
			return nil, fmt.Errorf("%w: position %d: %v", ErrMalformed, i, err)
		}
		scores[i] = s
	}

	c.logger.Debug("match-score batch scored", zap.Int("count", len(scores)))
	return scores, nil
}

// ScoreOne scores a single pair and returns the service's full reply,
// which carries a score breakdown next to the score itself.
func (c *Client) ScoreOne(ctx context.Context, in Input) (json.RawMessage, error) {
	body, err := c.post(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := validate(singleSchema, body); err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) post(ctx context.Context, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode match-score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+scorePath, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("match-score request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read match-score body: %w", err)
	}

	c.logger.Debug("match-score response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("match-score service returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// The body is not JSON at all.
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(msgs, "; "))
}

func decodeScore(raw json.RawMessage) (*float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var obj struct {
			Score *float64 `json:"score"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		return obj.Score, nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
