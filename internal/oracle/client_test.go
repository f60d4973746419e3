package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, status int, reply string, seen *[]Input) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/match-score" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScoreBatchKeepsPositions(t *testing.T) {
	var seen []Input
	srv := newTestServer(t, http.StatusOK, `[{"score":0.9},{"score":null},{},0.25]`, &seen)
	c := NewClient(srv.URL+"/", time.Second, nil)

	inputs := []Input{
		{JobDescription: "a", JobSkills: []string{"Go"}, CandidateBio: "bio", CandidateSkills: []string{"Go"}},
		{JobDescription: "b", JobSkills: []string{}, CandidateBio: "bio", CandidateSkills: []string{"Go"}},
		{JobDescription: "c", JobSkills: []string{}, CandidateBio: "bio", CandidateSkills: []string{"Go"}},
		{JobDescription: "d", JobSkills: []string{}, CandidateBio: "bio", CandidateSkills: []string{"Go"}},
	}

	scores, err := c.ScoreBatch(context.Background(), inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 4 || seen[0].JobDescription != "a" || seen[3].JobDescription != "d" {
		t.Fatalf("request batch not sent in order: %+v", seen)
	}
	if len(scores) != 4 {
		t.Fatalf("expected 4 scores, got %d", len(scores))
	}
	if scores[0] == nil || *scores[0] != 0.9 {
		t.Fatalf("unexpected score[0]: %v", scores[0])
	}
	if scores[1] != nil || scores[2] != nil {
		t.Fatalf("expected missing scores at 1 and 2, got %v %v", scores[1], scores[2])
	}
	if scores[3] == nil || *scores[3] != 0.25 {
		t.Fatalf("unexpected score[3]: %v", scores[3])
	}
}

func TestScoreBatchMalformed(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "object instead of array", reply: `{"score":0.5}`},
		{name: "not json", reply: `<html>oops</html>`},
		{name: "length mismatch", reply: `[{"score":0.5}]`},
		{name: "string score", reply: `[{"score":"high"},{"score":0.1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, tt.reply, nil)
			c := NewClient(srv.URL, time.Second, nil)

			_, err := c.ScoreBatch(context.Background(), []Input{{JobDescription: "a"}, {JobDescription: "b"}})
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestScoreBatchBadStatus(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `{"msg":"boom"}`, nil)
	c := NewClient(srv.URL, time.Second, nil)

	_, err := c.ScoreBatch(context.Background(), []Input{{JobDescription: "a"}})
	if err == nil {
		t.Fatal("expected error for non-200 reply")
	}
	if errors.Is(err, ErrMalformed) {
		t.Fatalf("status failure should not be reported as malformed: %v", err)
	}
}

func TestScoreBatchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond, nil)
	if _, err := c.ScoreBatch(context.Background(), []Input{{JobDescription: "a"}}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestScoreOne(t *testing.T) {
	var got Input
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"score":0.7,"breakdown":{"skills":0.8}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	raw, err := c.ScoreOne(context.Background(), Input{JobDescription: "Go dev", CandidateBio: "gopher"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.JobDescription != "Go dev" || got.CandidateBio != "gopher" {
		t.Fatalf("unexpected request payload: %+v", got)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("reply is not json: %v", err)
	}
	if body["score"] != 0.7 {
		t.Fatalf("unexpected score %v", body["score"])
	}
	if _, ok := body["breakdown"]; !ok {
		t.Fatal("expected breakdown to be passed through")
	}
}

func TestScoreOneMissingScore(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"result":"ok"}`, nil)
	c := NewClient(srv.URL, time.Second, nil)

	if _, err := c.ScoreOne(context.Background(), Input{JobDescription: "x"}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
