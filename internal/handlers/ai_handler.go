package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/oracle"
	"github.com/justsurfingit/jobmarket/internal/resume"
	"go.uber.org/zap"
)

const maxResumeBytes = 5 << 20

type SkillExtractor interface {
	ExtractSkills(ctx context.Context, resumeText string) (string, error)
}

type SingleScorer interface {
	ScoreOne(ctx context.Context, in oracle.Input) (json.RawMessage, error)
}

type AIHandler struct {
	Skills SkillExtractor
	Scorer SingleScorer
	log    *zap.Logger
}

func NewAIHandler(skills SkillExtractor, scorer SingleScorer, log *zap.Logger) *AIHandler {
	return &AIHandler{Skills: skills, Scorer: scorer, log: logger.OrNop(log)}
}

// ExtractSkills is POST /ai/extract-skills with a PDF, DOCX or plain-text
// "resume" file.
func (h *AIHandler) ExtractSkills(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if resume.Detect(file.Filename, contentType) == resume.Unknown {
		badRequest(c, "Unsupported file format")
		return
	}
	if file.Size > maxResumeBytes {
		badRequest(c, "Resume file too large")
		return
	}

	f, err := file.Open()
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxResumeBytes))
	if err != nil {
		badRequest(c, "Could not read resume")
		return
	}
	text, err := resume.Extract(c.Request.Context(), file.Filename, contentType, bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		if errors.Is(err, resume.ErrUnsupported) {
			badRequest(c, "Unsupported file format")
			return
		}
		h.log.Warn("resume parse failed", zap.String("file", file.Filename), zap.Error(err))
		badRequest(c, "Could not read resume")
		return
	}

	skills, err := h.Skills.ExtractSkills(c.Request.Context(), text)
	if err != nil {
		respondError(c, h.log, err, "Server error while extracting skills")
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// MatchScore is POST /ai/match-score. It forwards one pair to the match
// service and returns its reply unchanged.
func (h *AIHandler) MatchScore(c *gin.Context) {
	var req dtos.MatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing input")
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" ||
		(strings.TrimSpace(req.CandidateBio) == "" && len(req.CandidateSkills) == 0) {
		badRequest(c, "Missing input")
		return
	}

	body, err := h.Scorer.ScoreOne(c.Request.Context(), oracle.Input{
		JobDescription:  req.JobDescription,
		JobSkills:       req.JobSkills.OrEmpty(),
		CandidateBio:    req.CandidateBio,
		CandidateSkills: req.CandidateSkills.OrEmpty(),
	})
	if err != nil {
		h.log.Warn("match score request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"msg": "Failed to get match score from ML service"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
