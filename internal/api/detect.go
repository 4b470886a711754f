package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MikeSquared-Agency/breakdowns/internal/analysis"
	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
)

// DetectRequest is the payload of POST /api/v1/breakdowns/detect.
type DetectRequest struct {
	Dialogues  json.RawMessage `json:"dialogues"`            // DialogueKit dialogues
	Components []string        `json:"components,omitempty"` // all when empty
	N          *int            `json:"n,omitempty"`          // widest pattern
}

// DetectResponse is the answer to a detect request.
type DetectResponse struct {
	Dialogues int                 `json:"dialogues"`
	Summaries []breakdown.Summary `json:"summaries"`
}

// detectBreakdowns handles POST /api/v1/breakdowns/detect
func (s *Server) detectBreakdowns(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	kinds, err := breakdown.ParseKinds(req.Components)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Dialogues) == 0 {
		writeError(w, http.StatusBadRequest, "dialogues is required")
		return
	}
	transcripts, err := dialogue.Decode(req.Dialogues)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	detectors, err := breakdown.Build(kinds, breakdown.Options{Graph: s.graph, DeafThreshold: s.detect.DeafThreshold})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, breakdown.ErrMissingGraph) || errors.Is(err, breakdown.ErrUnknownDetector) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	n := s.detect.PatternSize
	if req.N != nil {
		n = *req.N
	}

	summaries, err := analysis.Analyze(r.Context(), detectors, transcripts, n, s.detect.Workers, s.logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("detect failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, DetectResponse{Dialogues: len(transcripts), Summaries: summaries})
}
