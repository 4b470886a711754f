package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

// maxDigestPatterns caps the patterns listed per detector in a thread reply.
const maxDigestPatterns = 5

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// PostRunDigest posts the per-detector breakdown counts of a run, then the top
// conversational patterns as a threaded reply. Returns the message timestamp.
func (p *Poster) PostRunDigest(ctx context.Context, runID string, dialogues int, summaries []breakdown.Summary) (string, error) {
	text := formatRunDigest(runID, dialogues, summaries)

	ts, err := p.post(ctx, map[string]any{
		"channel": p.channel,
		"text":    text,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": text,
				},
			},
			{
				"type": "context",
				"elements": []map[string]any{
					{
						"type": "mrkdwn",
						"text": "Run " + runID,
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	p.logger.Info("posted run digest to slack", "ts", ts, "run_id", runID)

	if patterns := formatTopPatterns(summaries); patterns != "" {
		if err := p.PostThread(ctx, ts, patterns); err != nil {
			return ts, fmt.Errorf("post patterns thread: %w", err)
		}
	}
	return ts, nil
}

// PostThread posts a threaded reply to a message.
func (p *Poster) PostThread(ctx context.Context, threadTS, text string) error {
	_, err := p.post(ctx, map[string]any{
		"channel":   p.channel,
		"thread_ts": threadTS,
		"text":      text,
	})
	return err
}

func (p *Poster) post(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}
	return slackResp.TS, nil
}

func formatRunDigest(runID string, dialogues int, summaries []breakdown.Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Breakdown run:* %s\n", runID)
	fmt.Fprintf(&sb, "*Dialogues analyzed:* %d\n\n", dialogues)

	if len(summaries) == 0 {
		sb.WriteString("_No breakdown detectors ran._")
		return sb.String()
	}

	for _, s := range summaries {
		fmt.Fprintf(&sb, "• *%s*: %d breakdowns across %d distinct sequences\n", s.Detector, s.Total(), len(s.Breakdowns))
	}
	return sb.String()
}

func formatTopPatterns(summaries []breakdown.Summary) string {
	var sb strings.Builder
	for _, s := range summaries {
		if len(s.Patterns) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "*Top patterns for %s*\n", s.Detector)
		for i, pat := range s.Patterns {
			if i == maxDigestPatterns {
				break
			}
			fmt.Fprintf(&sb, "%d. (%s) x%d\n", i+1, strings.Join(pat.Window, " | "), pat.Count)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
