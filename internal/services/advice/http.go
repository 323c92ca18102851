package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
)

// maxResponseBytes caps how much of a collaborator response is read
const maxResponseBytes = 64 << 10

// AdviceRequest is the JSON body sent to a remote advisor
type AdviceRequest struct {
	Board     []string `json:"board"`
	Score     int      `json:"score"`
	NextPiece string   `json:"next_piece"`
	Height    int      `json:"height"`
	Holes     int      `json:"holes"`
	Prompt    string   `json:"prompt"`
}

// AdviceResponse is the JSON body expected back
type AdviceResponse struct {
	Message   string `json:"message"`
	Sentiment string `json:"sentiment"`
}

// HTTPAdvisor asks a remote service for commentary
type HTTPAdvisor struct {
	url    string
	client *http.Client
}

// NewHTTPAdvisor creates an advisor posting to url. A nil client uses a
// client with a 10s timeout.
func NewHTTPAdvisor(url string, client *http.Client) *HTTPAdvisor {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPAdvisor{url: url, client: client}
}

// Advise posts the snapshot and parses the reply. Transport failures, non-2xx
// statuses, malformed bodies, empty messages and unknown sentiments are all
// errors.
func (a *HTTPAdvisor) Advise(ctx context.Context, snapshot engine.AdviceSnapshot) (model.Commentary, error) {
	body, err := json.Marshal(AdviceRequest{
		Board:     snapshot.Rows,
		Score:     snapshot.Score,
		NextPiece: string(snapshot.NextPiece),
		Height:    snapshot.Height,
		Holes:     snapshot.Holes,
		Prompt:    Prompt(snapshot),
	})
	if err != nil {
		return model.Commentary{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return model.Commentary{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return model.Commentary{}, fmt.Errorf("%w: %v", model.ErrAdviceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.Commentary{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Commentary{}, fmt.Errorf("%w: status %d", model.ErrAdviceUnavailable, resp.StatusCode)
	}

	var out AdviceResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Commentary{}, fmt.Errorf("decode advice: %w", err)
	}

	message := strings.TrimSpace(out.Message)
	if message == "" {
		return model.Commentary{}, fmt.Errorf("decode advice: empty message")
	}
	sentiment, err := model.ParseSentiment(out.Sentiment)
	if err != nil {
		return model.Commentary{}, fmt.Errorf("decode advice: %w", err)
	}

	return model.Commentary{Message: message, Sentiment: sentiment}, nil
}

// Prompt renders the snapshot as a coaching request for text models
func Prompt(snapshot engine.AdviceSnapshot) string {
	var sb strings.Builder
	sb.WriteString("You are a falling-block puzzle coach. ")
	fmt.Fprintf(&sb, "These are the bottom %d rows of the player's board ('.' empty, 'X' filled):\n", len(snapshot.Rows))
	sb.WriteString(snapshot.BoardText())
	fmt.Fprintf(&sb, "\nScore: %d\nNext piece: %s\n", snapshot.Score, snapshot.NextPiece)
	sb.WriteString("Reply with one short line of advice, praise or warning as JSON ")
	sb.WriteString(`{"message": string, "sentiment": "positive"|"neutral"|"negative"|"advice"}.`)
	return sb.String()
}
