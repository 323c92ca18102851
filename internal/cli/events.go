package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool
	var withHTML bool

	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Stream SSE events from a game",
		Long: `Connect to the game's event stream and print events as they arrive.

Events include:
  - connected: Stream is open
  - state: Board and score after every change
  - commentary-data: The coach commented on the game
  - game-over: The stack reached the top
  - game-ended: The owner ended the game; the stream closes

The HTML "frame" and "commentary" events used by the web page are skipped
unless --html is given.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(args[0], jsonOutput, withHTML)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().BoolVar(&withHTML, "html", false, "Include HTML events")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

// stateEvent is the subset of a state event the text view shows
type stateEvent struct {
	Seq    uint64   `json:"seq"`
	Status string   `json:"status"`
	Score  int      `json:"score"`
	Lines  int      `json:"lines"`
	Level  int      `json:"level"`
	Next   string   `json:"next"`
	Rows   []string `json:"rows"`
}

// noticeEvent covers commentary and end-of-game events
type noticeEvent struct {
	Score     int    `json:"score"`
	Lines     int    `json:"lines"`
	Message   string `json:"message"`
	Sentiment string `json:"sentiment"`
}

func streamEvents(gameID string, jsonOutput, withHTML bool) error {
	u := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/games/" + url.PathEscape(gameID) + "/events"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	// No timeout for SSE
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Printf("Connected to game %s\n", gameID)
	}

	printer := &eventPrinter{out: os.Stdout, json: jsonOutput, html: withHTML}
	err = readEvents(resp.Body, printer.print)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

// readEvents parses an SSE stream and calls fn once per complete event.
// Comment lines are ignored and multi-line data is joined with newlines.
func readEvents(r io.Reader, fn func(event, data string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			currentEvent = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case line == "":
			if currentEvent != "" {
				fn(currentEvent, strings.Join(dataLines, "\n"))
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	return scanner.Err()
}

type eventPrinter struct {
	out  io.Writer
	json bool
	html bool
	now  func() time.Time
}

func (p *eventPrinter) print(event, data string) {
	if !p.html && (event == "frame" || event == "commentary") {
		return
	}

	now := time.Now()
	if p.now != nil {
		now = p.now()
	}

	if p.json {
		jsonData, _ := json.Marshal(SSEEvent{Time: now, Event: event, Data: data})
		fmt.Fprintln(p.out, string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	switch event {
	case "state":
		var s stateEvent
		if err := json.Unmarshal([]byte(data), &s); err == nil {
			fmt.Fprintf(p.out, "[%s] state #%d: %s score %d lines %d level %d next %s\n",
				timestamp, s.Seq, s.Status, s.Score, s.Lines, s.Level, s.Next)
			out := &Output{format: "text", w: p.out}
			out.printRows(s.Rows)
			return
		}
	case "commentary-data":
		var n noticeEvent
		if err := json.Unmarshal([]byte(data), &n); err == nil {
			fmt.Fprintf(p.out, "[%s] coach (%s): %s\n", timestamp, n.Sentiment, n.Message)
			return
		}
	case "game-over", "game-ended":
		var n noticeEvent
		if err := json.Unmarshal([]byte(data), &n); err == nil {
			fmt.Fprintf(p.out, "[%s] %s: score %d lines %d\n", timestamp, event, n.Score, n.Lines)
			return
		}
	}

	// Truncate data if it's too long for display
	displayData := data
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	displayData = strings.ReplaceAll(displayData, "\n", " ")
	fmt.Fprintf(p.out, "[%s] %s: %s\n", timestamp, event, displayData)
}
