package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blockdrop: %v\n", err)
		os.Exit(1)
	}
}

// run plays a single game in this terminal against an in-process server.
// Logs are discarded since they would draw over the board.
func run() error {
	gameCfg := game.DefaultConfig()
	if generator := os.Getenv("GENERATOR"); generator != "" {
		gameCfg.Generator = generator
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := factory.New(factory.Config{
		GameConfig: gameCfg,
		AdvisorURL: os.Getenv("ADVISOR_URL"),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	feed := terminal.NewCommentaryFeed()
	app.AdviceService.OnCommentary(feed.Publish)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	player, err := app.AuthService.CreateGuestPlayer(ctx, os.Getenv("USER"))
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	session := terminal.NewSession(app.GameController, player.Player.ID, terminal.NewRenderer(true), feed, logger)
	return session.Run(ctx, os.Stdin, os.Stdout)
}
