package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/terminal"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/blockdrop_host_key"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	host := getEnv("SSH_HOST", defaultHost)
	port := getEnv("SSH_PORT", defaultPort)
	hostKeyPath := getEnv("SSH_HOST_KEY", defaultHostKeyPath)

	gameCfg := game.DefaultConfig()
	if generator := os.Getenv("GENERATOR"); generator != "" {
		gameCfg.Generator = generator
	}

	// Games played over SSH live only as long as their connection, so
	// in-memory storage is enough
	app, err := factory.New(factory.Config{
		GameConfig: gameCfg,
		AdvisorURL: os.Getenv("ADVISOR_URL"),
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	feed := terminal.NewCommentaryFeed()
	app.AdviceService.OnCommentary(feed.Publish)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(app, feed, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY so keypresses are not batched
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Error("failed to create ssh server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("ssh server started", slog.String("addr", net.JoinHostPort(host, port)))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error("ssh server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutdown signal received")

	// Stopping the games closes every session's subscription, which ends
	// the sessions
	app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("ssh server stopped")
}

// gameMiddleware gives every SSH session a guest player and one game
func gameMiddleware(app *factory.App, feed *terminal.CommentaryFeed, logger *slog.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			// The board has a fixed size; resizes are drained so they never
			// block the connection
			go func() {
				for range winCh {
				}
			}()

			player, err := app.AuthService.CreateGuestPlayer(sess.Context(), sess.User())
			if err != nil {
				logger.Error("failed to create player", slog.String("error", err.Error()))
				fmt.Fprintln(sess, "Error: could not start a game, please try again later")
				return
			}

			logger.Info("ssh session started",
				slog.String("user", sess.User()),
				slog.String("player_id", string(player.Player.ID)),
				slog.String("term", pty.Term))

			renderer := terminal.NewRenderer(pty.Term != "dumb")
			session := terminal.NewSession(app.GameController, player.Player.ID, renderer, feed, logger)
			if err := session.Run(sess.Context(), sess, sess); err != nil {
				logger.Warn("ssh session error",
					slog.String("player_id", string(player.Player.ID)),
					slog.String("error", err.Error()))
			}

			app.AuthService.InvalidateSession(player.Token)
			next(sess)
		}
	}
}

// getEnv returns the value of the environment variable named by key, or
// fallback if it is not set
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
