package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guestPlayer := &model.Player{
		ID:      "guest-1",
		IsGuest: true,
	}
	registeredPlayer := &model.Player{
		ID:      "registered-1",
		IsGuest: false,
	}

	_ = s.storage.SavePlayer(s.ctx, guestPlayer)
	_ = s.storage.SavePlayer(s.ctx, registeredPlayer)

	// Check that guest has TTL and registered doesn't
	guestTTL := s.mini.TTL(playerKey(guestPlayer.ID))
	registeredTTL := s.mini.TTL(playerKey(registeredPlayer.ID))

	s.True(guestTTL > 0, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{
		ID:        "game-1",
		PlayerID:  "player-1",
		Status:    model.GameStatusPaused,
		Score:     1300,
		Lines:     12,
		Level:     2,
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Status, retrieved.Status)
	s.Equal(1300, retrieved.Score)
	s.Equal(2, retrieved.Level)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameTTL() {
	game := &model.Game{ID: "game-1", PlayerID: "p1"}
	_ = s.storage.SaveGame(s.ctx, game)

	s.True(s.mini.TTL(gameKey(game.ID)) > 0, "Game should have TTL")
	s.True(s.mini.TTL(gamesForPlayerIndexKey("p1")) > 0, "Index should have TTL")
}

func (s *StorageSuite) TestGetGamesForPlayer() {
	now := time.Now()
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", PlayerID: "p1", CreatedAt: now})
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-2", PlayerID: "p1", CreatedAt: now.Add(time.Minute)})
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-3", PlayerID: "p2", CreatedAt: now})

	games, err := s.storage.GetGamesForPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(model.GameID("game-2"), games[0].ID)
	s.Equal(model.GameID("game-1"), games[1].ID)
}

func (s *StorageSuite) TestGetGamesForPlayerSkipsExpired() {
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", PlayerID: "p1"})
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-2", PlayerID: "p1"})
	s.mini.Del(gameKey("game-1"))

	games, err := s.storage.GetGamesForPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("game-2"), games[0].ID)
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", PlayerID: "p1"})
	_ = s.storage.AppendCommentary(s.ctx, &model.Commentary{GameID: "game-1", Message: "hi"})

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	s.False(s.mini.Exists(commentaryKey("game-1")))

	games, err := s.storage.GetGamesForPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestDeleteMissingGame() {
	err := s.storage.DeleteGame(s.ctx, "nonexistent")
	s.NoError(err)
}

// Commentary tests

func (s *StorageSuite) TestAppendAndGetCommentary() {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, msg := range []string{"one", "two", "three"} {
		err := s.storage.AppendCommentary(s.ctx, &model.Commentary{
			GameID:    "game-1",
			Message:   msg,
			Sentiment: model.SentimentAdvice,
			CreatedAt: created,
		})
		s.Require().NoError(err)
	}

	entries, err := s.storage.GetCommentary(s.ctx, "game-1", 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("one", entries[0].Message)
	s.Equal(model.SentimentAdvice, entries[0].Sentiment)
	s.True(created.Equal(entries[0].CreatedAt))

	entries, err = s.storage.GetCommentary(s.ctx, "game-1", 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("two", entries[0].Message)
	s.Equal("three", entries[1].Message)
}

func (s *StorageSuite) TestCommentaryIsCapped() {
	for i := 0; i < storage.MaxCommentary+5; i++ {
		_ = s.storage.AppendCommentary(s.ctx, &model.Commentary{GameID: "game-1", Score: i})
	}

	entries, err := s.storage.GetCommentary(s.ctx, "game-1", 0)
	s.Require().NoError(err)
	s.Len(entries, storage.MaxCommentary)
	s.Equal(5, entries[0].Score)
	s.True(s.mini.TTL(commentaryKey("game-1")) > 0)
}

func (s *StorageSuite) TestGetCommentaryEmpty() {
	entries, err := s.storage.GetCommentary(s.ctx, "missing", 10)
	s.Require().NoError(err)
	s.Empty(entries)
}
