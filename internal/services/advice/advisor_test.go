package advice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
)

func rows(bottom ...string) []string {
	out := make([]string, 0, engine.AdviceRows)
	for i := 0; i < engine.AdviceRows-len(bottom); i++ {
		out = append(out, "..........")
	}
	return append(out, bottom...)
}

func TestRuleAdvisor(t *testing.T) {
	well := []string{"XXXX.XXXXX", "XXXX.XXXXX", "XXXX.XXXXX", "XXXX.XXXXX"}

	tests := []struct {
		name      string
		snapshot  engine.AdviceSnapshot
		sentiment model.Sentiment
		contains  string
	}{
		{
			name:      "tall stack is dangerous",
			snapshot:  engine.AdviceSnapshot{Rows: rows(), Height: 17, NextPiece: engine.KindI},
			sentiment: model.SentimentNegative,
			contains:  "Danger",
		},
		{
			name:      "holes need fixing",
			snapshot:  engine.AdviceSnapshot{Rows: rows(), Height: 8, Holes: 7},
			sentiment: model.SentimentAdvice,
			contains:  "holes",
		},
		{
			name:      "well with I next",
			snapshot:  engine.AdviceSnapshot{Rows: rows(well...), Height: 4, NextPiece: engine.KindI},
			sentiment: model.SentimentPositive,
			contains:  "tetris",
		},
		{
			name:      "well without I",
			snapshot:  engine.AdviceSnapshot{Rows: rows(well...), Height: 4, NextPiece: engine.KindS},
			sentiment: model.SentimentAdvice,
			contains:  "Column 5",
		},
		{
			name:      "low stack",
			snapshot:  engine.AdviceSnapshot{Rows: rows("XX........"), Height: 1},
			sentiment: model.SentimentPositive,
			contains:  "Clean",
		},
		{
			name:      "middle of the road",
			snapshot:  engine.AdviceSnapshot{Rows: rows(), Height: 9, NextPiece: engine.KindT},
			sentiment: model.SentimentNeutral,
			contains:  "next T",
		},
	}

	advisor := NewRuleAdvisor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := advisor.Advise(context.Background(), tt.snapshot)
			require.NoError(t, err)
			assert.Equal(t, tt.sentiment, c.Sentiment)
			assert.Contains(t, c.Message, tt.contains)
		})
	}
}

func TestTetrisWellNeedsSameColumn(t *testing.T) {
	_, ok := tetrisWell(rows("XXXX.XXXXX", "XXX.XXXXXX", "XXXX.XXXXX", "XXXX.XXXXX"))
	assert.False(t, ok)

	_, ok = tetrisWell(rows("XXXX.XXXXX", "XXXX..XXXX", "XXXX.XXXXX", "XXXX.XXXXX"))
	assert.False(t, ok)
}
