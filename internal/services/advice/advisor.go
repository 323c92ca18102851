package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
)

// Advisor produces one commentary message for a board snapshot
type Advisor interface {
	Advise(ctx context.Context, snapshot engine.AdviceSnapshot) (model.Commentary, error)
}

// Thresholds used by RuleAdvisor
const (
	dangerHeight = 16
	cleanHeight  = 4
	manyHoles    = 6
	wellDepth    = 4
)

// RuleAdvisor comments on a board with fixed heuristics and never fails
type RuleAdvisor struct{}

// NewRuleAdvisor creates a RuleAdvisor
func NewRuleAdvisor() *RuleAdvisor {
	return &RuleAdvisor{}
}

// Advise picks the first matching rule: danger, holes, tetris well, clean, steady
func (a *RuleAdvisor) Advise(ctx context.Context, snapshot engine.AdviceSnapshot) (model.Commentary, error) {
	switch {
	case snapshot.Height >= dangerHeight:
		return commentary("Danger zone! Clear some lines before the stack tops out.", model.SentimentNegative), nil
	case snapshot.Holes >= manyHoles:
		return commentary("Too many holes. Flatten the surface before going for lines.", model.SentimentAdvice), nil
	}

	if col, ok := tetrisWell(snapshot.Rows); ok {
		if snapshot.NextPiece == engine.KindI {
			return commentary("Here comes the I piece. Go for the tetris!", model.SentimentPositive), nil
		}
		return commentary(fmt.Sprintf("Column %d is a perfect well. Save it for an I piece.", col+1), model.SentimentAdvice), nil
	}

	if snapshot.Height <= cleanHeight {
		return commentary("Clean stack. Keep it up!", model.SentimentPositive), nil
	}
	return commentary(fmt.Sprintf("Steady. Plan a spot for the next %s.", snapshot.NextPiece), model.SentimentNeutral), nil
}

// tetrisWell reports a column that is the only gap in each of the bottom
// wellDepth rows
func tetrisWell(rows []string) (int, bool) {
	if len(rows) < wellDepth {
		return 0, false
	}

	col := -1
	for _, row := range rows[len(rows)-wellDepth:] {
		if strings.Count(row, ".") != 1 {
			return 0, false
		}
		c := strings.IndexByte(row, '.')
		if col >= 0 && c != col {
			return 0, false
		}
		col = c
	}
	return col, true
}

func commentary(message string, sentiment model.Sentiment) model.Commentary {
	return model.Commentary{Message: message, Sentiment: sentiment}
}
