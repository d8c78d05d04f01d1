package processor

import (
	"fmt"

	"github.com/me/seasonsim/pkg/model"
)

// blowoutMargin is the point margin that earns a game a weekly highlight.
const blowoutMargin = 21

// GameProcessor folds played games into standings deltas and narrative.
type GameProcessor struct {
	cfg Config
}

// NewGameProcessor creates the game result processor.
func NewGameProcessor(cfg Config) *GameProcessor {
	return &GameProcessor{cfg: cfg}
}

func (p *GameProcessor) Name() string     { return "game-processor" }
func (p *GameProcessor) Kind() model.Kind { return model.KindGame }

func (p *GameProcessor) Strategies() []model.ProcessingStrategy {
	return []model.ProcessingStrategy{
		model.StrategyStatisticsOnly,
		model.StrategyFullProgression,
		model.StrategyGameFocused,
		model.StrategyDevelopmentFocused,
		model.StrategyCustom,
	}
}

func (p *GameProcessor) CanProcess(res *model.Result) bool {
	return res.Kind == model.KindGame
}

func (p *GameProcessor) Process(res *model.Result, pctx *model.ProcessingContext) (*model.ProcessingResult, error) {
	g := res.Game
	if g == nil {
		return nil, fmt.Errorf("game result %q has no game payload", res.Name)
	}

	pr := &model.ProcessingResult{Success: true}
	pr.ParticipantsUpdated = []string{g.HomeID, g.AwayID}
	pr.AddStat("games_played", 1)
	pr.AddStat("points_home", float64(g.HomeScore))
	pr.AddStat("points_away", float64(g.AwayScore))
	pr.AddStat("points_total", float64(g.HomeScore+g.AwayScore))
	if g.Overtime {
		pr.AddStat("overtime_games", 1)
	}

	if !res.Success {
		// Statistics-only passes failed games through for counting.
		pr.AddStat("games_abandoned", 1)
		return pr, nil
	}

	if p.cfg.Strategy.MutatesState() && p.cfg.enabled(featStandings, res.Kind, pr.Statistics, pctx.Week) {
		switch winner := g.Winner(); winner {
		case "":
			pr.AddDelta(g.HomeID, model.FieldTies, model.OpAdd, 1)
			pr.AddDelta(g.AwayID, model.FieldTies, model.OpAdd, 1)
		default:
			pr.AddDelta(winner, model.FieldWins, model.OpAdd, 1)
			pr.AddDelta(g.Loser(), model.FieldLosses, model.OpAdd, 1)
		}
		pr.AddDelta(g.HomeID, model.FieldPointsFor, model.OpAdd, float64(g.HomeScore))
		pr.AddDelta(g.HomeID, model.FieldPointsAgainst, model.OpAdd, float64(g.AwayScore))
		pr.AddDelta(g.AwayID, model.FieldPointsFor, model.OpAdd, float64(g.AwayScore))
		pr.AddDelta(g.AwayID, model.FieldPointsAgainst, model.OpAdd, float64(g.HomeScore))
	}

	if p.cfg.enabled(featNarrative, res.Kind, pr.Statistics, pctx.Week) {
		p.narrate(g, pctx, pr)
	}

	return pr, nil
}

// narrate emits the game's side effects and any highlight-worthy history.
func (p *GameProcessor) narrate(g *model.GamePayload, pctx *model.ProcessingContext, pr *model.ProcessingResult) {
	switch winner := g.Winner(); winner {
	case "":
		pr.SideEffects = append(pr.SideEffects,
			fmt.Sprintf("%s and %s tied %d-%d", g.HomeID, g.AwayID, g.HomeScore, g.AwayScore))
	default:
		verb := "defeated"
		if g.Overtime {
			verb = "outlasted"
		}
		pr.SideEffects = append(pr.SideEffects,
			fmt.Sprintf("%s %s %s %d-%d", winner, verb, g.Loser(), max(g.HomeScore, g.AwayScore), min(g.HomeScore, g.AwayScore)))
	}

	margin := g.HomeScore - g.AwayScore
	if margin < 0 {
		margin = -margin
	}
	if margin >= blowoutMargin {
		pr.History = append(pr.History, model.HistoryEntry{
			Week: pctx.Week,
			Text: fmt.Sprintf("%s blew out %s by %d", g.Winner(), g.Loser(), margin),
			Tag:  "highlight",
		})
	}
	if g.Overtime {
		pr.History = append(pr.History, model.HistoryEntry{
			Week: pctx.Week,
			Text: fmt.Sprintf("overtime thriller between %s and %s", g.HomeID, g.AwayID),
			Tag:  "highlight",
		})
	}
}
