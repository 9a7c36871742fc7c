package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSimSteps  int
	flagSimSave   bool
	flagSimRender bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <variant>",
	Short: "Let the autopilot play a variant headless",
	Long: `Run one game with the greedy autopilot steering, without a terminal UI.
Every step advances a simulated clock past the move interval, so the run
finishes as fast as the machine allows. Logs go to stderr.

Examples:
  snake simulate snake --seed 7
  snake simulate snake_capture --steps 500 --render
  snake simulate snake --save --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimSteps, "steps", 2000, "Maximum number of moves")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the final score in the database")
	simulateCmd.Flags().BoolVar(&flagSimRender, "render", false, "Print the final board")
}

// simResult summarizes a headless run.
type simResult struct {
	Moves     int
	Score     int
	Length    int
	Outcome   string
	Recovered int
}

func runSimulate(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q", gameID)
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	snake.SetLogger(logger)

	rg, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	game, ok := rg.(*snake.Game)
	if !ok {
		return errors.New("autopilot needs a snake variant")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("simulation started", "game", gameID, "seed", seed, "steps", flagSimSteps)

	res := simulate(game, seed, flagSimSteps)
	logger.Info("simulation finished", "game", gameID, "moves", res.Moves, "score", res.Score, "outcome", res.Outcome)

	if flagSimRender {
		screen := core.NewScreen(80, 24)
		game.Render(screen)
		fmt.Fprintln(cmd.OutOrStdout(), screen.String())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s after %d moves, score %d, length %d\n",
		game.Title(), res.Outcome, res.Moves, res.Score, res.Length)
	if res.Recovered > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "recovered from %d state errors\n", res.Recovered)
	}

	if !flagSimSave || res.Score == 0 || res.Outcome == outcomeUnfinished {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveScore(storage.ScoreEntry{
		RunID:   uuid.NewString(),
		GameID:  gameID,
		Score:   res.Score,
		Outcome: res.Outcome,
		Length:  res.Length,
	})
	return err
}

// outcomeUnfinished marks a run stopped by the move limit. Such runs are
// never stored.
const outcomeUnfinished = "unfinished"

// simulate drives game with the autopilot on a fake clock until the game
// ends or maxMoves moves were made.
func simulate(game *snake.Game, seed int64, maxMoves int) simResult {
	now := time.Unix(0, 0)
	game.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
		Clock:    func() time.Time { return now },
	})

	var res simResult
	for res.Moves < maxMoves && !game.State().GameOver {
		now = now.Add(time.Second)

		input := core.NewInputFrame()
		input.Set(snake.ActionFor(snake.Autopilot(game.Snapshot().Snapshot)))
		if step := game.Step(input); step.Recovered != nil {
			res.Recovered++
		}
		res.Moves++
	}

	state := game.State()
	res.Score = state.Score
	res.Length = game.Length()
	switch {
	case state.Won:
		res.Outcome = storage.OutcomeWin
	case state.GameOver:
		res.Outcome = storage.OutcomeGameOver
	default:
		res.Outcome = outcomeUnfinished
	}
	return res
}
