package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/gitter-badger/zoc/internal/config"
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/engine"
	"github.com/gitter-badger/zoc/internal/infrastructure/storage"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/internal/scenario"
	"github.com/gitter-badger/zoc/internal/version"
	"github.com/gitter-badger/zoc/pkg/api"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

type options struct {
	configPath string
	seed       int64
	rounds     int
	replayPath string
	record     bool
	watch      int
	allAI      bool
	generate   bool
	version    bool
}

func main() {
	// 1. Парсинг флагов
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config file (default: zoc.yaml in . or ./configs)")
	flag.Int64Var(&opts.seed, "seed", 0, "Match seed (0 to use the config value or a random one)")
	flag.IntVar(&opts.rounds, "rounds", 0, "Stop after this many rounds (0 to use the config value)")
	flag.StringVar(&opts.replayPath, "replay", "", "Path to .zocr replay file to verify")
	flag.BoolVar(&opts.record, "record", false, "Save the match journal to the replay dir")
	flag.IntVar(&opts.watch, "watch", -1, "Print events seen by this player as JSON lines")
	flag.BoolVar(&opts.allAI, "ai-all", false, "Let the AI play every seat")
	flag.BoolVar(&opts.generate, "generate", false, "Play on a random battlefield generated from the seed")
	flag.BoolVar(&opts.version, "version", false, "Print version and exit")
	flag.Parse()

	if opts.version {
		fmt.Println(version.Current())
		return
	}

	if err := run(opts); err != nil {
		logger.Log.WithError(err).Fatal("Skirmish failed")
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	if opts.watch >= 0 {
		// stdout занят потоком событий
		logger.Log.SetOutput(os.Stderr)
	}
	logger.Log.WithFields(version.Current().Fields()).Info("Starting skirmish...")

	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.rounds > 0 {
		cfg.Match.MaxRounds = opts.rounds
	}

	reg, err := loadRegistry(cfg.Registry)
	if err != nil {
		return err
	}

	// РЕЖИМ РЕПЛЕЯ
	if opts.replayPath != "" {
		return verifyReplay(cfg, reg, opts.replayPath)
	}

	engineCfg := cfg.EngineConfig()
	if cfg.Seed != 0 {
		logger.Log.Infof("🎲 Using explicit match seed: %d", engineCfg.Seed)
	} else {
		logger.Log.Infof("🎲 Using random match seed: %d", engineCfg.Seed)
	}

	var sc *scenario.Scenario
	if opts.generate {
		sc, err = generateScenario(engineCfg.Seed)
	} else {
		sc, err = loadScenario(cfg.Scenario)
	}
	if err != nil {
		return err
	}
	if opts.allAI {
		if sc, err = sc.WithAllAI(); err != nil {
			return err
		}
	}

	g, err := engine.NewGame(engineCfg, reg, sc)
	if err != nil {
		return err
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := json.NewEncoder(os.Stdout)
	watch := domain.PlayerID(opts.watch)
	flush := func() {
		if opts.watch >= 0 {
			printEvents(out, g.PollEvents(watch))
		}
	}

	playMatch(ctx, g, cfg.Match.MaxRounds, os.Stdin, flush)
	report(g)

	if cfg.Replay.Record || opts.record {
		svc, err := storage.NewReplayService(cfg.Replay.Dir)
		if err != nil {
			return err
		}
		path, err := svc.Save(g.Session())
		if err != nil {
			return fmt.Errorf("save replay: %w", err)
		}
		logger.Log.WithField("path", path).Info("💿 Replay saved")
	}

	logger.Log.Info("Done.")
	return nil
}

// playMatch ведет партию до победы, лимита кругов или сигнала. Команды людей
// читаются из input по одному JSON-конверту на строку.
func playMatch(ctx context.Context, g *engine.Game, maxRounds int, input io.Reader, flush func()) {
	lines := bufio.NewScanner(input)
	humanInput := true

	for g.Round() < maxRounds {
		if ctx.Err() != nil {
			logger.Log.Info("Shutting down...")
			return
		}
		if winner, over := g.Winner(); over {
			g.AddLog(fmt.Sprintf("Победа игрока %s.", winner), "INFO")
			flush()
			return
		}

		if g.RunAI() > 0 {
			flush()
			continue
		}

		// Ходит человек
		if !humanInput || !lines.Scan() {
			humanInput = false
			logger.Log.WithField("player", g.CurrentPlayer()).Info("No more input, ending human turns")
			g.Submit(domain.EndTurnCommand{})
			flush()
			continue
		}
		submitLine(g, lines.Bytes())
		flush()
	}
	logger.Log.WithField("rounds", maxRounds).Info("Round limit reached")
}

func submitLine(g *engine.Game, line []byte) {
	if len(line) == 0 {
		return
	}
	var env api.CommandEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		logger.Log.WithError(err).Warn("Malformed command line")
		return
	}
	cmd, err := api.DecodeCommand(env)
	if err != nil {
		logger.Log.WithError(err).Warn("Bad command")
		return
	}
	if err := g.Check(cmd); err != nil {
		logger.Log.WithError(err).WithField("command", env.Type).Warn("Command rejected")
		return
	}
	g.Submit(cmd)
}

func printEvents(out *json.Encoder, events []domain.Event) {
	for _, e := range events {
		env, err := api.EncodeEvent(e)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to encode event")
			continue
		}
		if err := out.Encode(env); err != nil {
			logger.Log.WithError(err).Error("Failed to write event")
			return
		}
	}
}

func verifyReplay(cfg *config.Config, reg *registry.Registry, path string) error {
	logger.Log.Info("💿 Mode: Replay Verification")

	svc, err := storage.NewReplayService(cfg.Replay.Dir)
	if err != nil {
		return err
	}
	session, err := svc.Load(path)
	if err != nil {
		return err
	}

	g, err := engine.Replay(cfg.EngineConfig(), reg, session)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"match":   session.MatchID,
		"actions": len(session.Actions),
	}).Info("Replay verified")
	report(g)
	return nil
}

func report(g *engine.Game) {
	alive := make(map[domain.PlayerID]int)
	for _, u := range g.Units() {
		alive[u.PlayerID]++
	}

	entry := logger.Log.WithFields(logrus.Fields{
		"match":  g.MatchID,
		"turn":   g.Turn(),
		"round":  g.Round(),
		"active": g.CurrentPlayer(),
	})
	for _, p := range g.Players() {
		entry = entry.WithField(fmt.Sprintf("units_%s", p.ID), alive[p.ID])
	}
	if winner, over := g.Winner(); over {
		entry = entry.WithField("winner", winner)
	}
	entry.Info("Match summary")
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.LoadFile(path)
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Default(), nil
	}
	return scenario.Load(path)
}

// generateScenario строит поле боя из зерна партии: человек против ИИ,
// у каждого танк, две пехоты и разведчик.
func generateScenario(seed int64) (*scenario.Scenario, error) {
	roster := []domain.UnitTypeID{"tank", "soldier", "soldier", "scout"}
	return scenario.NewBuilder("generated", rand.New(rand.NewSource(seed))).
		WithPlayers(domain.Player{ID: 0}, domain.Player{ID: 1, IsAI: true}).
		WithGroves(6).
		Deploy(0, roster...).
		Deploy(1, roster...).
		Build()
}
