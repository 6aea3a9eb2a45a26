package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/golang/glog"

	"qboxing/internal/arena"
	"qboxing/internal/config"
	"qboxing/internal/util"
)

func main() {
	var cfgPath, out, qtableA, qtableB string
	var seed int64
	var n, workers int
	var train, saveLog bool
	flag.StringVar(&cfgPath, "config", "", "fight config yaml (defaults when empty)")
	flag.StringVar(&out, "out", "out.json", "output file (single fight) or summary file (batch)")
	flag.StringVar(&qtableA, "qtable-a", "", "load/save path for fighter A's q-table")
	flag.StringVar(&qtableB, "qtable-b", "", "load/save path for fighter B's q-table")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 uses the config seed)")
	flag.IntVar(&n, "n", 1, "number of fights")
	flag.IntVar(&workers, "workers", 8, "worker count for batch statistics runs")
	flag.BoolVar(&train, "train", false, "run n fights sequentially with persistent agents")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.Parse()
	defer glog.Flush()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			glog.Exitf("load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		glog.Exitf("config: %v", err)
	}
	if seed == 0 {
		seed = cfg.Seed
	}

	if n <= 1 || train {
		runTraining(cfg, seed, n, out, qtableA, qtableB, saveLog && n <= 1)
		return
	}
	runBatch(cfg, seed, n, workers, out)
}

// runTraining plays n fights between the same two agents, learning across
// all of them, then optionally persists the tables.
func runTraining(cfg *config.Config, seed int64, n int, out, qtableA, qtableB string, record bool) {
	rng := util.New(seed)
	red := arena.NewAgent("red", cfg, rng)
	blue := arena.NewAgent("blue", cfg, rng)

	if qtableA != "" {
		if err := red.Q.Load(qtableA); err != nil {
			glog.Warningf("starting red from an empty q-table: %v", err)
		}
	}
	if qtableB != "" {
		if err := blue.Q.Load(qtableB); err != nil {
			glog.Warningf("starting blue from an empty q-table: %v", err)
		}
	}

	var events []arena.Event
	emit := func(ev arena.Event) {
		if record {
			events = append(events, ev)
		}
	}

	type fightOut struct {
		Fight  int               `json:"fight"`
		Record arena.FightRecord `json:"record"`
		Events []arena.Event     `json:"events,omitempty"`
	}
	var results []fightOut
	winsRed, winsBlue := 0, 0
	for i := 0; i < n; i++ {
		events = nil
		fc := arena.NewFight(cfg, red, blue, rng, emit)
		rec := fc.Run()
		switch rec.Winner {
		case red.ID:
			winsRed++
		case blue.ID:
			winsBlue++
		}
		results = append(results, fightOut{Fight: i + 1, Record: rec, Events: events})
	}

	if qtableA != "" {
		if err := red.Q.Save(qtableA); err != nil {
			glog.Exitf("save red q-table: %v", err)
		}
	}
	if qtableB != "" {
		if err := blue.Q.Save(qtableB); err != nil {
			glog.Exitf("save blue q-table: %v", err)
		}
	}

	var payload any = results
	if len(results) == 1 {
		payload = results[0]
	}
	if err := os.WriteFile(out, arena.MarshalPretty(payload), 0644); err != nil {
		glog.Exitf("write %s: %v", out, err)
	}
	fmt.Printf("%d fight(s) done. red=%d blue=%d, q-entries red=%d blue=%d -> %s\n",
		n, winsRed, winsBlue, red.Q.Len(), blue.Q.Len(), out)
}

// batchSeed derives the seed for batch fight i. It depends only on the base
// seed and the fight index, so a batch produces the same statistics no matter
// which worker picks up which fight or how many workers run.
func batchSeed(base int64, i int) int64 {
	return base + int64(i)
}

// runBatch plays n independent fights in parallel, fresh agents each, and
// writes aggregate statistics. Nothing is shared between workers but the
// immutable config.
func runBatch(cfg *config.Config, seed int64, n, workers int, out string) {
	type stat struct {
		RedWins, BlueWins, Draws int
		Knockouts, Timeouts      int
		Rounds                   int
	}
	var st stat
	var mu sync.Mutex

	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rng := util.New(batchSeed(seed, i))
				red := arena.NewAgent("red", cfg, rng)
				blue := arena.NewAgent("blue", cfg, rng)
				rec := arena.NewFight(cfg, red, blue, rng, nil).Run()

				mu.Lock()
				switch rec.Winner {
				case red.ID:
					st.RedWins++
				case blue.ID:
					st.BlueWins++
				default:
					st.Draws++
				}
				for _, rr := range rec.Rounds {
					st.Rounds++
					if rr.Reason == arena.ReasonKnockout {
						st.Knockouts++
					} else {
						st.Timeouts++
					}
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := map[string]any{
		"fights":       n,
		"red_wins":     st.RedWins,
		"blue_wins":    st.BlueWins,
		"draws":        st.Draws,
		"rounds":       st.Rounds,
		"knockouts":    st.Knockouts,
		"timeouts":     st.Timeouts,
		"ko_rate":      float64(st.Knockouts) / float64(max(1, st.Rounds)),
		"red_win_rate": float64(st.RedWins) / float64(n),
	}
	if err := os.WriteFile(out, arena.MarshalPretty(summary), 0644); err != nil {
		glog.Exitf("write %s: %v", out, err)
	}
	fmt.Printf("Batch %d done -> %s\n", n, out)
}
