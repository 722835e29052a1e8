// Command checkersplay-selfplay plays engine games against itself and writes
// the winners' positions and moves as JSON lines.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"

	"github.com/hailam/checkersplay/internal/selfplay"
	"github.com/hailam/checkersplay/internal/storage"
)

func main() {
	cfg := selfplay.DefaultConfig()
	var (
		kind       = flag.String("kind", cfg.Kind.String(), "player kind: random, heuristic or search")
		out        = flag.String("out", "", "output file (default: selfplay.jsonl in the export directory)")
		cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	)
	flag.IntVar(&cfg.Games, "games", cfg.Games, "number of games")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent games")
	flag.IntVar(&cfg.MaxPlies, "maxplies", cfg.MaxPlies, "plies before a game is scored a draw")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "search depth of search players")
	flag.BoolVar(&cfg.Normalize, "normalize", false, "also write one-hot network inputs")
	flag.BoolVar(&cfg.Rules.KingsMoveBackward, "kings-backward", false, "let kings move backward")
	flag.IntVar(&cfg.LogEvery, "log-every", cfg.LogEvery, "log progress every N games")
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	k, err := selfplay.ParsePlayerKind(*kind)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Kind = k

	path := *out
	if path == "" {
		dir, err := storage.GetExportDir()
		if err != nil {
			log.Fatal(err)
		}
		path = filepath.Join(dir, "selfplay.jsonl")
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, runErr := selfplay.Run(ctx, cfg, w)
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("games %d: My %d, Opp %d, draws %d\n", sum.Games, sum.MyWins, sum.OppWins, sum.Draws)
	fmt.Printf("points %d (%d duplicates dropped) -> %s\n", sum.Points, sum.Duplicates, path)
	if runErr != nil {
		log.Fatal(runErr)
	}
}
