package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/checkersplay/internal/console"
	"github.com/hailam/checkersplay/internal/engine"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	hashMB     = flag.Int("hash", 16, "score table size in MB")
	difficulty = flag.String("difficulty", "medium", "easy, medium or hard")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
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
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	d, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatal(err)
	}

	opts := engine.DefaultOptions()
	opts.TableSizeMB = *hashMB
	eng, err := engine.NewEngine(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()
	eng.SetDifficulty(d)

	if err := console.New(eng, os.Stdin, os.Stdout).Run(); err != nil {
		log.Fatal(err)
	}
}
