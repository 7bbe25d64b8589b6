/*
 * KlondikeGo - Klondike solitaire engine and solver in GO
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/KlondikeGo/internal/analysis"
	"github.com/frankkopp/KlondikeGo/internal/config"
	"github.com/frankkopp/KlondikeGo/internal/convert"
	"github.com/frankkopp/KlondikeGo/internal/engine"
	"github.com/frankkopp/KlondikeGo/internal/logging"
	"github.com/frankkopp/KlondikeGo/internal/shuffler"
	"github.com/frankkopp/KlondikeGo/internal/solver"
	"github.com/frankkopp/KlondikeGo/internal/standard"
	"github.com/frankkopp/KlondikeGo/internal/state"
	"github.com/frankkopp/KlondikeGo/internal/version"
)

var out = message.NewPrinter(language.German)

func main() {
	// command line args
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	solverlogLvl := flag.String("solverloglvl", "", "solver log level\n(critical|error|warning|notice|info|debug)")
	seed := flag.Uint64("seed", 0, "seed of the deal to play")
	drawStep := flag.Uint("drawstep", 3, "cards drawn per deal (1-3 for standard games)")
	timeout := flag.Int("timeout", 0, "abort the solve after this many seconds (0 = no timeout)")
	advise := flag.Bool("advise", false, "print ranked moves of the initial position and exit")
	replay := flag.Bool("replay", true, "replay a found solution on the reference engine")
	prof := flag.Bool("profile", false, "write a cpu profile to the working directory")
	flag.Parse()

	// print version info and exit
	if *versionInfo {
		printVersionInfo()
		return
	}

	// set config file
	// this needs to be set before config.Setup() is called. Otherwise the default will be used.
	config.ConfFile = *configFile
	config.Setup()

	// set log level from cmd line options overwriting config file or defaults
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*solverlogLvl]; found {
		config.SolverLogLevel = lvl
	}

	// resetting log level of standard log - required as most packages include
	// the standard logger as a global var and therefore even before main() is
	// called.
	log := logging.GetLog()

	if *prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	// deal
	cards := shuffler.DefaultShuffle(*seed)
	g, err := state.NewState(&cards, uint8(*drawStep))
	if err != nil {
		log.Error("Invalid deal: ", err)
		os.Exit(1)
	}
	out.Printf("Deal %d (draw %d):\n%s\n", *seed, *drawStep, g.String())

	if *advise {
		cfg := analysis.DefaultHeuristicConfig()
		for _, rm := range analysis.RankedMoves(engine.New(g), analysis.Neutral, &cfg) {
			out.Printf("%-8s score %d\n", rm.Mv.String(), rm.HeuristicScore)
		}
		return
	}

	// solve
	s := solver.NewSolver()
	if *timeout > 0 {
		timer := time.AfterFunc(time.Duration(*timeout)*time.Second, func() {
			s.Signal().Terminate()
		})
		defer timer.Stop()
	}
	s.StartSolve(*g)
	s.WaitWhileSolving()
	result := s.LastResult()

	out.Printf("Result   : %s\n", result.SearchResult.String())
	out.Printf("Time     : %d ms\n", result.SearchTime.Milliseconds())
	out.Printf("Visits   : %d (unique %d, max depth %d)\n",
		s.Statistics().TotalVisit(), s.Statistics().UniqueVisit(), s.Statistics().MaxDepth())

	if result.SearchResult != solver.Solved {
		return
	}
	out.Printf("Solution : %d moves\n", result.History.Len())
	out.Printf("%s\n", result.History.String())

	if *replay {
		// replay the abstract solution on the reference engine
		ref := standard.NewStandardSolitaire(&cards, uint8(*drawStep))
		ops, err := convert.ConvertMoves(ref, result.History.Data())
		if err != nil {
			log.Error("Solution replay failed: ", err)
			os.Exit(1)
		}
		if !ref.IsWin() {
			log.Error("Solution replay did not win")
			os.Exit(1)
		}
		out.Printf("Replay   : won after %d standard operations\n", len(ops))
	}
}

func printVersionInfo() {
	out.Printf("KlondikeGo %s\n", version.Version())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
