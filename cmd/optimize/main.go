package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/glass/config"
)

// EvalRecord is one row of optimize_log.csv.
type EvalRecord struct {
	Eval                int     `csv:"eval"`
	Fitness             float64 `csv:"fitness"`
	TiltStiffness       float64 `csv:"tilt_stiffness"`
	TiltDamping         float64 `csv:"tilt_damping"`
	RefractionStiffness float64 `csv:"refraction_stiffness"`
	RefractionDamping   float64 `csv:"refraction_damping"`
	TiltSettleMS        float64 `csv:"tilt_settle_ms"`
	TiltOvershoot       float64 `csv:"tilt_overshoot"`
	RefractionSettleMS  float64 `csv:"refraction_settle_ms"`
	RefractionOvershoot float64 `csv:"refraction_overshoot"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	tiltSettle := flag.Float64("tilt-settle", 0.35, "Target tilt settle time in seconds")
	refractionSettle := flag.Float64("refraction-settle", 0.45, "Target refraction settle time in seconds")
	maxOvershoot := flag.Float64("max-overshoot", 0.05, "Allowed overshoot as a fraction of the step")
	seeds := flag.Int("seeds", 3, "Number of jittered frame profiles")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, Profiles(evalSeeds),
		Goal{Settle: *tiltSettle, MaxOvershoot: *maxOvershoot},
		Goal{Settle: *refractionSettle, MaxOvershoot: *maxOvershoot},
	)

	dim := params.Dim()
	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // profiles already run in parallel
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			tilt, refraction := evaluator.LastResponses()
			rec := []EvalRecord{{
				Eval:                evalCount,
				Fitness:             fitness,
				TiltStiffness:       raw[0],
				TiltDamping:         raw[1],
				RefractionStiffness: raw[2],
				RefractionDamping:   raw[3],
				TiltSettleMS:        tilt.Settle * 1000,
				TiltOvershoot:       tilt.Overshoot,
				RefractionSettleMS:  refraction.Settle * 1000,
				RefractionOvershoot: refraction.Overshoot,
			}}
			if evalCount == 1 {
				err = gocsv.Marshal(rec, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rec, logFile)
			}
			if err != nil {
				log.Printf("failed to log evaluation: %v", err)
			}

			if evalCount%10 == 0 {
				fmt.Printf("Eval %d/%d: fitness=%.4f tilt=%.0fms refraction=%.0fms (best=%.4f) | elapsed: %s\n",
					evalCount, *maxEvals, fitness, tilt.Settle*1000, refraction.Settle*1000, bestFitness,
					time.Since(startTime).Round(time.Millisecond))
			}
			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d, profiles=%d\n",
		dim, popSize, *maxEvals, len(evaluator.profiles))

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.3f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
