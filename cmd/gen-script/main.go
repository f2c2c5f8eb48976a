package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/AlperenUlu/gigmatch/internal/scriptgen"
	"github.com/AlperenUlu/gigmatch/pkg/logger"
)

func main() {
	var (
		customers   = flag.Int("customers", scriptgen.DefaultCustomers, "Number of customers to register")
		freelancers = flag.Int("freelancers", scriptgen.DefaultFreelancers, "Number of freelancers to register")
		commands    = flag.Int("commands", scriptgen.DefaultCommands, "Number of commands after registration")
		seed        = flag.Int64("seed", scriptgen.DefaultSeed, "Random seed; same seed yields the same script")
		output      = flag.String("output", "", "Output file (default: script_TIMESTAMP.txt)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	path := *output
	if path == "" {
		path = "script_" + time.Now().Format("20060102_150405") + ".txt"
	}

	gen := scriptgen.New(scriptgen.Config{
		NumCustomers:   *customers,
		NumFreelancers: *freelancers,
		NumCommands:    *commands,
		Seed:           *seed,
		OutputFile:     path,
	})

	ctx := context.Background()
	lines := gen.Generate(ctx)
	if err := scriptgen.WriteScript(path, lines); err != nil {
		os.Stderr.WriteString("failed to write script: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Println("wrote", len(lines), "commands to", path)
}
