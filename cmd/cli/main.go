package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"sales-forecast/internal/api/models"
	"sales-forecast/internal/data"
	"sales-forecast/internal/pipeline"
	"sales-forecast/internal/report"
	"sales-forecast/internal/scenario"
)

const defaultModel = "models/sales_model_pipeline2.json"

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	os.Exit(exitCode(run(os.Args[1], os.Args[2:], os.Stdout)))
}

// exitCode maps a command result to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		// The flag set has already printed its defaults.
		return 0
	case errors.Is(err, errUsage):
		usage()
		return 2
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
}

func run(cmd string, args []string, stdout io.Writer) error {
	switch cmd {
	case "predict":
		return cmdPredict(args, stdout)
	case "whatif":
		return cmdWhatIf(args, stdout)
	case "inspect":
		return cmdInspect(args, stdout)
	default:
		return errUsage
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli predict --model models/sales_model_pipeline2.json --input row.json")
	fmt.Println("  cli whatif  --model models/sales_model_pipeline2.json --input whatif.json [--fuel 10] [--markdown 5] [--holiday 1] [--out results/whatif.csv]")
	fmt.Println("  cli inspect --model models/sales_model_pipeline2.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - input files use the same JSON bodies as POST /predict and POST /whatif")
	fmt.Println("  - --fuel, --markdown and --holiday override the values in the input file")
}

func cmdPredict(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	modelPath := fs.String("model", defaultModel, "Path to the model artifact (JSON or YAML)")
	inputPath := fs.String("input", "", "Path to a /predict JSON body")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inputPath == "" {
		return fmt.Errorf("--input is required")
	}

	p, err := pipeline.Load(*modelPath)
	if err != nil {
		return err
	}
	row, err := data.LoadStoreWeek(*inputPath)
	if err != nil {
		return err
	}
	y, err := p.Predict(row)
	if err != nil {
		return err
	}
	return writeJSON(stdout, models.PredictResponse{PredictedSales: y})
}

func cmdWhatIf(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("whatif", flag.ContinueOnError)
	modelPath := fs.String("model", defaultModel, "Path to the model artifact (JSON or YAML)")
	inputPath := fs.String("input", "", "Path to a /whatif JSON body")
	fuel := fs.Float64("fuel", 0, "Fuel price change in percent")
	markdown := fs.Float64("markdown", 0, "Markdown change in percent")
	holiday := fs.Int("holiday", 0, "Holiday flag for the scenario week")
	outPath := fs.String("out", "", "Optional CSV comparison report path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inputPath == "" {
		return fmt.Errorf("--input is required")
	}

	p, err := pipeline.Load(*modelPath)
	if err != nil {
		return err
	}
	row, adj, err := data.LoadWhatIf(*inputPath)
	if err != nil {
		return err
	}

	// Only flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fuel":
			adj.FuelIncreasePct = *fuel
		case "markdown":
			adj.MarkdownIncreasePct = *markdown
		case "holiday":
			h := *holiday
			adj.ToggleHoliday = &h
		}
	})

	res, err := scenario.Evaluate(p, row, adj)
	if err != nil {
		return err
	}
	if *outPath != "" {
		if err := report.WriteWhatIfFile(*outPath, row, res); err != nil {
			return err
		}
	}
	return writeJSON(stdout, models.NewWhatIfResponse(res))
}

func cmdInspect(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	modelPath := fs.String("model", defaultModel, "Path to the model artifact (JSON or YAML)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pipeline.Load(*modelPath)
	if err != nil {
		return err
	}
	return writeJSON(stdout, models.ModelInfoResponse{Info: p.Info()})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
