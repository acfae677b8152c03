package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/FlorianWoerz/concealSATgen/internal/generator"
	"github.com/samber/lo"
)

func main() {
	// Define arguments
	nPtr := flag.Int("n", -1, "Number of variables in the formula")
	mPtr := flag.Int("m", -1, "Number of clauses to generate")
	kPtr := flag.Int("k", 3, "Width of each clause")
	pPtr := flag.String("p", "", "Comma- or space-separated p-values, where the i-th entry is the probability to keep a sampled clause with i literals satisfied under the hidden solution; defaults to 1.00 for every class")
	sPtr := flag.Int64("s", 42, "Seed to initialize the random number generator")
	fPtr := flag.String("F", "", "Path to the file which contains the wanted hidden solution; if empty, a random one is generated")
	oPtr := flag.String("o", "./", "Output path for the generated DIMACS file")
	configPtr := flag.String("config", "", "Path to a JSON job file; replaces the other flags")
	flag.Parse()

	passed := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { passed[f.Name] = true })

	var (
		job            generator.Job
		terminalString string
	)

	if *configPtr != "" {
		var err error
		job, err = generator.JobFromJson(*configPtr)
		if err != nil {
			log.Fatalf("cannot parse job file: %v", err)
		}
		terminalString = "Created by calling concealSATgen -config " + *configPtr
	} else {
		// Validate arguments
		if *nPtr < 0 || *mPtr < 0 {
			log.Fatal("parameters n and m must be passed and non-negative")
		} else if *kPtr <= 0 {
			log.Fatal("parameter k must be positive")
		}

		pValues, err := parsePValues(*pPtr, *kPtr)
		if err != nil {
			log.Fatalf("cannot parse p-values: %v", err)
		}

		job = generator.Job{
			N:          uint64(*nPtr),
			M:          uint64(*mPtr),
			K:          uint64(*kPtr),
			P:          pValues,
			Seed:       *sPtr,
			HiddenFile: *fPtr,
			Out:        *oPtr,
		}
		terminalString = terminalStringFromFlags(passed, *nPtr, *mPtr, *kPtr, *pPtr, *sPtr, *fPtr, *oPtr)
	}

	params := job.Params()
	if err := generator.ValidateParams(params); err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	// Extract the hidden solution, if one was supplied
	var hidden generator.HiddenAssignment
	if job.HiddenFile != "" {
		var err error
		hidden, err = generator.HiddenAssignmentFromFile(job.HiddenFile, params.N)
		if err != nil {
			log.Fatalf("cannot use hidden solution file: %v", err)
		}
	}

	// Build the formula
	formula, positives, err := generator.Generate(params, hidden)
	if err != nil {
		log.Fatalf("an error occurred during formula generation: %v", err)
	}

	formula.Header = buildHeader(terminalString, positives, params.P)

	// Write the DIMACS file
	if err := os.MkdirAll(job.Out, 0755); err != nil {
		log.Fatalf("cannot create output directory: %v", err)
	}
	fileName := fmt.Sprintf("gen_n%d_m%d_k%dSAT_seed%d.cnf", params.N, params.M, params.K, params.Seed)
	filePath := path.Join(job.Out, fileName)
	if err := os.WriteFile(filePath, []byte(formula.ToDIMACS()), 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	fmt.Printf("Variables: %v\n", formula.Variables)
	fmt.Printf("Clauses: %v\n", formula.Len())
	fmt.Printf("Output: %v\n", filePath)
}

func parsePValues(raw string, k int) ([]float64, error) {
	if raw == "" {
		pValues := make([]float64, k)
		for i := range pValues {
			pValues[i] = 1.0
		}
		return pValues, nil
	}

	fields := strings.Fields(strings.ReplaceAll(raw, ",", " "))
	pValues := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid p-value", field)
		}
		pValues = append(pValues, value)
	}
	return pValues, nil
}

// terminalStringFromFlags reconstructs the invocation, listing only the flags
// that were explicitly passed, so a generated file records how to reproduce it.
func terminalStringFromFlags(passed map[string]bool, n, m, k int, p string, s int64, f, o string) string {
	terminalString := fmt.Sprintf("Created by calling concealSATgen -n %v -m %v", n, m)
	if passed["k"] {
		terminalString += fmt.Sprintf(" -k %v", k)
	}
	if passed["p"] {
		terminalString += " -p " + strings.Join(strings.Fields(strings.ReplaceAll(p, ",", " ")), " ")
	}
	if passed["s"] {
		terminalString += fmt.Sprintf(" -s %v", s)
	}
	if passed["F"] {
		terminalString += " -F " + f
	}
	if passed["o"] {
		terminalString += " -o " + o
	}
	return terminalString
}

func buildHeader(terminalString string, positives []uint64, pValues []float64) string {
	positiveStrings := lo.Map(positives, func(variable uint64, _ int) string {
		return strconv.FormatUint(variable, 10)
	})
	pValueStrings := lo.Map(pValues, func(value float64, _ int) string {
		return strconv.FormatFloat(value, 'f', 2, 64)
	})

	return strings.Join([]string{
		"This file was generated by concealSATgen",
		terminalString,
		"Hidden solution: " + strings.Join(positiveStrings, " "),
		"p-values " + strings.Join(pValueStrings, " "),
	}, "\n")
}
