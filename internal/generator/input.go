package generator

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Job is a declarative generation request, typically read from a JSON file.
// Omitted fields fall back to the CLI defaults: k=3, p=[1,...,1], seed=42,
// out="./".
type Job struct {
	N          uint64
	M          uint64
	K          uint64
	P          []float64
	Seed       int64
	HiddenFile string `mapstructure:"hiddenFile"`
	Out        string
}

func JobFromJson(file string) (Job, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return Job{}, fmt.Errorf("cannot read job file: %v", err)
	}

	var jobJson map[string]any
	if err := json.Unmarshal(content, &jobJson); err != nil {
		return Job{}, fmt.Errorf("cannot parse job file: %v", err)
	}

	var job Job
	if err := mapstructure.Decode(jobJson, &job); err != nil {
		return Job{}, fmt.Errorf("cannot decode job file: %v", err)
	}

	if job.K == 0 {
		job.K = 3
	}
	if job.P == nil {
		job.P = make([]float64, job.K)
		for i := range job.P {
			job.P[i] = 1.0
		}
	}
	if _, ok := jobJson["seed"]; !ok {
		job.Seed = 42
	}
	if job.Out == "" {
		job.Out = "./"
	}

	return job, nil
}

// Params projects the job onto the generator's parameter set.
func (job Job) Params() Params {
	return Params{
		N:    job.N,
		M:    job.M,
		K:    job.K,
		P:    job.P,
		Seed: job.Seed,
	}
}
