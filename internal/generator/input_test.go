package generator

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeJobFile(t *testing.T, content string) string {
	t.Helper()
	file := path.Join(t.TempDir(), "job.json")
	assert.NoError(t, os.WriteFile(file, []byte(content), 0666))
	return file
}

func TestJobFromJson(t *testing.T) {
	// Arrange
	file := writeJobFile(t, `{
		"n": 100,
		"m": 420,
		"k": 3,
		"p": [0.5, 0.8, 1.0],
		"seed": 7,
		"hiddenFile": "hidden.txt",
		"out": "instances/"
	}`)

	// Act
	job, err := JobFromJson(file)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, Job{
		N:          100,
		M:          420,
		K:          3,
		P:          []float64{0.5, 0.8, 1.0},
		Seed:       7,
		HiddenFile: "hidden.txt",
		Out:        "instances/",
	}, job)
}

func TestJobFromJsonAppliesDefaults(t *testing.T) {
	// Arrange
	file := writeJobFile(t, `{"n": 20, "m": 50}`)

	// Act
	job, err := JobFromJson(file)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), job.K)
	assert.Equal(t, []float64{1, 1, 1}, job.P)
	assert.Equal(t, int64(42), job.Seed)
	assert.Equal(t, "./", job.Out)
}

func TestJobFromJsonSeedZeroIsKept(t *testing.T) {
	file := writeJobFile(t, `{"n": 20, "m": 50, "seed": 0}`)

	job, err := JobFromJson(file)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), job.Seed)
}

func TestJobFromJsonErrors(t *testing.T) {
	// Missing file
	_, err := JobFromJson(path.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	// Malformed JSON
	_, err = JobFromJson(writeJobFile(t, `{"n": `))
	assert.ErrorContains(t, err, "cannot parse")
}

func TestJobParamsProjection(t *testing.T) {
	job := Job{N: 10, M: 30, K: 3, P: []float64{1, 1, 1}, Seed: 5, Out: "./"}

	assert.Equal(t, Params{N: 10, M: 30, K: 3, P: []float64{1, 1, 1}, Seed: 5}, job.Params())
}
