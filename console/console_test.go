package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heat/calculator"
	"heat/model"
)

func testConfig() calculator.Config {
	cfg := calculator.DefaultConfig()
	cfg.FrameInterval = 0
	cfg.Clear = false
	return cfg
}

func TestConsole_ReadEnv(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("3 2\n10\n2 1 99.5\n0.3\n"), &out, testConfig())

	env, err := c.ReadEnv()
	require.NoError(t, err)
	assert.Equal(t, model.Env{
		Width:              3,
		Height:             2,
		InitialTemperature: 10,
		Inject:             &model.HeatPoint{X: 2, Y: 1, Temperature: 99.5},
		Resistance:         0.3,
	}, env)
	assert.Contains(t, out.String(), "   10.00   10.00\n")
	assert.Contains(t, out.String(), "   10.00   99.50\n")
}

func TestConsole_ReadEnvInvalid(t *testing.T) {
	inputs := map[string]string{
		"zero width":          "0 3\n",
		"negative height":     "3 -1\n",
		"not a number":        "3 3\nhot\n",
		"inject out of sheet": "3 3\n0\n3 0 100\n",
		"resistance too big":  "3 3\n0\n1 1 100\n1.5\n",
		"truncated":           "3 3\n0\n1",
		"nan resistance":      "3 3\n0\n1 1 100\nnan\n",
		"inf temperature":     "3 3\ninf\n",
		"inf injection":       "3 3\n0\n1 1 -Inf\n",
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			c := New(strings.NewReader(in), &bytes.Buffer{}, testConfig())
			_, err := c.ReadEnv()
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestConsole_RunConverges(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("3 3\n0\n1 1 100\n1\ngo\n"), &out, testConfig())

	require.NoError(t, c.Run(context.Background()))
	s := out.String()
	assert.Contains(t, s, "Ready to run. Type anything to begin execution.")
	assert.Contains(t, s, "Frame: 0\n")
	assert.Contains(t, s, "Frame: 1\n")
	assert.NotContains(t, s, "Frame: 2\n")
	assert.Contains(t, s, "Delta: 0\n")
	assert.True(t, strings.HasSuffix(s, "Simulation Finished.\n"))
}

func TestConsole_RunNonConvergent(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("2 2\n0\n0 0 100\n0\ngo\n"), &out, testConfig())

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, calculator.ErrNonConvergent)
	assert.Contains(t, out.String(), "Frame: 301\n")
	assert.Contains(t, out.String(), "Run failed. Array did not converge.")
	assert.NotContains(t, out.String(), "Simulation Finished.")
}

func TestConsole_RunInvalid(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("0 0\n"), &out, testConfig())

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, out.String(), "Invalid input.")
}

func TestConsole_ClearScreen(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig()
	cfg.Clear = true
	New(strings.NewReader(""), &out, cfg).PrintGrid([][]float64{{1}})
	assert.Equal(t, clearScreen+"    1.00\n", out.String())
}

func TestConsole_RunNaNResistance(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("3 3\n0\n1 1 100\nNaN\ngo\n"), &out, testConfig())

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, out.String(), "Invalid input.")
	assert.NotContains(t, out.String(), "Ready to run.")
}

func TestConsole_InfTemperatureNotPrinted(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("2 2\n+Inf\n"), &out, testConfig())

	_, err := c.ReadEnv()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotContains(t, out.String(), "Inf")
}
