package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	a := &app{}
	rootCmd := a.newRootCommand()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := a.run(context.Background(), rootCmd)
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBatchFailureError(t *testing.T) {
	err := &BatchFailureError{Failed: 2, Total: 5}
	assert.Equal(t, "batch completed with 2 of 5 evaluation(s) failed", err.Error())

	var target *BatchFailureError
	assert.True(t, errors.As(errors.Join(err, errors.New("context")), &target))
}

func TestScoreCommands_Defaults(t *testing.T) {
	tests := []struct {
		command    string
		calculator string
		resultKey  string
	}{
		{"bio-age", "bio-age", "bioAge"},
		{"cardio", "cardiovascular-risk", "tenYearRisk"},
		{"metabolic", "metabolic-health", "totalScore"},
		{"body-comp", "body-composition", "bodyFatPercentage"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			out, err := runCLI(t, "", tt.command)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.calculator, got["calculator"])

			result, ok := got["result"].(map[string]any)
			require.True(t, ok, "result should be an object")
			assert.Contains(t, result, tt.resultKey)
			assert.Empty(t, got["warnings"])
		})
	}
}

func TestCardioCommand_YAMLInputOverDefaults(t *testing.T) {
	path := writeFile(t, "cardio.yaml", "smoker: true\nsystolicBP: 150\n")

	out, err := runCLI(t, "", "cardio", "--input", path)
	require.NoError(t, err)

	var got struct {
		Input struct {
			Age    float64 `json:"age"`
			Smoker bool    `json:"smoker"`
		} `json:"input"`
		Result struct {
			RiskFactors []struct {
				Key    string `json:"key"`
				Impact string `json:"impact"`
			} `json:"riskFactors"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 50.0, got.Input.Age)
	assert.True(t, got.Input.Smoker)

	keys := make([]string, 0, len(got.Result.RiskFactors))
	for _, rf := range got.Result.RiskFactors {
		keys = append(keys, rf.Key)
	}
	assert.Equal(t, []string{"age", "bloodPressure", "smoking"}, keys)
}

func TestMetabolicCommand_StdinAndYAMLOutput(t *testing.T) {
	out, err := runCLI(t, `{"fastingGlucose": 130, "hba1c": 6.8}`, "metabolic", "--input", "-", "--format", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "metabolic-health", got["calculator"])

	result, ok := got["result"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, result, "metabolicFactors")
	assert.NotEmpty(t, result["recommendations"])
}

func TestScoreCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown field",
			stdin:   `{"cholesterol": 200}`,
			args:    []string{"cardio", "--input", "-"},
			wantErr: "unknown field",
		},
		{
			name:    "invalid gender",
			stdin:   `{"gender": "x"}`,
			args:    []string{"body-comp", "--input", "-"},
			wantErr: "invalid input",
		},
		{
			name:    "missing file",
			args:    []string{"bio-age", "--input", filepath.Join(t.TempDir(), "missing.json")},
			wantErr: "failed to read input",
		},
		{
			name:    "bad format",
			args:    []string{"bio-age", "--format", "xml"},
			wantErr: "unsupported output format",
		},
		{
			name:    "unexpected argument",
			args:    []string{"metabolic", "extra"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBatchCommand_JSONLines(t *testing.T) {
	stdin := strings.Join([]string{
		`{"id": "a", "calculator": "bio-age", "input": {"age": 40, "gender": "female", "glucose": 110, "crp": 2, "albumin": 4.2, "creatinine": 0.8, "bun": 14, "alt": 25, "hdl": 55, "ldl": 130, "hba1c": 5.8, "wbc": 6}}`,
		``,
		`{"id": "b", "calculator": "cardio", "input": {"age": 60, "gender": "male", "totalCholesterol": 230, "hdl": 38, "systolicBP": 142}}`,
		`{"id": "c", "calculator": "liver", "input": {}}`,
	}, "\n")

	out, err := runCLI(t, stdin, "batch")

	var failure *BatchFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 1, failure.Failed)
	assert.Equal(t, 3, failure.Total)

	var got struct {
		Summary struct {
			Total     int `json:"total"`
			Succeeded int `json:"succeeded"`
			Failed    int `json:"failed"`
		} `json:"summary"`
		Responses []struct {
			ID     string          `json:"id"`
			Result json.RawMessage `json:"result"`
			Error  *struct {
				Code string `json:"code"`
			} `json:"error"`
		} `json:"responses"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 3, got.Summary.Total)
	assert.Equal(t, 2, got.Summary.Succeeded)
	require.Len(t, got.Responses, 3)
	assert.Equal(t, "a", got.Responses[0].ID)
	assert.Equal(t, "b", got.Responses[1].ID)
	assert.Equal(t, "c", got.Responses[2].ID)
	assert.Nil(t, got.Responses[0].Error)
	require.NotNil(t, got.Responses[2].Error)
	assert.Equal(t, "UNKNOWN_CALCULATOR", got.Responses[2].Error.Code)
}

func TestBatchCommand_JSONArrayFile(t *testing.T) {
	path := writeFile(t, "requests.json", `[
  {"id": "m", "calculator": "metabolic", "input": {"fastingGlucose": 90, "postprandialGlucose": 120, "hba1c": 5.3, "fastingInsulin": 6, "triglycerides": 90, "hdl": 60, "weight": 68, "height": 172, "waistCircumference": 78}},
  {"id": "bc", "calculator": "body-comp", "input": {"age": 29, "gender": "female", "weight": 60, "height": 165, "waistCircumference": 70, "neckCircumference": 32, "hipCircumference": 95}}
]`)

	out, err := runCLI(t, "", "batch", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"succeeded": 2`)
}

func TestParseRequests(t *testing.T) {
	_, err := parseRequests([]byte("   \n"))
	assert.Error(t, err)

	_, err = parseRequests([]byte("{\"id\": \"a\"}\nnot json\n"))
	assert.ErrorContains(t, err, "line 2")

	reqs, err := parseRequests([]byte(`{"calculator": "cardio", "input": {"age": 50}}`))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "cardio", reqs[0].Calculator)
	assert.JSONEq(t, `{"age": 50}`, string(reqs[0].Input))
}

func TestRangesCommand(t *testing.T) {
	t.Run("Text_All", func(t *testing.T) {
		out, err := runCLI(t, "", "ranges")
		require.NoError(t, err)
		for _, want := range []string{"bio-age", "cardiovascular-risk", "metabolic-health", "body-composition", "systolicBP", "90-129"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("JSON_Single", func(t *testing.T) {
		out, err := runCLI(t, "", "ranges", "metabolic", "--format", "json")
		require.NoError(t, err)

		var got struct {
			Calculator string `json:"calculator"`
			Ranges     []struct {
				Field string `json:"field"`
			} `json:"ranges"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "metabolic-health", got.Calculator)
		require.NotEmpty(t, got.Ranges)
		assert.Equal(t, "fastingGlucose", got.Ranges[0].Field)
	})

	t.Run("Assess_Input", func(t *testing.T) {
		out, err := runCLI(t, `{"glucose": 130}`, "ranges", "bio-age", "--input", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "VALUE")
		assert.Contains(t, out, "glucose")
		assert.Contains(t, out, "high")
	})

	t.Run("Input_Needs_Calculator", func(t *testing.T) {
		_, err := runCLI(t, `{}`, "ranges", "--input", "-")
		assert.ErrorContains(t, err, "requires a calculator")
	})

	t.Run("Unknown_Calculator", func(t *testing.T) {
		_, err := runCLI(t, "", "ranges", "liver")
		assert.ErrorContains(t, err, "unknown calculator")
	})
}

func TestRootCommand_ConfigFile(t *testing.T) {
	path := writeFile(t, "healthscore.yaml", "logging:\n  format: xml\n")

	_, err := runCLI(t, "", "--config", path, "bio-age")
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = runCLI(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"), "bio-age")
	assert.Error(t, err)
}

func TestApp_Run_ClosesLogFileOnFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "healthscore.log")
	configPath := writeFile(t, "healthscore.yaml", "logging:\n  level: debug\n  output: "+logPath+"\n")
	inputPath := writeFile(t, "cardio.json", `{"cholesterol": 200}`)

	a := &app{}
	cmd := a.newRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", configPath, "cardio", "--input", inputPath})

	err := a.run(context.Background(), cmd)
	assert.ErrorContains(t, err, "unknown field")

	require.NotNil(t, a.logger)
	f, ok := a.logger.Out.(*os.File)
	require.True(t, ok, "logger should write to the configured file")
	assert.ErrorIs(t, f.Close(), os.ErrClosed)
	assert.Nil(t, a.closer)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Configuration loaded")
}
