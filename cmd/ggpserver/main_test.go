package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/dekarrin/ggpagent/internal/search"
)

func Test_parseLogLevel_named(t *testing.T) {
	testCases := []struct {
		name string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"critical", zapcore.FatalLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLogLevel(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_parseLogLevel_integer(t *testing.T) {
	got, err := parseLogLevel("-1")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, got)
}

func Test_parseLogLevel_unrecognized(t *testing.T) {
	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

func Test_parseHeuristic(t *testing.T) {
	testCases := []struct {
		name string
		want search.Heuristic
	}{
		{"zero", search.HeuristicZero},
		{"utility", search.HeuristicUtility},
		{"mobility", search.HeuristicMobility},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseHeuristic(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_parseHeuristic_unknown(t *testing.T) {
	_, err := parseHeuristic("nonsense")
	assert.Error(t, err)
}
