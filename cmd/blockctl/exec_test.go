package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockmem/internal/config"
	"github.com/joshuapare/blockmem/memory/scenario"
)

func TestExecCommand(t *testing.T) {
	tests := []struct {
		name           string
		strategy       string
		args           []string
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name: "prints final layout when no step prints",
			args: []string{"first=30", "next=50"},
			wantContain: []string{
				"Start: 0 KB, Size: 30 KB, Allocated",
				"Start: 30 KB, Size: 50 KB, Allocated",
				"Start: 80 KB, Size: 48 KB, Free",
			},
		},
		{
			name:     "bare sizes use configured strategy",
			strategy: "best",
			// [used 40][free 10][used 15][free 63] -> best-fit 8 lands at 40
			args: []string{"40", "10", "15", "free=40", "alloc=8"},
			wantContain: []string{
				"Start: 40 KB, Size: 8 KB, Allocated",
				"Start: 48 KB, Size: 2 KB, Free",
			},
		},
		{
			name: "failed request is reported and replay continues",
			args: []string{"first=100", "best=50", "free=0"},
			wantContain: []string{
				"best=50: alloc: no free block large enough",
				"Start: 0 KB, Size: 128 KB, Free",
			},
		},
		{
			name:           "bad free is reported",
			args:           []string{"first=10", "free=5"},
			wantContain:    []string{"free=5: alloc: no block starts at address"},
			wantNotContain: []string{"Start: 5 KB"},
		},
		{
			name:    "unparseable step",
			args:    []string{"first=10", "worst=3"},
			wantErr: true,
		},
		{
			name:    "zero size",
			args:    []string{"next=0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, func(c *config.Config) {
				if tt.strategy != "" {
					c.Strategy = tt.strategy
				}
			})

			out, err := captureOutput(t, func() error { return runExec(tt.args) })

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assertContains(t, out, tt.wantContain)
			assertNotContains(t, out, tt.wantNotContain)
		})
	}
}

func TestExecCommand_BadStepWrapsSentinel(t *testing.T) {
	useConfig(t, nil)

	_, err := captureOutput(t, func() error { return runExec([]string{"print=1"}) })

	require.ErrorIs(t, err, scenario.ErrBadStep)
	require.Contains(t, err.Error(), "argument 1")
}

func TestExecCommand_LenientFree(t *testing.T) {
	useConfig(t, func(c *config.Config) { c.LenientFree = true })

	out, err := captureOutput(t, func() error { return runExec([]string{"first=10", "free=5", "free=10"}) })

	require.NoError(t, err)
	assertNotContains(t, out, []string{"no block starts", "not allocated"})
}

func TestExpandDefaultStrategy(t *testing.T) {
	useConfig(t, func(c *config.Config) { c.Strategy = "next" })

	got := expandDefaultStrategy([]string{"12", "alloc=4", "best=3", "free=0", "print"})

	require.Equal(t, []string{"next=12", "next=4", "best=3", "free=0", "print"}, got)
}
