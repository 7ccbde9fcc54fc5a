package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		arg  string
		want Step
	}{
		{arg: "open:menu", want: Step{Kind: StepOpen, Name: "menu"}},
		{arg: "close:menu", want: Step{Kind: StepClose, Name: "menu"}},
		{arg: "close-top", want: Step{Kind: StepCloseTop}},
		{arg: " close-top-except-init ", want: Step{Kind: StepCloseTopExceptInit}},
		{arg: "close-all", want: Step{Kind: StepCloseAll}},
		{arg: "wait:250ms", want: Step{Kind: StepWait, Wait: 250 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseStep(tt.arg)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseStep_Invalid(t *testing.T) {
	for _, arg := range []string{"", "open", "open:", "jump:menu", "wait:soon", "wait:-1s", "close-all:now"} {
		t.Run(arg, func(t *testing.T) {
			_, err := ParseStep(arg)
			require.Error(t, err)
		})
	}
}

func TestParseSteps(t *testing.T) {
	steps, err := ParseSteps([]string{"open:a", "wait:1s", "close-top"})
	require.NoError(t, err)
	require.Len(t, steps, 3)
	require.Equal(t, "open:a", steps[0].String())
	require.Equal(t, "wait:1s", steps[1].String())
	require.Equal(t, "close-top", steps[2].String())

	_, err = ParseSteps([]string{"open:a", "bogus"})
	require.Error(t, err)
}
