package cmd

import (
	"io"
	"testing"

	"github.com/spf13/pflag"
)

// resetRunFlags undoes the flag state a previous Execute left behind.
// Cobra's group validation looks at Changed, which sticks between
// executions of the same command tree.
func resetRunFlags() {
	runCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestRunFlagValidation(t *testing.T) {
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)

	for _, tt := range []struct {
		name string
		args []string
	}{
		{
			name: "url without email",
			args: []string{"run", "-u", "http://x/verify"},
		},
		{
			name: "email without url",
			args: []string{"run", "-e", "a@b.com"},
		},
		{
			name: "url group with output file",
			args: []string{"run", "-u", "http://x/verify", "-e", "a@b.com", "-o", "out.txt"},
		},
		{
			name: "url group with exit",
			args: []string{"run", "-u", "http://x/verify", "-e", "a@b.com", "-x"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			resetRunFlags()
			rootCmd.SetArgs(tt.args)

			// Validation must fail before any history or agent work,
			// so no error here means the command tried to run.
			if err := rootCmd.Execute(); err == nil {
				t.Error("expected a flag validation error")
			}
		})
	}
}
