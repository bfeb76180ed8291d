package main

import (
	"fmt"

	"github.com/miruken-go/empower"
	"github.com/miruken-go/empower/signature"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check pattern...",
		Short: "Validate call patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out     := cmd.OutOrStdout()
			invalid := 0
			for _, pattern := range args {
				m, err := signature.Parse(pattern)
				if err != nil {
					invalid++
					_, _ = fmt.Fprintf(out, "FAIL %v\n", err)
					continue
				}
				_, _ = fmt.Fprintf(out, "ok   %s (%s, captures %d)\n",
					m, m.Callee.Kind, empower.NumArgsToCapture(m))
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d patterns are invalid", invalid, len(args))
			}
			return nil
		},
	}
}
