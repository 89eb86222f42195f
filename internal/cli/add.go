package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Append an item to the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("nothing to add")
			}
			rt, err := openRuntime(flags)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := rt.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			rt.store.FinishLoading(rt.adapter.Load(cmd.Context()))
			snap := rt.store.AddItem(text)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %q (%d left)\n", text, snap.ActiveCount)
			return err
		},
	}
}
