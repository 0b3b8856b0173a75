package cmd

import (
	"fmt"

	"github.com/kerbaras/pokedex/pkg/utils"
	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share [name or number]",
	Short: "Print a one-line summary to share",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		copyText, _ := cmd.Flags().GetBool("copy")

		ctrl := controller(cmd)
		p, err := ctrl.Lookup(cmd.Context(), utils.NormalizeKey(args[0]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !copyText {
			fmt.Fprintln(out, utils.ShareText(p))
			return nil
		}

		text, err := ctrl.Share(p)
		fmt.Fprintln(out, text)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ctrl.Clipboard.LastError())
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied!")
		return nil
	},
}

func init() {
	shareCmd.Flags().BoolP("copy", "c", false, "also copy the text to the clipboard")
}
