// Command variant exercises the representation layer (spec §4.6)
// standalone: loading a variant from its gob-encoded atom sequence,
// running its sanity check, computing a fault/fix localization, and
// applying a single mutation. It is the concrete, testable caller the
// "external search driver" integration point named in spec §1/§4.6
// needs, without this repo itself implementing any search policy.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "variant",
	Short: "Load, sanity-check, localize, and mutate a program variant",
}

var flagBankPath string
var flagConfigPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBankPath, "bank", "", "path to the .ht artifact the code bank is built from")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "optional YAML harness config (compile/test command templates)")
}
