// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "logmerge",
	Short: "Merge pre-sorted log files into one chronological stream",
	Long: `Merge any number of individually time-sorted log files into a single
chronologically ordered stream on stdout, holding one line per file in
memory. Inputs are two-column CSV lines: an ISO-8601 UTC timestamp,
a comma, and the event text.

Diagnostics never interleave with program output; they go to a separate
file in the working directory. Before merging more than ~512 files,
raise the open-file limit (for example "ulimit -n 10000").`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(exitUsage)
	}
}
