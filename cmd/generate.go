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
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vprotasov/armory-take-home/internal/logmerge"
)

// maxTimestampStep is the largest random gap, in milliseconds, between
// consecutive lines of a generated file.
const maxTimestampStep = 100_000

func init() {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate pre-sorted test log files",
		Long: `Write test_<i>.log files filled with monotonically increasing ISO-8601
UTC timestamps and synthetic event text, suitable as merge input.`,
		RunE: func(c *cobra.Command, _ []string) error {
			dir, _ := c.Flags().GetString("dir")
			files, _ := c.Flags().GetInt("files")
			lines, _ := c.Flags().GetInt("lines")
			seed, _ := c.Flags().GetInt64("seed")
			return runGenerate(dir, files, lines, seed)
		},
	}

	rootCmd.AddCommand(cmd)

	cmd.Flags().String("dir", ".", "Directory to write the generated files into")
	cmd.Flags().Int("files", 30, "Number of log files to generate")
	cmd.Flags().Int("lines", 1_000_000, "Number of lines per file")
	cmd.Flags().Int64("seed", 0, "Random seed; 0 seeds from the current time")
}

func runGenerate(dir string, files, lines int, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	start := time.Now().UnixMilli()

	for i := 0; i < files; i++ {
		if err := writeTestLog(filepath.Join(dir, fmt.Sprintf("test_%d.log", i)), i, lines, start, rng); err != nil {
			return err
		}
	}
	return nil
}

func writeTestLog(path string, fileIndex, lines int, start int64, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	ts := start
	for j := 0; j < lines; j++ {
		ts += int64(rng.Intn(maxTimestampStep))
		fmt.Fprintf(w, "%s,%d test%d\n", logmerge.FormatTimestamp(ts), j, fileIndex)
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
