package main

import (
	"fmt"
	"io"

	"github.com/guardian-of-arcadia/aetherius/aetherius/leveling"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
	"github.com/spf13/cobra"
)

var (
	curveLevels     int
	curveMultiplier int64
)

var curveCMD = &cobra.Command{
	Use:   "curve",
	Short: "Print the XP required for each level",
	RunE: func(cmd *cobra.Command, args []string) error {
		if curveLevels < 1 {
			return fmt.Errorf("levels must be positive, got %d", curveLevels)
		}
		printCurve(cmd.OutOrStdout(), leveling.NewCalculator(curveMultiplier), curveLevels)
		return nil
	},
}

func init() {
	curveCMD.Flags().IntVar(&curveLevels, "levels", 20, "number of levels to print")
	curveCMD.Flags().Int64Var(&curveMultiplier, "multiplier", 100, "level multiplier")
	rootCmd.AddCommand(curveCMD)
}

func printCurve(w io.Writer, calc *leveling.Calculator, levels int) {
	unlocks := make(map[int]string)
	for _, r := range leveling.RoleRewards() {
		unlocks[r.Level] = r.Role
	}

	fmt.Fprintf(w, "%-6s %12s %10s  %s\n", "LEVEL", "TOTAL XP", "STEP", "UNLOCKS")
	for level := 1; level <= levels; level++ {
		step := int64(0)
		if level > 1 {
			step = calc.PointsRequiredFor(level) - calc.PointsRequiredFor(level-1)
		}
		fmt.Fprintf(w, "%-6d %12s %10s  %s\n", level,
			utils.FormatNumber(calc.PointsRequiredFor(level)),
			utils.FormatNumber(step),
			unlocks[level])
	}
}
