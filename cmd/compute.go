package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnoverse/rangelogic/formatter"
	"github.com/gnoverse/rangelogic/rangeset"
)

var computeCmd = &cobra.Command{
	Use:   "compute <op> <left> <right>",
	Short: "Apply an operator to two range lists",
	Long: `Applies a binary operator to two range lists written as YAML sequences
of values or [min, max] pairs.
Example) rangelogic compute '>=' '[[1, 99]]' '[10]'`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCompute(os.Stdout, args[0], args[1], args[2]); err != nil {
			logger.Error("Error computing range", zap.Error(err))
			os.Exit(1)
		}
	},
}

func runCompute(w io.Writer, opToken, leftText, rightText string) error {
	op, err := rangeset.ParseOperator(opToken)
	if err != nil {
		return err
	}
	left, err := parseRangeList(leftText)
	if err != nil {
		return fmt.Errorf("left operand: %w", err)
	}
	right, err := parseRangeList(rightText)
	if err != nil {
		return fmt.Errorf("right operand: %w", err)
	}

	out, err := rangeset.Compute(op, left, right)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s %s %s = %s (%s)\n", left, op, right, out, formatter.DescribeRange(out))
	return err
}

func parseRangeList(text string) (*rangeset.List, error) {
	list := rangeset.New()
	if err := yaml.Unmarshal([]byte(text), list); err != nil {
		return nil, err
	}
	return list, nil
}
