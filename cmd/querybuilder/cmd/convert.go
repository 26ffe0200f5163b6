package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/solatis/querybuilder/internal/expression"
	"github.com/solatis/querybuilder/internal/types"
	"github.com/spf13/cobra"
)

var serializeCmd = &cobra.Command{
	Use:   "serialize",
	Short: "Write a row (JSON) as an expression",
	Args:  cobra.NoArgs,
	RunE:  runSerialize,
}

var parseCmd = &cobra.Command{
	Use:   "parse EXPR",
	Short: "Read an expression into a row (JSON)",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [EXPR]",
	Short: "Evaluate an expression or row against a JSON payload",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvaluate,
}

func init() {
	rootCmd.AddCommand(serializeCmd, parseCmd, evaluateCmd)

	serializeCmd.Flags().String("row", "-", "row JSON file (- for stdin)")
	parseCmd.Flags().String("previous", "", "previous row JSON file; unchanged segments keep their ids")
	evaluateCmd.Flags().String("payload", "", "JSON payload tokens resolve against")
	evaluateCmd.Flags().String("row", "", "row JSON file, instead of EXPR")
}

func newConverter() (*expression.Converter, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return expression.NewConverter(types.UUIDGenerator{}, cfg.Converter.ConverterOptions()), nil
}

func readRow(cmd *cobra.Command, path string) (types.RowItem, error) {
	var row types.RowItem
	data, err := readInput(cmd, path)
	if err != nil {
		return row, err
	}
	if err := json.Unmarshal(data, &row); err != nil {
		return row, fmt.Errorf("invalid row JSON: %w", err)
	}
	return row, nil
}

func runSerialize(cmd *cobra.Command, args []string) error {
	conv, err := newConverter()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("row")
	row, err := readRow(cmd, path)
	if err != nil {
		return err
	}

	text, err := conv.Serialize(row)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func runParse(cmd *cobra.Command, args []string) error {
	conv, err := newConverter()
	if err != nil {
		return err
	}

	var previous types.RowItem
	if path, _ := cmd.Flags().GetString("previous"); path != "" {
		if previous, err = readRow(cmd, path); err != nil {
			return err
		}
	}

	row, err := conv.Parse(args[0], previous)
	if err != nil {
		return err
	}
	return printJSON(cmd, row)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	conv, err := newConverter()
	if err != nil {
		return err
	}

	rowPath, _ := cmd.Flags().GetString("row")
	if (len(args) == 1) == (rowPath != "") {
		return fmt.Errorf("exactly one of EXPR or --row is required")
	}

	var resolver expression.TokenResolver
	if path, _ := cmd.Flags().GetString("payload"); path != "" {
		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		pr, err := expression.NewPayloadResolver(data)
		if err != nil {
			return err
		}
		resolver = pr
	}

	var result expression.Result
	if rowPath != "" {
		row, err := readRow(cmd, rowPath)
		if err != nil {
			return err
		}
		result, err = conv.Evaluate(row, resolver)
		if err != nil {
			return err
		}
	} else {
		result, err = conv.EvaluateExpression(args[0], resolver)
		if err != nil {
			return err
		}
	}

	return printJSON(cmd, map[string]any{
		"matched":  result.Matched,
		"operator": result.Operator,
		"left":     result.Left,
		"right":    result.Right,
	})
}
