package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/solatis/querybuilder/internal/core/db"
	"github.com/solatis/querybuilder/internal/schema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage data mapper schema files",
}

var schemaImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a schema file (.xsd, .xml, .json) into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaImport,
}

var schemaGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print a stored schema file as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaGet,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored schema files under a path",
	Args:  cobra.NoArgs,
	RunE:  runSchemaList,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaImportCmd, schemaGetCmd, schemaListCmd)
	schemaCmd.PersistentFlags().String("path", "", "schema file path the file is stored under")
}

// withStore opens the database, checks migrations and runs fn with a store.
func withStore(ctx context.Context, fn func(*schema.Store) error) error {
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := requireMigrated(ctx, database); err != nil {
		return err
	}

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}
	return fn(schema.NewStore(queries))
}

func runSchemaImport(cmd *cobra.Command, args []string) error {
	content, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("path")

	return withStore(cmd.Context(), func(store *schema.Store) error {
		s, err := store.PutSchemaFile(cmd.Context(), filepath.Base(args[0]), path, string(content))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%s) into %q\n", s.FileName, s.Type, s.FilePath)
		return nil
	})
}

func runSchemaGet(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")

	return withStore(cmd.Context(), func(store *schema.Store) error {
		s, err := schema.GetSelectedSchema(cmd.Context(), store, args[0], path)
		if err != nil {
			return err
		}
		return printJSON(cmd, s)
	})
}

func runSchemaList(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")

	return withStore(cmd.Context(), func(store *schema.Store) error {
		schemas, err := store.ListSchemaFiles(cmd.Context(), path)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tTYPE\tTARGET NAMESPACE\tCREATED AT")
		for _, s := range schemas {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.FileName, s.Type, s.TargetNamespace, s.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	})
}
