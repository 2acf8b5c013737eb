package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rebelice/uuidview/internal/export"
	"github.com/rebelice/uuidview/internal/host"
	"github.com/rebelice/uuidview/internal/models"
	"github.com/rebelice/uuidview/internal/plugin"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, _, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			tables, err := c.Tables(ctx)
			if err != nil {
				return err
			}
			for _, t := range tables {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newFieldsCmd(a *app) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the columns of a table and whether they are shown as UUIDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, dialect, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			admin := a.newAdmin(c, dialect)
			p, err := plugin.New(admin, a.cfg.UUID, plugin.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if table == "" {
				return plugin.ErrNoTableSelected
			}

			fields, err := admin.Fields(ctx, table)
			if err != nil {
				return err
			}

			result := &models.ResultSet{Columns: []string{"column", "type", "comment", "uuid"}}
			for _, f := range fields {
				result.Rows = append(result.Rows, models.Row{
					"column":  f.Name,
					"type":    f.FullType,
					"comment": f.Comment,
					"uuid":    p.IsSuitable(table, f),
				})
			}
			return admin.RenderTable(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table to describe")
	return cmd
}

func newBrowseCmd(a *app) *cobra.Command {
	var (
		table  string
		wheres []string
		format string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search a table and display its rows",
		Example: `  uuidview browse --db app.db -t users
  uuidview browse --db app.db -t users -w "id = 11223344-5566-7788-9900-aabbccddeeff"
  uuidview browse -t users -w "name LIKE A%" --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conditions := make([]models.FilterCondition, 0, len(wheres))
			for _, w := range wheres {
				cond, err := parseCondition(w)
				if err != nil {
					return err
				}
				conditions = append(conditions, cond)
			}

			c, dialect, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			admin := a.newAdmin(c, dialect)
			var hooks host.Hooks = admin
			if !raw {
				p, err := plugin.New(admin, a.cfg.UUID, plugin.WithLogger(a.logger))
				if err != nil {
					return err
				}
				hooks = p
			}

			out := cmd.OutOrStdout()
			form := out
			if format != "table" {
				form = io.Discard
			}

			result, err := admin.Browse(ctx, hooks, host.Request{Table: table, Where: conditions}, form)
			if err != nil {
				return err
			}
			a.logger.Debug("browse", "table", table, "rows", len(result.Rows))

			if format == "table" {
				return admin.RenderTable(out, result)
			}
			return export.Write(out, export.Format(format), result.Columns, admin.Cells(result))
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table to browse")
	cmd.Flags().StringArrayVarP(&wheres, "where", "w", nil, `search condition "column operator value" (repeatable)`)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, csv or json")
	cmd.Flags().BoolVar(&raw, "raw", false, "show binary values without UUID formatting")
	return cmd
}

// conditionOperators is ordered so longer operators are tried first
var conditionOperators = []models.FilterOperator{
	models.OpIsNotNull, models.OpIsNull, models.OpLike,
	models.OpGreaterOrEqual, models.OpLessOrEqual, models.OpNotEqual,
	models.OpEqual, models.OpLessThan, models.OpGreaterThan,
}

// parseCondition parses "column operator value"
func parseCondition(s string) (models.FilterCondition, error) {
	s = strings.TrimSpace(s)
	column, rest, ok := strings.Cut(s, " ")
	if !ok || column == "" {
		return models.FilterCondition{}, fmt.Errorf("invalid condition %q: want \"column operator value\"", s)
	}
	rest = strings.TrimSpace(rest)

	for _, op := range conditionOperators {
		o := string(op)
		if strings.EqualFold(rest, o) {
			return models.FilterCondition{Column: column, Operator: op}, nil
		}
		if len(rest) > len(o) && strings.EqualFold(rest[:len(o)], o) && rest[len(o)] == ' ' {
			return models.FilterCondition{
				Column:   column,
				Operator: op,
				Value:    strings.TrimSpace(rest[len(o):]),
			}, nil
		}
	}

	return models.FilterCondition{}, fmt.Errorf("invalid condition %q: unknown operator", s)
}
