package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/persist"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var (
		filterName string
		plain      bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the list as a markdown checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			filter, err := model.ParseFilter(filterName)
			if err != nil {
				return err
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

			items := rt.adapter.Load(cmd.Context())
			md := checklist(filter, items)
			if saved, err := rt.repo.UpdatedAt(cmd.Context(), persist.ItemsKey); err == nil {
				md += fmt.Sprintf("\n_saved %s_\n", saved.Local().Format(time.DateTime))
			}
			out := cmd.OutOrStdout()
			if plain {
				_, err = fmt.Fprint(out, md)
				return err
			}
			_, err = fmt.Fprint(out, views.RenderMarkdown(md, rt.cfg.MarkdownStyle))
			return err
		},
	}
	cmd.Flags().StringVar(&filterName, "filter", string(model.FilterAll), "all, active or completed")
	cmd.Flags().BoolVar(&plain, "plain", false, "print raw markdown")
	return cmd
}

func checklist(filter model.Filter, items []model.Item) string {
	title := "todos"
	if filter != model.FilterAll {
		title = fmt.Sprintf("todos (%s)", strings.ToLower(filter.Label()))
	}
	rows := make([]views.ChecklistItem, 0, len(items))
	for item := range model.FilterItems(filter, items) {
		rows = append(rows, views.ChecklistItem{Text: item.Text, Complete: item.Complete})
	}
	return views.ChecklistMarkdown(title, rows, model.CountActive(items))
}
