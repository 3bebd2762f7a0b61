package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuta-hayashi/tabiplan/internal/config"
	"github.com/yuta-hayashi/tabiplan/internal/store"
	"github.com/yuta-hayashi/tabiplan/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved itineraries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st store.Provider) error {
			summaries, err := st.ListItineraries()
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println(noticeStyle.Render("保存された旅程はありません。"))
				return nil
			}
			for _, s := range summaries {
				title := util.TruncateString(s.Title, 40)
				if title == "" {
					title = "(無題)"
				}
				fmt.Printf("%s  %s\n", titleStyle.Render(title), dimStyle.Render(s.ID))
				detail := fmt.Sprintf("    %s / %s / %s", s.Destination, s.Phase, s.UpdatedAt.Format("2006-01-02 15:04"))
				fmt.Println(dimStyle.Render(detail))
			}
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <itinerary-id>",
	Short: "Print a saved itinerary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st store.Provider) error {
			itin, err := st.GetItinerary(args[0])
			if err != nil {
				return err
			}
			fmt.Print(renderItinerary(itin))
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <itinerary-id>",
	Short: "Delete a saved itinerary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st store.Provider) error {
			if err := st.DeleteItinerary(args[0]); err != nil {
				return err
			}
			fmt.Println(noticeStyle.Render("旅程を削除しました。"))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
}

// withStore opens the itinerary store for a one-shot command.
func withStore(fn func(store.Provider) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st := store.NewSQLiteStore(cfg.Paths.DatabasePath())
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
