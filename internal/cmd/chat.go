package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yuta-hayashi/tabiplan/internal/config"
	"github.com/yuta-hayashi/tabiplan/internal/errors"
	"github.com/yuta-hayashi/tabiplan/internal/event"
	"github.com/yuta-hayashi/tabiplan/internal/logging"
	"github.com/yuta-hayashi/tabiplan/internal/planner"
	"github.com/yuta-hayashi/tabiplan/internal/provider"
	"github.com/yuta-hayashi/tabiplan/internal/store"
)

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var chatCmd = &cobra.Command{
	Use:   "chat [itinerary-id]",
	Short: "Plan a trip interactively",
	Long: `Starts a planning conversation. Pass an itinerary ID to resume a saved
plan. Inside the chat:

  /next    advance to the next planning step
  /undo    revert the last itinerary change
  /redo    restore an undone change
  /show    print the current itinerary
  /reset   start planning over
  /quit    leave the chat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(cfg.Paths.ResolveDataDir(), cfg.Logging.Level)
		if err != nil {
			return err
		}
		defer log.Close()
	}

	prov, err := provider.NewFromConfig(&cfg.Provider)
	if err != nil {
		return err
	}

	st := store.NewSQLiteStore(cfg.Paths.DatabasePath())
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	bus := event.NewBus()
	sess := planner.NewSession(cfg, prov, st, bus, log)

	if len(args) == 1 {
		itin, err := st.GetItinerary(args[0])
		if err != nil {
			return err
		}
		sess.Resume(itin)
		fmt.Printf("%s\n\n", noticeStyle.Render(fmt.Sprintf("「%s」の計画を再開します。", itin.Title)))
	} else {
		fmt.Printf("%s\n\n", noticeStyle.Render("旅行の計画を始めましょう。どこへ行きたいですか？"))
	}

	// Stream prose to the terminal as it arrives.
	bus.Subscribe("stream.delta", func(e event.Event) {
		fmt.Print(assistantStyle.Render(e.(event.StreamDeltaEvent).Delta))
	})
	bus.Subscribe("phase.changed", func(e event.Event) {
		evt := e.(event.PhaseChangedEvent)
		label := evt.To.String()
		if evt.Day > 0 {
			label = fmt.Sprintf("%s (day %d)", label, evt.Day)
		}
		fmt.Println(noticeStyle.Render("→ " + label))
	})

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runChatCommand(sess, line); quit {
				return nil
			}
			continue
		}

		if _, err := sess.HandleUserMessage(cmd.Context(), line); err != nil {
			printChatError(err)
			continue
		}
		// The reply already streamed; just close the line.
		fmt.Println()
		fmt.Println()
	}
}

// runChatCommand handles slash commands. Returns true when the chat
// should end.
func runChatCommand(sess *planner.Session, line string) bool {
	switch strings.Fields(line)[0] {
	case "/quit", "/exit":
		return true

	case "/next":
		itin, err := sess.ProceedToNextStep()
		if err != nil {
			printChatError(err)
			break
		}
		if itin.Phase.IsTerminal() {
			fmt.Println(noticeStyle.Render("旅程は完成しています。"))
		}

	case "/undo":
		if _, ok := sess.Undo(); !ok {
			fmt.Println(noticeStyle.Render("戻せる変更はありません。"))
		} else {
			fmt.Println(noticeStyle.Render("直前の変更を取り消しました。"))
		}

	case "/redo":
		if _, ok := sess.Redo(); !ok {
			fmt.Println(noticeStyle.Render("やり直せる変更はありません。"))
		} else {
			fmt.Println(noticeStyle.Render("変更をやり直しました。"))
		}

	case "/show":
		itin := sess.Itinerary()
		if itin == nil {
			fmt.Println(noticeStyle.Render("旅程はまだありません。"))
			break
		}
		fmt.Print(renderItinerary(itin))
		fmt.Printf("%s\n", noticeStyle.Render("準備状況: "+sess.Readiness()))

	case "/reset":
		// Resetting the flow and dropping the schedule are distinct
		// operations; starting over from the chat means both.
		sess.ResetPlanning()
		if _, err := sess.ClearSchedule(); err != nil && !errors.Is(err, errors.ErrItineraryNotFound) {
			printChatError(err)
			break
		}
		fmt.Println(noticeStyle.Render("計画をリセットしました。"))

	default:
		fmt.Println(noticeStyle.Render("コマンド: /next /undo /redo /show /reset /quit"))
	}
	return false
}

func printChatError(err error) {
	if errors.IsUserFacing(err) {
		fmt.Println(errorStyle.Render(err.Error()))
	} else {
		fmt.Println(errorStyle.Render("エラーが発生しました。もう一度お試しください。"))
	}
	if errors.IsRetryable(err) {
		fmt.Println(noticeStyle.Render("一時的なエラーの可能性があります。少し待って再送してください。"))
	}
}
