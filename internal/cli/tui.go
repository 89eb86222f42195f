package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/state"
	"github.com/sandeepkv93/tasklist/internal/update"
)

func runTUI(cmd *cobra.Command, flags *globalFlags, version string) (err error) {
	rt, err := openRuntime(flags)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt.logger.Info("tasklist starting", "version", version, "db", rt.cfg.DBPath)
	model := update.NewModel(update.Options{
		Context: ctx,
		Store:   rt.store,
		Loader:  rt.adapter,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := forwardSnapshots(rt.store, program.Send)
	defer unsubscribe()
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	rt.logger.Info("tasklist stopped", "written", rt.writer.Written(), "coalesced", rt.writer.Coalesced())
	return nil
}

// forwardSnapshots relays every published snapshot to the program. Sends run
// on their own goroutine because the store is usually called from inside the
// program's update loop; the model drops any that arrive out of order.
func forwardSnapshots(store *state.Store, send func(tea.Msg)) func() {
	return store.Subscribe(func(snap state.Snapshot) {
		go send(update.SnapshotMsg{Snapshot: snap})
	})
}
