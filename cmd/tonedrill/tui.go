package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tonedrill/debug"
	"tonedrill/drill"
	"tonedrill/midi"
	"tonedrill/theme"
	"tonedrill/tui"
)

func tuiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive trainer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
}

func runTUI(opts *options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns stdout, so logging only goes to the debug file
	if opts.debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}
	logger := debug.Logger()

	session, err := drill.FromConfig(cfg)
	if err != nil {
		return err
	}
	session.SetLogger(logger)

	palette := theme.DefaultPalette()
	if cfg.Palette != "" {
		palette, err = theme.LoadGPL(cfg.Palette)
		if err != nil {
			return fmt.Errorf("load palette: %w", err)
		}
	}
	th := theme.New(palette)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		deviceMgr *midi.DeviceManager
		strMap    *midi.StringMap
	)
	if cfg.MIDI.AutoConnect {
		deviceMgr = midi.NewDeviceManager(cfg.MIDI.PortName, logger)
		strMap = midi.NewStringMap(cfg.MIDI.FirstChannel, cfg.MIDI.OpenPitches)
		go deviceMgr.Run(ctx)
	}

	debug.Log("app", "starting tui", "tuning", session.Tuning().String(), "midi", cfg.MIDI.AutoConnect)

	m := tui.NewModel(session, th, deviceMgr, strMap)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
