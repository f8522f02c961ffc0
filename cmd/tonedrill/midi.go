package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"tonedrill/config"
	"tonedrill/drill"
	"tonedrill/midi"
	"tonedrill/theory"
)

func listenCmd(opts *options) *cobra.Command {
	var (
		port string
		root string
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Print lookups for notes played on a MIDI guitar",
		Long: `Connects to MIDI guitars in string-per-channel mode and prints the
lookup for every note played. Guitars may be plugged in while it runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.MIDI.PortName = port
			}

			logger := opts.logger(cmd.ErrOrStderr())
			session, err := listenSession(cfg, root)
			if err != nil {
				return err
			}
			session.SetLogger(logger)
			if r, ok := session.Root(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Root note set: %s = %s\n", r.Position, r.Note)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			deviceMgr := midi.NewDeviceManager(cfg.MIDI.PortName, logger)
			strMap := midi.NewStringMap(cfg.MIDI.FirstChannel, cfg.MIDI.OpenPitches)
			go deviceMgr.Run(ctx)

			fmt.Fprintf(cmd.OutOrStdout(), "Waiting for MIDI guitars matching %q. Ctrl+C to exit.\n", cfg.MIDI.PortName)
			return listen(ctx, cmd.OutOrStdout(), deviceMgr, strMap, session)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port name substring (default from config)")
	cmd.Flags().StringVarP(&root, "root", "r", "", "Root position string,fret, switches to Chord Tone mode")

	return cmd
}

// listenSession confirms Chord Tone mode around root when one is given and
// Single Tone mode otherwise, whatever mode the config selects
func listenSession(cfg *config.Config, root string) (*drill.Session, error) {
	session, err := drill.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if root == "" {
		session.SelectMode(theory.ModeSingleTone)
		session.ConfirmMode()
		return session, nil
	}

	session.SelectMode(theory.ModeChordTone)
	session.ConfirmMode()
	if e, err := session.SetRoot(root); err != nil {
		return nil, fmt.Errorf("root %q: %s", root, e.Message)
	}
	return session, nil
}

// listen fans in notes from every connected controller until ctx is done.
// Only this goroutine touches the session.
func listen(ctx context.Context, w io.Writer, deviceMgr *midi.DeviceManager, strMap *midi.StringMap, session *drill.Session) error {
	type played struct {
		ev   midi.NoteEvent
		from string
	}
	notes := make(chan played, 64)

	forward := func(c midi.Controller) {
		for ev := range c.NoteEvents() {
			select {
			case notes <- played{ev: ev, from: c.ID()}:
			case <-ctx.Done():
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-deviceMgr.Events():
			if !ok {
				return nil
			}
			switch ev.Type {
			case midi.DeviceConnected:
				fmt.Fprintf(w, "+ %s\n", ev.ID)
				go forward(ev.Controller)
			case midi.DeviceDisconnected:
				fmt.Fprintf(w, "- %s (%d still connected)\n", ev.ID, len(deviceMgr.Controllers()))
			}
		case p := <-notes:
			pos, ok := strMap.Position(p.ev, session.Tuning())
			if !ok {
				fmt.Fprintf(w, "%s: %s on channel %d is not a configured string\n",
					p.from, gomidi.Note(p.ev.Note), p.ev.Channel+1)
				continue
			}
			e, _ := session.CheckPosition(pos)
			fmt.Fprintf(w, "%-4s %s\n", gomidi.Note(p.ev.Note), e.Message)
		}
	}
}

func portsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List MIDI ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return listPorts(cmd.OutOrStdout(), cfg.MIDI.PortName)
		},
	}
}

func listPorts(w io.Writer, pattern string) error {
	fmt.Fprintln(w, "=== MIDI Input Ports ===")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			mark := " "
			if midi.MatchesPort(p.String(), pattern) {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %d: %s\n", mark, i, p.String())
		}
		fmt.Fprintln(w, "\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Fprintf(w, "  %d: %s\n", i, p.String())
		}
		fmt.Fprintf(w, "\n* matches %q\n", pattern)
		return nil
	case <-time.After(3 * time.Second):
		return fmt.Errorf("listing MIDI ports timed out")
	}
}
