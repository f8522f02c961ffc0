package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tonedrill/config"
	"tonedrill/drill"
	"tonedrill/fretboard"
	"tonedrill/theory"
)

type checkOptions struct {
	key    string
	scale  string
	root   string
	tuning string
}

func checkCmd(opts *options) *cobra.Command {
	var co checkOptions

	cmd := &cobra.Command{
		Use:   "check POSITION...",
		Short: "Look up string,fret positions",
		Long: `Look up one or more string,fret positions and print their note and interval.

With --root the positions are measured from the root note (Chord Tone mode),
otherwise from --key in --scale (Single Tone mode). Exits 1 if any position
is rejected.`,
		Example: `  tonedrill check 6,3 5,2
  tonedrill check --key A --scale Minor 5,0 6,8
  tonedrill check --root 5,0 4,2 3,2
  tonedrill check --tuning D,A,D,G,B,E 6,0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			session, err := co.session(cfg, cmd.Flags().Changed("key"), cmd.Flags().Changed("scale"))
			if err != nil {
				return err
			}
			session.SetLogger(opts.logger(cmd.ErrOrStderr()))
			return runCheck(cmd.OutOrStdout(), session, co.root, args)
		},
	}

	cmd.Flags().StringVarP(&co.key, "key", "k", "", "Key for Single Tone mode (default from config)")
	cmd.Flags().StringVarP(&co.scale, "scale", "s", "", "Scale for Single Tone mode: "+strings.Join(theory.ScaleNames(), ", "))
	cmd.Flags().StringVarP(&co.root, "root", "r", "", "Root position string,fret, switches to Chord Tone mode")
	cmd.Flags().StringVarP(&co.tuning, "tuning", "t", "", "Open notes low to high, e.g. E,A,D,G,B,E")
	cmd.MarkFlagsMutuallyExclusive("root", "key")
	cmd.MarkFlagsMutuallyExclusive("root", "scale")

	return cmd
}

func (co checkOptions) session(cfg *config.Config, keySet, scaleSet bool) (*drill.Session, error) {
	session, err := drill.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if co.tuning != "" {
		tuning, err := fretboard.ParseTuning(co.tuning)
		if err != nil {
			return nil, fmt.Errorf("tuning: %w", err)
		}
		session = rebuild(session, tuning)
	}
	if keySet {
		key, err := theory.ParseNote(co.key)
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		session.SetKey(key)
	}
	if scaleSet {
		scale, err := theory.LookupScale(co.scale)
		if err != nil {
			return nil, err
		}
		session.SetScale(scale)
	}

	if co.root != "" {
		session.SelectMode(theory.ModeChordTone)
	} else {
		session.SelectMode(theory.ModeSingleTone)
	}
	session.ConfirmMode()
	return session, nil
}

// rebuild carries key and scale over to a session on a different tuning
func rebuild(s *drill.Session, tuning *fretboard.Tuning) *drill.Session {
	out := drill.New(tuning)
	out.SetKey(s.Key())
	out.SetScale(s.Scale())
	return out
}

func runCheck(w io.Writer, session *drill.Session, root string, positions []string) error {
	if root != "" {
		e, err := session.SetRoot(root)
		fmt.Fprintln(w, e.Message)
		if err != nil {
			return fmt.Errorf("root %q: %w", root, err)
		}
	}

	rejected := 0
	for _, raw := range positions {
		e, err := session.Check(raw)
		if err != nil {
			rejected++
			fmt.Fprintf(w, "%s: %s\n", raw, e.Message)
			continue
		}
		line := e.Message
		if e.Chord != nil {
			line += fmt.Sprintf(" (%s)", e.Chord)
		}
		fmt.Fprintln(w, line)
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d: %w", rejected, len(positions), errRejected)
	}
	return nil
}
