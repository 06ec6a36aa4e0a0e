package commands

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Document DocumentFlags `embed:""`
}

func (i *InspectCmd) Run(g *Global, root *CLI) error {
	s, err := prepare(&i.Document, root)
	if err != nil {
		return err
	}

	conv, err := newSession(s, logger(g)).converter()
	if err != nil {
		return err
	}
	report, err := conv.Inspect(context.Background(), s.Options)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(output(g))
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode inspection: %w", err)
	}
	return enc.Close()
}
