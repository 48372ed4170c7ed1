package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pathcopycopy/pathcopy/internal/pipeline"
	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

// decodedElement is the YAML form of one element.
type decodedElement struct {
	Op      string           `yaml:"op"`
	Name    string           `yaml:"name"`
	Payload pipeline.Element `yaml:"payload,omitempty"`
}

type decodedPipeline struct {
	Elements []decodedElement `yaml:"elements"`
	Options  pipeline.Options `yaml:"options"`
}

func (a *app) newDecodeCommand() *cobra.Command {
	var (
		canonical bool
		fromRef   string
	)
	cmd := &cobra.Command{
		Use:   "decode [encoded]",
		Short: "Decode an encoded elements stream",
		Long: `Decode an encoded elements stream and print its elements as YAML.
With --plugin, decode the stream of a configured pipeline plugin instead.
With --canonical, print the stream re-encoded in canonical form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   *pipeline.Pipeline
				err error
			)
			switch {
			case fromRef != "" && len(args) == 0:
				p, err = a.pluginPipeline(fromRef)
			case fromRef == "" && len(args) == 1:
				p, err = pipeline.Parse(args[0])
			default:
				return errors.New("give either an encoded stream or --plugin")
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if canonical {
				s, err := p.Encode()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, s)
				return err
			}

			out := decodedPipeline{Options: p.Options()}
			for _, e := range p.Elements() {
				de := decodedElement{Op: string(e.Opcode()), Name: pipeline.ElementName(e)}
				if hasPayload(e) {
					de.Payload = e
				}
				out.Elements = append(out.Elements, de)
			}
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "print the canonical encoding")
	cmd.Flags().StringVar(&fromRef, "plugin", "", "decode a configured pipeline plugin")
	return cmd
}

func (a *app) pluginPipeline(ref string) (*pipeline.Pipeline, error) {
	p, err := a.reg.Find(ref)
	if err != nil {
		return nil, err
	}
	pp, ok := p.(*plugin.PipelinePlugin)
	if !ok {
		return nil, fmt.Errorf("plugin %q is not a pipeline plugin", p.Description())
	}
	return pp.Pipeline()
}

// hasPayload reports whether e encodes anything after its opcode.
func hasPayload(e pipeline.Element) bool {
	s, err := pipeline.Encode([]pipeline.Element{e})
	return err == nil && len([]rune(s)) > 3
}
