package tools

import (
	"io"

	"github.com/Comcast/litmus/oracle/table"

	"gopkg.in/yaml.v2"
)

// WriteTableYAML writes the canonical YAML form of a table
// automaton, which is handy for normalizing hand-written files.
func WriteTableYAML(t *table.Table, w io.Writer) error {
	bs, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}
