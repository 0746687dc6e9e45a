package output

import (
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/yndnr/respkv/pkg/resp"
)

// YAMLFormatter formats replies as YAML.
type YAMLFormatter struct{}

// Format formats f as a YAML document.
func (y *YAMLFormatter) Format(w io.Writer, f resp.Frame) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Value(f)); err != nil {
		return err
	}
	return encoder.Close()
}
