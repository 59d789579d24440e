package scene

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lifeline/pkg/errors"
)

// Write encodes s in the given format. The output can be read back with
// [Read].
func Write(s *Scene, w io.Writer, format Format) error {
	var err error
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(s); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(s)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s scene", format)
	}
	return nil
}

// WriteFile writes s to path, choosing the encoder by extension.
func WriteFile(s *Scene, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := Write(s, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
