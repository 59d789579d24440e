package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lifeline/pkg/errors"
)

// Format is a fixture encoding.
type Format string

// Supported fixture formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateSceneFilename(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return FormatYAML, nil
	}
}

// Read decodes and validates a scene from r.
//
// Malformed input and unknown keys yield INVALID_FORMAT. Identifier and
// geometry problems are reported as described in the package
// documentation. Read does not close r.
func Read(r io.Reader, format Format) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene")
	}
	return Parse(data, format)
}

// Parse decodes and validates a scene held in memory.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	if err := decode(data, format, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func decode(data []byte, format Format, s *Scene) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml scene")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), s)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml scene")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown scene key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json scene")
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	return nil
}

// ReadFile reads the fixture at path, choosing the decoder by extension.
func ReadFile(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	s, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "scene %s", path)
	}
	return s, nil
}
