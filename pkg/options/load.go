package options

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/erfan1375er/highcharts/pkg/errors"
)

// Option file formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath infers the option file format from its extension.
func FormatFromPath(p string) (string, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported options file %q (want .toml, .json, .yaml)", p)
}

// LoadFile reads series options from a TOML, JSON or YAML file and
// validates them.
func LoadFile(p string) (Series, error) {
	format, err := FormatFromPath(p)
	if err != nil {
		return Series{}, err
	}
	f, err := os.Open(p)
	if err != nil {
		return Series{}, fmt.Errorf("open options: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads series options in the given format and validates them.
func Decode(r io.Reader, format string) (Series, error) {
	var s Series
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&s)
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&s)
		if err == io.EOF {
			err = nil
		}
	default:
		return Series{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported options format %q", format)
	}
	if err != nil {
		return Series{}, errors.Wrap(errors.ErrCodeInvalidOption, err, "decode %s options", format)
	}
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}
