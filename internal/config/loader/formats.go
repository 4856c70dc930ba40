package loader

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Built-in formats.
var (
	TOML Format = tomlFormat{}
	YAML Format = yamlFormat{}
	JSON Format = jsonFormat{}
)

type tomlFormat struct{}

func (tomlFormat) Name() string { return "toml" }

func (tomlFormat) Decode(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return m, nil
}

type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) Decode(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return m, nil
}

type jsonFormat struct{}

func (jsonFormat) Name() string { return "json" }

// Decode validates the document with gjson and converts it to a map.
// Numbers decode as float64.
func (jsonFormat) Decode(source string, data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("top level must be an object, got %s", res.Type)}
	}
	m, _ := res.Value().(map[string]any)
	return m, nil
}
