package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawAPIDef is the root of api/connman.yaml.
type RawAPIDef struct {
	Package    string            `yaml:"package"`
	Interfaces []RawInterfaceDef `yaml:"interfaces"`
}

// RawInterfaceDef describes one D-Bus interface.
type RawInterfaceDef struct {
	Name      string         `yaml:"name"`      // "Manager"
	Interface string         `yaml:"interface"` // "net.connman.Manager"
	Const     string         `yaml:"const"`     // Go constant holding the interface name
	Methods   []RawMethodDef `yaml:"methods"`
}

// RawMethodDef describes one method of an interface.
type RawMethodDef struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Args        []RawArgDef `yaml:"args"`
	Returns     string      `yaml:"returns"` // "", "props", "objects", "strings"
}

// RawArgDef describes one input argument.
type RawArgDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // D-Bus signature letter
}

var argTypes = map[string]bool{"s": true, "b": true, "o": true, "v": true}

var returnShapes = map[string]bool{"": true, "props": true, "objects": true, "strings": true}

// ParseAPIDef parses and validates an API definition from YAML bytes.
func ParseAPIDef(data []byte) (*RawAPIDef, error) {
	var def RawAPIDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing api def: %w", err)
	}
	if def.Package == "" {
		return nil, fmt.Errorf("api definition missing package")
	}
	for _, iface := range def.Interfaces {
		if iface.Name == "" || iface.Interface == "" || iface.Const == "" {
			return nil, fmt.Errorf("interface %q: name, interface and const are required", iface.Name)
		}
		for _, m := range iface.Methods {
			if m.Name == "" {
				return nil, fmt.Errorf("interface %s: method missing name", iface.Name)
			}
			if !returnShapes[m.Returns] {
				return nil, fmt.Errorf("%s.%s: unknown return shape %q", iface.Name, m.Name, m.Returns)
			}
			for _, a := range m.Args {
				if !argTypes[a.Type] {
					return nil, fmt.Errorf("%s.%s: argument %s has unsupported type %q", iface.Name, m.Name, a.Name, a.Type)
				}
			}
		}
	}
	return &def, nil
}

// LoadAPIDef loads and parses an API definition from a file.
func LoadAPIDef(path string) (*RawAPIDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseAPIDef(data)
}
