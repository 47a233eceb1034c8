package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/anisan-cli/anipahe/constant"
	"github.com/anisan-cli/anipahe/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// UnknownKeyError is returned for keys missing from Default.
type UnknownKeyError struct {
	Key string
	// Closest is the registered key with the smallest edit distance to Key.
	Closest string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %s, did you mean %s?", e.Key, e.Closest)
}

// Lookup returns the field registered under k.
func Lookup(k string) (Field, error) {
	if field, ok := Default[k]; ok {
		return field, nil
	}

	closest := lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
	return Field{}, &UnknownKeyError{Key: k, Closest: closest}
}

// Parse converts raw command-line values to the type of the field's default.
func (f *Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: no value given", f.Key)
	}

	switch f.Value.(type) {
	case string:
		return raw[0], nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer value: %s", f.Key, raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean value: %s", f.Key, raw[0])
		}
		return b, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("%s: unsupported type %s", f.Key, f.typeName())
	}
}

// Set parses raw for key k, applies it and persists the config file.
func Set(k string, raw []string) (any, error) {
	field, err := Lookup(k)
	if err != nil {
		return nil, err
	}

	value, err := field.Parse(raw)
	if err != nil {
		return nil, err
	}

	viper.Set(k, value)
	return value, Write()
}

// Reset restores keys to their defaults and persists the config file.
// Without keys every field is reset.
func Reset(keys ...string) error {
	if len(keys) == 0 {
		keys = lo.Keys(Default)
	}

	for _, k := range keys {
		field, err := Lookup(k)
		if err != nil {
			return err
		}
		viper.Set(k, field.Value)
	}

	return Write()
}

// Write persists the current configuration, creating the file when there is none.
func Write() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

// Path is where the config file lives.
func Path() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}
