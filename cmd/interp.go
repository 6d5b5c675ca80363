// Copyright © 2026 The LISPE authors

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/lisp/lisplib"
	"github.com/luthersystems/lispe/parser"
)

// Configuration keys shared by flags, the environment and the config file.
const (
	keyCells          = "cells"
	keyNumbers        = "numbers"
	keySymbols        = "symbols"
	keyMaxStackHeight = "max-stack-height"
	keyParser         = "parser"
	keyLogLevel       = "log-level"
	keyLogFormat      = "log-format"
	keyGCLog          = "gc-log"
	keyInit           = "init"
)

func addInterpreterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.Int(keyCells, lisp.DefaultCellCapacity, "Capacity of the cell arena")
	flags.Int(keyNumbers, lisp.DefaultNumberCapacity, "Capacity of the number arena")
	flags.Int(keySymbols, lisp.DefaultSymbolCapacity, "Capacity of the symbol arena")
	flags.Int(keyMaxStackHeight, lisp.DefaultMaxStackHeight,
		"Maximum call stack height (0 for no limit)")
	flags.String(keyParser, parser.KindRecursive,
		fmt.Sprintf("Source parser: %q or %q", parser.KindRecursive, parser.KindRegex))
	flags.String(keyLogLevel, "warn", `Log level ("debug" logs every collection)`)
	flags.String(keyLogFormat, "text", `Log format: "text" or "json"`)
	flags.Bool(keyGCLog, false, "Log every collection (same as --log-level=debug)")
	flags.String(keyInit, "init.lisp", "File loaded at startup when it exists")
	for _, key := range []string{
		keyCells, keyNumbers, keySymbols, keyMaxStackHeight, keyParser,
		keyLogLevel, keyLogFormat, keyGCLog, keyInit,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
}

func newLogger() (*logrus.Logger, error) {
	log := logrus.New()
	log.Out = os.Stderr
	level, err := logrus.ParseLevel(viper.GetString(keyLogLevel))
	if err != nil {
		return nil, err
	}
	log.Level = level
	if viper.GetBool(keyGCLog) && level < logrus.DebugLevel {
		log.Level = logrus.DebugLevel
	}
	switch format := viper.GetString(keyLogFormat); format {
	case "text":
		log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	case "json":
		log.Formatter = &logrus.JSONFormatter{}
	default:
		return nil, fmt.Errorf("unknown log format: %q", format)
	}
	return log, nil
}

// newInterpreter returns an interpreter configured from flags, environment
// variables and the config file, with the init file loaded.  Extra options
// are applied last.
func newInterpreter(extra ...lisp.Config) (*lisp.Interpreter, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}
	reader, err := parser.NewReaderKind(viper.GetString(keyParser))
	if err != nil {
		return nil, err
	}
	opts := []lisp.Config{
		lisplib.WithLibrary(),
		lisp.WithLogger(log),
		lisp.WithReader(reader),
		lisp.WithCellCapacity(viper.GetInt(keyCells)),
		lisp.WithNumberCapacity(viper.GetInt(keyNumbers)),
		lisp.WithSymbolCapacity(viper.GetInt(keySymbols)),
		lisp.WithMaxStackHeight(viper.GetInt(keyMaxStackHeight)),
	}
	in, err := lisp.New(append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	if err := loadInit(in, viper.GetString(keyInit)); err != nil {
		return nil, err
	}
	return in, nil
}

func loadInit(in *lisp.Interpreter, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	_, err := in.LoadFile(path)
	if err != nil {
		return err
	}
	in.Log.WithField("path", path).Debug("init file loaded")
	return nil
}
