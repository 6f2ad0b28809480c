package main

import "errors"

var (
	// ErrNoCommand occurs when the program is called without a command.
	ErrNoCommand = errors.New("no command given")

	// ErrUnknownCommand occurs when the program is called with a command it
	// does not know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoInput occurs when an interactive prompt receives no answer.
	ErrNoInput = errors.New("no input")

	// ErrTooManyArguments occurs when a command is given more arguments than
	// it accepts.
	ErrTooManyArguments = errors.New("too many arguments")
)
