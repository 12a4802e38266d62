package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newRunApp() *cli.App {
	return &cli.App{
		Name: "annotate",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the three-stage annotation pipeline over a JSONL file",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the input JSONL file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Directory for the annotated artifacts",
						Value:   "annotations",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Model service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent model calls during tag generation",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Records per unit of work in the tag stage",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "max-keywords",
						Usage: "Maximum keywords extracted per record",
						Value: 5,
					},
				},
			},
		},
	}
}

func TestRunCommandFlags(t *testing.T) {
	app := newRunApp()

	t.Run("input is required", func(t *testing.T) {
		args := []string{"annotate", "run"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})

	t.Run("host has default value", func(t *testing.T) {
		cmd := app.Commands[0]
		var hostFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "host" {
				hostFlag = f
				break
			}
		}
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("output-dir defaults to annotations", func(t *testing.T) {
		cmd := app.Commands[0]
		var dirFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "output-dir" {
				dirFlag = f
				break
			}
		}
		require.NotNil(t, dirFlag)
		assert.Equal(t, "annotations", dirFlag.Value)
	})

	t.Run("workers has default value of 2", func(t *testing.T) {
		cmd := app.Commands[0]
		var workersFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "workers" {
				workersFlag = f
				break
			}
		}
		require.NotNil(t, workersFlag)
		assert.Equal(t, 2, workersFlag.Value)
	})

	t.Run("batch-size has default value of 5", func(t *testing.T) {
		cmd := app.Commands[0]
		var batchFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "batch-size" {
				batchFlag = f
				break
			}
		}
		require.NotNil(t, batchFlag)
		assert.Equal(t, 5, batchFlag.Value)
	})

	t.Run("max-keywords has default value of 5", func(t *testing.T) {
		cmd := app.Commands[0]
		var kwFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "max-keywords" {
				kwFlag = f
				break
			}
		}
		require.NotNil(t, kwFlag)
		assert.Equal(t, 5, kwFlag.Value)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		testCases := []string{
			"DEBUG",
			"Info",
			"WaRn",
			"ERROR",
		}

		for _, tc := range testCases {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "invalid")
	})

	t.Run("default log level is info", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				level := c.String("log-level")
				assert.Equal(t, "info", level)
				return nil
			},
		}

		err := app.Run([]string{"test"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
