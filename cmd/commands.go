package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"itimapps/internal/config"
	"itimapps/internal/platform"
	"itimapps/internal/properties"
	"itimapps/utils"
)

const maskedValue = "********"

// app carries everything the subcommands share; providers are swappable for tests
type app struct {
	cfg       config.Config
	logger    *log.Logger
	stats     *utils.StatsClient
	factory   platform.ContextFactory
	login     platform.LoginProvider
	decrypter platform.Decrypter
}

func newApp(cfg config.Config, l *log.Logger, stats *utils.StatsClient) *app {
	return &app{
		cfg:       cfg,
		logger:    l,
		stats:     stats,
		factory:   platform.DryRunFactory{Logger: l},
		login:     platform.DryRunLogin{},
		decrypter: platform.PassthroughDecrypter{},
	}
}

// parse runs the argument parser over raw subcommand tokens
func (a *app) parse(args []string, required utils.RequiredSpec) (utils.ArgumentTable, error) {
	table, err := utils.NewArgParser(required, a.cfg.Verbose, a.logger).Parse(args)
	if err != nil {
		return nil, err
	}
	a.stats.Incr(utils.MetricArgsParsed)
	return table, nil
}

func (a *app) verbose(table utils.ArgumentTable) bool {
	v, ok := table.Get("verbose")
	return a.cfg.Verbose || (ok && strings.EqualFold(v, "true"))
}

func flagSet(table utils.ArgumentTable, name string) bool {
	v, ok := table.Get(name)
	return ok && strings.EqualFold(v, "true")
}

func (a *app) bootstrapper(verbose bool) (*platform.Bootstrapper, *properties.Store, error) {
	path := properties.PathFor(a.cfg.ItimHome, a.cfg.PropertiesFile)
	store, err := properties.Load(path, a.cfg.Overrides)
	if err != nil {
		return nil, nil, err
	}

	b, err := platform.NewBootstrapper(platform.Options{
		Properties: store,
		Factory:    a.factory,
		Login:      a.login,
		Decrypter:  a.decrypter,
		CacheSize:  a.cfg.DecryptCacheSize,
		Logger:     a.logger,
		Verbose:    verbose,
	})
	if err != nil {
		return nil, nil, err
	}
	return b, store, nil
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "itimapps",
		Short:         "Helpers for identity manager example applications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAttrsCommand(a), newEnvCommand(a), newLoginCommand(a))
	return root
}

func newAttrsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                "attrs -attr?name=value [-attr?name=value ...]",
		Short:              "Build attribute values from repeated -attr arguments",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.parse(args, utils.RequiredSpec{
				{Name: "attr", Message: "At least one -attr?name=value argument is required."},
			})
			if err != nil {
				return err
			}

			attrs, err := utils.CreateAttributeValueMap(table.Values("attr"))
			if err != nil {
				return err
			}
			a.stats.Incr(utils.MetricAttributesBuilt)

			printAttributes(cmd.OutOrStdout(), attrs)
			return nil
		},
	}
}

func printAttributes(w io.Writer, attrs map[string]*utils.AttributeValue) {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s: %s\n", name, strings.Join(attrs[name].Values, ", "))
	}
}

func newEnvCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                "env [-all?true] [-verbose?true]",
		Short:              "Show the resolved platform environment",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.parse(args, nil)
			if err != nil {
				return err
			}

			b, store, err := a.bootstrapper(a.verbose(table))
			if err != nil {
				return err
			}
			env, err := b.Environment()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "context factory: %s\n", env.ContextFactory)
			fmt.Fprintf(out, "url: %s\n", env.URL)
			fmt.Fprintf(out, "principal: %s\n", env.Principal)
			fmt.Fprintf(out, "credentials: %s\n", maskedValue)
			if env.TrustStore != nil {
				fmt.Fprintf(out, "trust store: %s (%s)\n", env.TrustStore.Path, env.TrustStore.Type)
				fmt.Fprintf(out, "ssl config: %s\n", env.TrustStore.ConfigURL)
			}

			if flagSet(table, "all") {
				for _, key := range store.Keys() {
					fmt.Fprintf(out, "%s=%s\n", key, maskSecret(key, store.Get(key)))
				}
			}
			return nil
		},
	}
}

func maskSecret(key string, value string) string {
	lower := strings.ToLower(key)
	for _, marker := range []string{"password", "pswd", "credentials", "secret"} {
		if strings.Contains(lower, marker) {
			return maskedValue
		}
	}
	return value
}

func newLoginCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                "login [-verbose?true]",
		Short:              "Create a platform context and log in",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.parse(args, nil)
			if err != nil {
				return err
			}

			b, _, err := a.bootstrapper(a.verbose(table))
			if err != nil {
				return err
			}
			pc, err := b.PlatformContext()
			if err != nil {
				return err
			}
			defer func() {
				if err := pc.Close(); err != nil {
					a.logger.Printf("WARN: Error closing platform context: %v", err)
				}
			}()

			subject, err := b.Subject(cmd.Context(), pc)
			if err != nil {
				a.stats.Incr(utils.MetricLoginFailure)
				return err
			}
			a.stats.Incr(utils.MetricLoginSuccess)

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", subject.Principal())
			return nil
		},
	}
}

// exitCode maps command errors to process exit codes
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, utils.ErrMissingArgument), errors.Is(err, utils.ErrMalformedArgument), errors.Is(err, utils.ErrMalformedPair):
		return 2
	case errors.Is(err, platform.ErrLogin), errors.Is(err, context.Canceled):
		return 3
	default:
		return 1
	}
}
