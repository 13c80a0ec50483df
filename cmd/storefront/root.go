package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tabaum/storefront/internal/catalog"
	"github.com/tabaum/storefront/internal/client"
	"github.com/tabaum/storefront/internal/storefront/cart"
	"github.com/tabaum/storefront/internal/storefront/render"
	"github.com/tabaum/storefront/internal/storefront/session"
	"github.com/tabaum/storefront/internal/storefront/storage"
	"github.com/tabaum/storefront/pkg/logger"
)

const (
	envPrefix     = "TABAUM"
	defaultAPIURL = "http://localhost:3000/api"

	keyAPIURL   = "api-url"
	keyStorage  = "storage"
	keyLogLevel = "log-level"
)

// app holds what every subcommand needs. It is built lazily in
// PersistentPreRunE once flags, env and the config file are merged.
type app struct {
	in  *bufio.Reader
	out io.Writer

	v   *viper.Viper
	log zerolog.Logger

	storage storage.Store
	catalog *catalog.Catalog
	api     *client.Client
	cart    *cart.Store
	panel   *lastPanel
	guard   *session.Guard
}

// lastPanel keeps the most recent cart render so a command prints the
// panel once, after all its mutations.
type lastPanel struct {
	show  bool
	panel *cart.Panel
}

func (l *lastPanel) Render(p cart.Panel) { l.panel = &p }

func (a *app) showCart() {
	a.panel.show = true
	a.cart.Open()
}

func (a *app) flushCart() {
	if a.panel == nil || !a.panel.show || a.panel.panel == nil {
		return
	}
	render.NewCartView(a.out).Render(*a.panel.panel)
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out, v: viper.New()}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Cliente de terminal da loja Tábua",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(errOut)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.flushCart()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String(keyAPIURL, defaultAPIURL, "base URL of the storefront API")
	flags.String(keyStorage, defaultStoragePath(), "path of the local storage file")
	flags.String(keyLogLevel, "warn", "log level: trace, debug, info, warn, error")
	_ = a.v.BindPFlags(flags)

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newProductsCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newQtyCmd(a),
		newCartCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newWhoamiCmd(a),
		newLogoutCmd(a),
		newContactCmd(a),
	)
	return root
}

func (a *app) init(errOut io.Writer) error {
	if dir, err := os.UserConfigDir(); err == nil {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(filepath.Join(dir, "tabaum"))
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	a.log = logger.Init(logger.Options{
		Level:   a.v.GetString(keyLogLevel),
		Pretty:  true,
		Output:  errOut,
		Service: "storefront",
	})

	a.storage = storage.NewFile(a.v.GetString(keyStorage))
	a.catalog = catalog.Default()
	a.api = client.New(a.v.GetString(keyAPIURL), nil)
	a.panel = &lastPanel{}
	a.cart = cart.New(a.catalog, a.storage, a.panel, a.log)
	a.guard = session.NewGuard(a.storage, a.api, session.ReloaderFunc(a.reload), a.log)
	return nil
}

// reload drops in-memory state after logout so the next read comes from
// storage again.
func (a *app) reload() {
	a.cart = cart.New(a.catalog, a.storage, a.panel, a.log)
	fmt.Fprintln(a.out, "Sessão encerrada.")
}

// confirm asks a yes/no question on the terminal. Anything but y/s is no.
func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [s/N] ", prompt)
	line, _ := a.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tabaum-storage.json"
	}
	return filepath.Join(dir, "tabaum", "storage.json")
}
