package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tabaum/storefront/internal/catalog"
	"github.com/tabaum/storefront/internal/client"
	"github.com/tabaum/storefront/internal/storefront/render"
	"github.com/tabaum/storefront/internal/storefront/session"
)

func newProductsCmd(a *app) *cobra.Command {
	var q client.ProductQuery
	var offline bool

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Lista os produtos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !offline {
				products, err := a.api.Products(cmd.Context(), q)
				if err == nil {
					render.Products(a.out, products)
					return nil
				}
				a.log.Warn().Err(err).Msg("product listing unavailable, using bundled catalog")
			}
			render.Products(a.out, a.catalog.Filter(catalogQuery(q)))
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "filter by name")
	cmd.Flags().StringVar(&q.Category, "category", "", "rustica, corte or servir")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "low or high")
	cmd.Flags().BoolVar(&offline, "offline", false, "use the bundled catalog only")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>",
		Short: "Adiciona um produto ao carrinho",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a.panel.show = true
			return a.cart.AddToCart(id)
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove um produto do carrinho",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a.showCart()
			return a.cart.RemoveFromCart(id)
		},
	}
}

func newQtyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "qty <id> <delta>",
		Short:   "Altera a quantidade de um produto",
		Example: "  storefront qty 1 1\n  storefront qty -- 1 -1",
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantidade inválida: %q", args[1])
			}
			a.showCart()
			return a.cart.ChangeQty(id, delta)
		},
	}
}

func newCartCmd(a *app) *cobra.Command {
	var badge bool
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Mostra o carrinho",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.panel.show = true
			if badge {
				a.cart.Close()
				return nil
			}
			a.cart.Open()
			return nil
		},
	}
	cmd.Flags().BoolVar(&badge, "badge", false, "show the item count only")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Cria uma conta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.api.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			return a.storeSession(res)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "e-mail")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 8 characters")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Entra na conta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return a.storeSession(res)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "e-mail")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Mostra a sessão atual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if local {
				render.Account(a.out, a.guard.CheckAuth())
				return nil
			}
			vm, err := a.guard.Verify(cmd.Context())
			if err != nil {
				a.log.Warn().Err(err).Msg("could not verify session, showing stored state")
			}
			render.Account(a.out, vm)
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "skip server verification")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sai da conta",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			confirm := a.confirm
			if yes {
				confirm = func(string) bool { return true }
			}
			outcome, err := a.guard.Activate(confirm)
			if err != nil {
				return err
			}
			switch outcome {
			case session.OutcomeNavigateLogin:
				fmt.Fprintln(a.out, "Nenhuma sessão ativa. Use: storefront login")
			case session.OutcomeCancelled:
				fmt.Fprintln(a.out, "Operação cancelada.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newContactCmd(a *app) *cobra.Command {
	var name, email, subject, message string
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Envia uma mensagem de contato",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := a.api.Contact(cmd.Context(), name, email, subject, message)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "e-mail")
	cmd.Flags().StringVar(&subject, "subject", "", "subject")
	cmd.Flags().StringVar(&message, "message", "", "message body")
	return cmd
}

func (a *app) storeSession(res *client.AuthResponse) error {
	if err := a.guard.Store(session.Session{Token: res.Token, User: res.User}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Message)
	render.Account(a.out, a.guard.CheckAuth())
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id de produto inválido: %q", s)
	}
	return id, nil
}

func catalogQuery(q client.ProductQuery) catalog.Query {
	return catalog.Query{Search: q.Search, Category: q.Category, Sort: q.Sort}
}
