package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/HoloFavs/internal/client/store"
	"github.com/atinyakov/HoloFavs/internal/models"
	"github.com/spf13/cobra"
)

const shellHelp = `Available commands:
  load                       reload characters, vehicles and planets
  list <type>                show a loaded list
  details <type> <id>        show one entity
  fav add <type> <id>        add a favorite
  fav rm <id>                remove a favorite
  favs                       show favorites
  help, exit`

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session over one store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// repl runs the interactive shell loop. The catalog lists start loading in
// the background right away; commands that need them wait for that load.
func (a *app) repl(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	load := store.Go(ctx, a.store.FetchAll)
	defer func() {
		cancel()
		<-load.Done()
	}()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "holofavs> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		var err error
		switch args[0] {
		case "help":
			fmt.Fprintln(out, shellHelp)
		case "load":
			if err = a.store.FetchAll(ctx); err == nil {
				st := a.store.Get()
				fmt.Fprintf(out, "loaded %d characters, %d vehicles, %d planets\n",
					len(st.Characters), len(st.Vehicles), len(st.Planets))
			}
		case "list":
			err = a.shellList(ctx, out, load, args[1:])
		case "details":
			err = a.shellDetails(ctx, out, args[1:])
		case "fav":
			err = a.shellFav(ctx, out, load, args[1:])
		case "favs":
			printFavorites(out, a.store.Get().Favorites)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye")
			return nil
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
		}
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

// waitLoad blocks until the initial background load is done. Its error is
// reported but the lists loaded so far are still usable.
func waitLoad(ctx context.Context, out io.Writer, load *store.Task) error {
	err := load.WaitContext(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if err != nil {
		fmt.Fprintln(out, "warning: initial load failed:", err)
	}
	return nil
}

func (a *app) shellList(ctx context.Context, out io.Writer, load *store.Task, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: list <type>")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	if err := waitLoad(ctx, out, load); err != nil {
		return err
	}
	printList(out, entities(a.store.Get(), kind))
	return nil
}

func (a *app) shellDetails(ctx context.Context, out io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: details <type> <id>")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	var none models.Entity
	a.store.Set(store.Patch{Details: &none})
	if err := a.store.FetchDetails(ctx, kind, id); err != nil {
		return err
	}
	return printDetails(out, a.store.Get().Details)
}

func (a *app) shellFav(ctx context.Context, out io.Writer, load *store.Task, args []string) error {
	switch {
	case len(args) == 3 && args[0] == "add":
		kind, err := parseKind(args[1])
		if err != nil {
			return err
		}
		id, err := parseID(args[2])
		if err != nil {
			return err
		}
		if err := waitLoad(ctx, out, load); err != nil {
			return err
		}
		name := entityName(entities(a.store.Get(), kind), id)
		if err := a.store.AddFavorite(ctx, id, name, kind); err != nil {
			return err
		}
		fmt.Fprintf(out, "added %s to favorites\n", name)
	case len(args) == 2 && args[0] == "rm":
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.store.RemoveFavorite(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %d from favorites\n", id)
	default:
		return errors.New("usage: fav add <type> <id> | fav rm <id>")
	}
	return nil
}
