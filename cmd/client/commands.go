package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/atinyakov/HoloFavs/internal/client/store"
	"github.com/atinyakov/HoloFavs/internal/models"
	"github.com/spf13/cobra"
)

func (a *app) listCmd(use string, kind models.EntityType) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("List %s from SWAPI", use),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.fetch(cmd.Context(), kind); err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), entities(a.store.Get(), kind))
			return nil
		},
	}
}

func (a *app) detailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details <type> <id>",
		Short: "Show one character, vehicle or planet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := a.store.FetchDetails(cmd.Context(), kind, id); err != nil {
				return err
			}
			return printDetails(cmd.OutOrStdout(), a.store.Get().Details)
		},
	}
}

func (a *app) fetch(ctx context.Context, kind models.EntityType) error {
	switch kind {
	case models.People:
		return a.store.FetchCharacters(ctx)
	case models.Vehicles:
		return a.store.FetchVehicles(ctx)
	default:
		return a.store.FetchPlanets(ctx)
	}
}

func entities(st store.State, kind models.EntityType) []models.Entity {
	switch kind {
	case models.People:
		return st.Characters
	case models.Vehicles:
		return st.Vehicles
	case models.Planets:
		return st.Planets
	}
	return nil
}

// entityName finds the display name of id in list, as SWAPI lists carry
// string uids.
func entityName(list []models.Entity, id int64) string {
	want := fmt.Sprint(id)
	for _, e := range list {
		if fmt.Sprint(e["uid"]) == want {
			if name, ok := e["name"].(string); ok {
				return name
			}
		}
	}
	return "#" + want
}

func printList(w io.Writer, list []models.Entity) {
	if len(list) == 0 {
		fmt.Fprintln(w, "nothing loaded")
		return
	}
	for _, e := range list {
		fmt.Fprintf(w, "%5v  %v\n", e["uid"], e["name"])
	}
}

func printDetails(w io.Writer, d models.Entity) error {
	if d == nil {
		fmt.Fprintln(w, "no details found")
		return nil
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func printFavorites(w io.Writer, favs []store.Favorite) {
	if len(favs) == 0 {
		fmt.Fprintln(w, "no favorites")
		return
	}
	for _, f := range favs {
		fmt.Fprintf(w, "%5d  %-9s %-10s %s\n", f.ID, f.Type, f.Status, f.Name)
	}
}
