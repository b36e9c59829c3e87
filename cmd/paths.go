package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/green-city-pages/internal/types"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the static params of every city page as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		slugs, err := a.container.CityService.ListSlugs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list cities: %w", err)
		}

		params := make([]types.CityParam, 0, len(slugs))
		for _, slug := range slugs {
			params = append(params, types.CityParam{City: slug})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(params)
	},
}
