package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the broker's service catalog",
		Example: `  broker-cli catalog
  broker-cli catalog --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := clientFromFlags(cmd)

			var catalog struct {
				Services []struct {
					ID          string `json:"id"`
					Name        string `json:"name"`
					Description string `json:"description"`
					Bindable    bool   `json:"bindable"`
					Plans       []struct {
						ID   string `json:"id"`
						Name string `json:"name"`
						Free bool   `json:"free"`
					} `json:"plans"`
				} `json:"services"`
			}
			if err := client.Do("GET", "/v2/catalog", nil, &catalog); err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, catalog)
			}
			for _, svc := range catalog.Services {
				var plans []string
				for _, p := range svc.Plans {
					plans = append(plans, p.Name)
				}
				fmt.Fprintf(os.Stdout, "%s  %s  bindable=%t  plans=%s\n",
					svc.ID, svc.Name, svc.Bindable, strings.Join(plans, ","))
			}
			return nil
		},
	}
}

func printJSON(w *os.File, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
