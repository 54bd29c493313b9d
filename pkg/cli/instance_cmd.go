package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func newInstanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instance",
		Short: "Manage service instances",
	}
	cmd.AddCommand(newInstanceCreateCmd())
	cmd.AddCommand(newInstanceGetCmd())
	cmd.AddCommand(newInstanceDeleteCmd())
	return cmd
}

func newInstanceCreateCmd() *cobra.Command {
	var serviceID, planID string

	cmd := &cobra.Command{
		Use:   "create <instance-id>",
		Short: "Provision a service instance",
		Example: `  broker-cli instance create my-instance \
    --service-id bdb1be2e-360b-495c-8115-d7697f9c6a9e \
    --plan-id b973fb78-82f3-49ef-9b8b-c1876974a6cd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromFlags(cmd)
			body := map[string]interface{}{
				"service_id": serviceID,
				"plan_id":    planID,
			}
			path := "/v2/service_instances/" + url.PathEscape(args[0])
			if err := client.Do("PUT", path, body, nil); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "instance %s provisioned\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceID, "service-id", "", "Service definition ID from the catalog")
	cmd.Flags().StringVar(&planID, "plan-id", "", "Plan ID from the catalog")
	_ = cmd.MarkFlagRequired("service-id")
	_ = cmd.MarkFlagRequired("plan-id")

	return cmd
}

func newInstanceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <instance-id>",
		Short: "Show a service instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromFlags(cmd)
			var out map[string]interface{}
			path := "/v2/service_instances/" + url.PathEscape(args[0])
			if err := client.Do("GET", path, nil, &out); err != nil {
				return err
			}
			return printJSON(os.Stdout, out)
		},
	}
}

func newInstanceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <instance-id>",
		Short: "Deprovision a service instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromFlags(cmd)
			path := "/v2/service_instances/" + url.PathEscape(args[0])
			if err := client.Do("DELETE", path, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "instance %s deleted\n", args[0])
			return nil
		},
	}
}
