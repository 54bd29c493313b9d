package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func newBindingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "binding",
		Short: "Manage service bindings",
	}
	cmd.AddCommand(newBindingCreateCmd())
	cmd.AddCommand(newBindingGetCmd())
	cmd.AddCommand(newBindingDeleteCmd())
	return cmd
}

func bindingPath(instanceID, bindingID string) string {
	return "/v2/service_instances/" + url.PathEscape(instanceID) +
		"/service_bindings/" + url.PathEscape(bindingID)
}

func newBindingCreateCmd() *cobra.Command {
	var serviceID, planID, appGUID string

	cmd := &cobra.Command{
		Use:   "create <instance-id> <binding-id>",
		Short: "Create a service binding and print its credentials",
		Long: `Creates a binding against a provisioned instance. The broker issues a
dedicated user scoped to the instance's store and returns its credentials.
Repeating the command with the same binding ID returns the original
credentials without issuing new ones.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromFlags(cmd)
			body := map[string]interface{}{
				"service_id": serviceID,
				"plan_id":    planID,
			}
			if appGUID != "" {
				body["bind_resource"] = map[string]interface{}{"app_guid": appGUID}
			}

			var out map[string]interface{}
			if err := client.Do("PUT", bindingPath(args[0], args[1]), body, &out); err != nil {
				return err
			}
			return printJSON(os.Stdout, out)
		},
	}

	cmd.Flags().StringVar(&serviceID, "service-id", "", "Service definition ID from the catalog")
	cmd.Flags().StringVar(&planID, "plan-id", "", "Plan ID from the catalog")
	cmd.Flags().StringVar(&appGUID, "app-guid", "", "GUID of the application the binding is for")
	_ = cmd.MarkFlagRequired("service-id")
	_ = cmd.MarkFlagRequired("plan-id")

	return cmd
}

func newBindingGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <instance-id> <binding-id>",
		Short: "Show a service binding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromFlags(cmd)
			var out map[string]interface{}
			if err := client.Do("GET", bindingPath(args[0], args[1]), nil, &out); err != nil {
				return err
			}
			return printJSON(os.Stdout, out)
		},
	}
}

func newBindingDeleteCmd() *cobra.Command {
	var serviceID string

	cmd := &cobra.Command{
		Use:   "delete <instance-id> <binding-id>",
		Short: "Delete a service binding and revoke its credentials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromFlags(cmd)
			path := bindingPath(args[0], args[1])
			if serviceID != "" {
				path += "?service_id=" + url.QueryEscape(serviceID)
			}
			if err := client.Do("DELETE", path, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "binding %s deleted\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceID, "service-id", "", "Service definition ID (needed to clean up escrowed secrets)")

	return cmd
}
