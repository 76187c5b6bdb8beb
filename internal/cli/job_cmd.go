package cli

import (
	"context"
	"fmt"

	"github.com/rcalloway/timebill/internal/cli/formatter"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/spf13/cobra"
)

func newJobCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage jobs and their activity codes",
	}

	cmd.AddCommand(
		newJobAddCmd(app),
		newJobListCmd(app),
		newJobInspectCmd(app),
		newJobUpdateCmd(app),
		newJobRemoveCmd(app),
		newActivityCmd(app),
	)

	return cmd
}

func newJobAddCmd(app *App) *cobra.Command {
	var number, name, description, client string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new job",
		RunE: func(cmd *cobra.Command, args []string) error {
			j := &domain.Job{
				JobNumber:   number,
				JobName:     name,
				Description: description,
				ClientName:  client,
			}
			if err := app.Jobs.Create(context.Background(), j); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created job %s [%s]\n", j.JobName, j.JobNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Job number (e.g. J-100)")
	cmd.Flags().StringVar(&name, "name", "", "Job name")
	cmd.Flags().StringVar(&description, "description", "", "Job description")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newJobListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := app.Jobs.List(context.Background())
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No jobs found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatJobList(jobs))
			return nil
		},
	}
}

func newJobInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show job details and activity codes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			j, err := app.Jobs.GetByID(ctx, id)
			if err != nil {
				return err
			}
			activities, err := app.Jobs.ListActivities(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatJobInspect(j, activities))
			return nil
		},
	}
}

func newJobUpdateCmd(app *App) *cobra.Command {
	var number, name, description, client string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			j, err := app.Jobs.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("number") {
				j.JobNumber = number
			}
			if cmd.Flags().Changed("name") {
				j.JobName = name
			}
			if cmd.Flags().Changed("description") {
				j.Description = description
			}
			if cmd.Flags().Changed("client") {
				j.ClientName = client
			}

			if err := app.Jobs.Update(ctx, j); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated job %s [%s]\n", j.JobName, j.JobNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Job number")
	cmd.Flags().StringVar(&name, "name", "", "Job name")
	cmd.Flags().StringVar(&description, "description", "", "Job description")
	cmd.Flags().StringVar(&client, "client", "", "Client name")

	return cmd
}

func newJobRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Jobs.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed job %s\n", id)
			return nil
		},
	}
}

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage a job's activity codes",
	}

	addCmd := &cobra.Command{
		Use:   "add JOB",
		Short: "Add an activity code to a job",
		Args:  cobra.ExactArgs(1),
	}
	var code, description string
	addCmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		jobID, err := resolveJobID(ctx, app, args[0])
		if err != nil {
			return err
		}
		a := &domain.Activity{JobID: jobID, Code: code, Description: description}
		if err := app.Jobs.AddActivity(ctx, a); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added activity %s - %s\n", a.Code, a.Description)
		return nil
	}
	addCmd.Flags().StringVar(&code, "code", "", "Activity code (e.g. 010)")
	addCmd.Flags().StringVar(&description, "description", "", "Activity description")
	_ = addCmd.MarkFlagRequired("code")
	_ = addCmd.MarkFlagRequired("description")

	removeCmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an activity code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Jobs.DeleteActivity(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed activity %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, removeCmd)
	return cmd
}
