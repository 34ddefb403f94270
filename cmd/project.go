package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-tracker/internal/storage"
)

var newCmd = &cobra.Command{
	Use:   "new <project>",
	Short: "Create a project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNew,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <project>",
	Short: "Delete a project and all of its jobs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDelete,
}

func runNew(cmd *cobra.Command, args []string) error {
	name := argAt(args, 0)
	db, err := openStore(storage.Selection{Project: name})
	if err != nil {
		return err
	}
	if err := db.CreateProject(name); err != nil {
		return handleError(cmd.ErrOrStderr(), err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), styleOK.Render(fmt.Sprintf("Created project %q.", name)))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := argAt(args, 0)
	db, err := openStore(storage.Selection{Project: name})
	if err != nil {
		return err
	}
	removed, err := db.DeleteProject(name)
	if err != nil {
		return handleError(cmd.ErrOrStderr(), err)
	}
	if removed == 0 {
		return handleError(cmd.ErrOrStderr(), &storage.Error{Kind: storage.KindWrongName, Name: name})
	}
	fmt.Fprintln(cmd.OutOrStdout(), styleOK.Render(fmt.Sprintf("Deleted project %q.", name)))
	return nil
}
