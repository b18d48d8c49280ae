package entities

import "github.com/spf13/cobra"

// ControllerBind carries the Cobra metadata a controller is exposed with.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entry point wired into the root command.
type Controller interface {
	GetBind() ControllerBind
	Execute(command *cobra.Command, arguments []string)
}
