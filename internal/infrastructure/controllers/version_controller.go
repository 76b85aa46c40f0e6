package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/forksync/internal/domain/entities"
)

// Version is the build version, overridden at link time with
// -ldflags "-X .../controllers.Version=v1.2.3".
var Version = "dev" //nolint:gochecknoglobals // set via ldflags

// VersionController handles the "version" subcommand.
type VersionController struct{}

// NewVersionController creates a new VersionController.
func NewVersionController() *VersionController {
	return &VersionController{}
}

// GetBind returns the Cobra command metadata for the version controller.
func (it *VersionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "version",
		Short: "Print the forksync version",
	}
}

// Execute prints the version.
func (it *VersionController) Execute(cmd *cobra.Command, _ []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "forksync %s\n", Version)
	return nil
}
