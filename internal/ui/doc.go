// Package ui renders non-interactive terminal output for catalogctl
// commands: command banners, step lists, success and error boxes, tables,
// and the typed confirmation prompt used before destructive commands.
//
// Commands that do a few sequential steps use a Runner:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:   "Delete product",
//	    Command: "catalogctl delete prod_1",
//	    Steps:   []string{"Fetch product", "Delete product"},
//	    Hint:    catalogapi.GetTroubleshootingHint,
//	})
//	err := runner.Run(ctx, func(ctx context.Context, step ui.StepFunc) ([]ui.Detail, error) {
//	    step(1, ui.StepRunning, "")
//	    ...
//	})
//
// Logging stays silent unless CATALOGCTL_LOG_LEVEL is set, so this output
// is the only thing users see by default.
package ui
