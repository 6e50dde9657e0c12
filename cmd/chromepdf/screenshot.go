package main

import (
	"github.com/spf13/cobra"

	"github.com/porticus-lab/chromepdf/browserless"
)

func newScreenshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenshot [flags] <url>",
		Short: "Capture a web page as an image through Browserless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScreenshot,
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "write the image to this file instead of stdout")
	f.Bool("base64", false, "write the image base64-encoded")
	f.String("api-key", "", "Browserless API key")
	f.String("endpoint", string(browserless.EndpointDefault), "Browserless endpoint")
	f.String("type", "jpeg", "image type: jpeg or png")
	f.Int("quality", 75, "JPEG quality")
	f.Bool("full-page", false, "capture the full scrollable page")
	return cmd
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(v)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := browserless.NewClient(v.GetString("api-key"),
		browserless.WithEndpoint(browserless.Endpoint(v.GetString("endpoint"))),
		browserless.WithLogger(logger))
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	if v.IsSet("type") {
		overrides["type"] = v.GetString("type")
	}
	if v.IsSet("quality") {
		overrides["quality"] = v.GetInt("quality")
	}
	if v.IsSet("full-page") {
		overrides["fullPage"] = v.GetBool("full-page")
	}

	stream, err := browserless.NewScreenshot(client).Render(cmd.Context(), args[0], overrides)
	if err != nil {
		return err
	}
	return writeOutput(v, cmd.OutOrStdout(), stream)
}
