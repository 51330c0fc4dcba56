package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/formflow/formflow"
	"github.com/formflow/formflow/pkg/renderers/tui"
	"github.com/formflow/formflow/pkg/schema"
)

func main() {
	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "formflow-cli",
		Usage: "fill server-declared multi-section forms from the terminal",
		Commands: []*cli.Command{
			newFillCommand(),
			newImportCommand(),
		},
	}
}

func newFillCommand() *cli.Command {
	return &cli.Command{
		Name:  "fill",
		Usage: "log in, fetch the form for a roll number, and fill it interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "form service base URL"},
			&cli.StringFlag{Name: "roll", Usage: "roll number identifying the user"},
			&cli.StringFlag{Name: "name", Usage: "display name registered at login"},
			&cli.StringFlag{Name: "source", Usage: "local form document (JSON/YAML path or URL), bypassing login"},
			&cli.StringFlag{Name: "output", Value: "json", Usage: "output format: json, form, or pretty"},
			&cli.StringFlag{Name: "out", Usage: "output file (stdout if empty)"},
		},
		Action: runFill,
	}
}

func runFill(ctx context.Context, cmd *cli.Command) error {
	user := schema.User{
		RollNumber: cmd.String("roll"),
		Name:       cmd.String("name"),
	}

	form, ok, err := resolveForm(ctx, cmd, user)
	if err != nil {
		return err
	}
	if !ok || len(form.Sections) == 0 {
		fmt.Println("No form available.")
		return nil
	}

	renderer, err := formflow.NewTUIRenderer(
		tui.WithOutputFormat(tui.OutputFormat(cmd.String("output"))),
	)
	if err != nil {
		return err
	}

	sess := formflow.NewSession(user, form)
	payload, err := renderer.Run(ctx, sess)
	if err != nil {
		return err
	}

	return emit(cmd.String("out"), payload)
}

// resolveForm returns the form to fill, or ok=false for the empty-form
// state. A fetch failure is logged and collapses into that same state; only
// login failures surface as errors the user acts on.
func resolveForm(ctx context.Context, cmd *cli.Command, user schema.User) (schema.Form, bool, error) {
	if source := cmd.String("source"); source != "" {
		form, err := loadLocalForm(ctx, source)
		if err != nil {
			return schema.Form{}, false, err
		}
		return form, true, nil
	}

	baseURL := cmd.String("base-url")
	if baseURL == "" {
		return schema.Form{}, false, errors.New("either --source or --base-url is required")
	}
	if user.RollNumber == "" || user.Name == "" {
		return schema.Form{}, false, errors.New("--roll and --name are required with --base-url")
	}

	svc, err := formflow.NewClient(baseURL)
	if err != nil {
		return schema.Form{}, false, err
	}

	if err := svc.CreateUser(ctx, user); err != nil {
		return schema.Form{}, false, fmt.Errorf("login failed: %w", err)
	}

	form, err := svc.FetchForm(ctx, user.RollNumber)
	if err != nil {
		log.Printf("fetch form: %v", err)
		return schema.Form{}, false, nil
	}
	return form, true, nil
}

func loadLocalForm(ctx context.Context, source string) (schema.Form, error) {
	src, err := schema.ParseSource(source)
	if err != nil {
		return schema.Form{}, err
	}

	loader := formflow.NewLoader(formflow.LoaderOptions{
		HTTPClient:     &http.Client{},
		RequestTimeout: 30 * time.Second,
	})
	data, err := loader.Load(ctx, src)
	if err != nil {
		return schema.Form{}, err
	}
	return formflow.DecodeForm(data)
}

func newImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "build a form document from an operation in an OpenAPI 3 document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Required: true, Usage: "OpenAPI document path or URL"},
			&cli.StringFlag{Name: "operation", Required: true, Usage: "operation id to convert"},
			&cli.StringFlag{Name: "out", Usage: "output file (stdout if empty)"},
		},
		Action: runImport,
	}
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	src, err := schema.ParseSource(cmd.String("source"))
	if err != nil {
		return err
	}

	loader := formflow.NewLoader(formflow.LoaderOptions{
		HTTPClient:     &http.Client{},
		RequestTimeout: 30 * time.Second,
	})
	data, err := loader.Load(ctx, src)
	if err != nil {
		return err
	}

	form, err := formflow.ImportOpenAPI(ctx, data, cmd.String("operation"))
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return err
	}
	return emit(cmd.String("out"), append(payload, '\n'))
}

func emit(path string, payload []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Written to %s\n", path)
	return nil
}
