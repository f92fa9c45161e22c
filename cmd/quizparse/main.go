package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"quiz-import/internal/config"
	"quiz-import/internal/domain"
	"quiz-import/internal/parser"
	"quiz-import/internal/service"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// source is one input document: a file path or "-" for stdin.
type source struct {
	Name string
	Text string
}

// result is the parse output of one source.
type result struct {
	Source    string            `json:"source" yaml:"source"`
	Count     int               `json:"count" yaml:"count"`
	Questions []domain.Question `json:"questions" yaml:"questions"`
}

var rootCmd = &cobra.Command{
	Use:   "quizparse [file...]",
	Short: "Parse quiz text into structured questions",
	Long: `Parses plain-text quizzes (pasted, OCR output or .txt exports) and prints
the structured questions. Reads stdin when no file is given.`,
	SilenceUsage: true,
	RunE:         runParse,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for the import API",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	rootCmd.Flags().StringP("format", "f", "json", "Output format: json, yaml")
	tokenCmd.Flags().StringP("user", "u", "", "User ID to put in the token subject")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format: %s (supported: json, yaml)", format)
	}

	sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	results, err := parseSources(cmd.Context(), parser.New(), sources)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Count == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: no questions found in %s\n", r.Source)
		}
	}
	return render(cmd.OutOrStdout(), format, results)
}

func readSources(stdin io.Reader, args []string) ([]source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	sources := make([]source, 0, len(args))
	for _, name := range args {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		sources = append(sources, source{Name: name, Text: string(data)})
	}
	return sources, nil
}

// parseSources parses every source concurrently and returns the results in
// input order.
func parseSources(ctx context.Context, p *parser.Parser, sources []source) ([]result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]result, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			questions := p.Parse(src.Text)
			results[i] = result{Source: src.Name, Count: len(questions), Questions: questions}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func render(w io.Writer, format string, results []result) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	auth, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		return err
	}
	token, err := auth.CreateAccessToken(cmd.Context(), userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
