package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joestump/joe-blog/internal/blog"
	"github.com/joestump/joe-blog/internal/config"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		sub          blog.Submission
		templateFile string
		outDir       string
	)
	defaults := blog.Defaults("")

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one article and write it to <topic>-blog.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if sub.APIKey == "" {
				sub.APIKey = cfg.LLM.APIKey
			}
			if sub.Model == "" {
				sub.Model = cfg.LLM.Model
			}
			sub.Template = defaults.Template
			if templateFile != "" {
				b, err := os.ReadFile(templateFile)
				if err != nil {
					return fmt.Errorf("read template: %w", err)
				}
				sub.Template = string(b)
			}
			if strings.TrimSpace(sub.Keyword) == "" {
				sub.Keyword = sub.Topic
			}

			svc := blog.NewService(cfg.LLM.Provider, cfg.LLM.BaseURL, nil)
			path, err := runGenerate(cmd.Context(), svc, sub, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&sub.Topic, "topic", defaults.Topic, "article topic")
	f.StringVar(&sub.Keyword, "keyword", "", "main SEO keyword (defaults to the topic)")
	f.StringVar(&sub.APIKey, "api-key", "", "provider API key (defaults to JOE_BLOG_LLM_API_KEY)")
	f.StringVar(&sub.Model, "model", "", "model name (defaults to the configured model)")
	f.Float64Var(&sub.Temperature, "temperature", defaults.Temperature, "sampling temperature")
	f.IntVar(&sub.MaxOutputTokens, "max-tokens", defaults.MaxOutputTokens, "maximum output tokens")
	f.StringVar(&templateFile, "template-file", "", "prompt template file using {keyword} and {topic}")
	f.StringVarP(&outDir, "out", "o", ".", "directory to write the article to")
	return cmd
}

// runGenerate performs one generation and writes the article into outDir
// under its download filename. It returns the written path.
func runGenerate(ctx context.Context, svc *blog.Service, sub blog.Submission, outDir string) (string, error) {
	fi, err := os.Stat(outDir)
	if err != nil {
		return "", fmt.Errorf("output directory: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("output directory: %s is not a directory", outDir)
	}

	out := svc.Run(ctx, sub)
	if out.State != blog.StateDisplaying {
		return "", errors.New(out.Notice.Message)
	}

	path := filepath.Join(outDir, localFilename(out.Result.Filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.WriteString(f, out.Result.Text); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// localFilename turns a download filename into a single path element so the
// article always lands directly inside the output directory.
func localFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '-'
		}
		return r
	}, name)
}
