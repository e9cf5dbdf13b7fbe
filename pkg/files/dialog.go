package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// Dialog is the interactive save-as Saver. It asks for a path, defaulting to
// the suggested name inside Dir, and confirms before overwriting.
type Dialog struct {
	Dir    string
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (d Dialog) Save(ctx context.Context, suggestedName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	def := suggestedName
	if d.Dir != "" && !filepath.IsAbs(def) {
		def = filepath.Join(d.Dir, def)
	}

	prompt := promptui.Prompt{
		Label:     "Save as",
		Default:   def,
		AllowEdit: true,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("a file name is required")
			}
			return nil
		},
		Stdin:  d.Stdin,
		Stdout: d.Stdout,
	}
	path, err := prompt.Run()
	if err != nil {
		return "", PromptError(err)
	}
	path = strings.TrimSpace(path)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("%s exists, overwrite", filepath.Base(path)),
			IsConfirm: true,
			Stdin:     d.Stdin,
			Stdout:    d.Stdout,
		}
		if _, err := confirm.Run(); err != nil {
			// promptui reports a "no" answer to a confirm as ErrAbort.
			return "", PromptError(err)
		}
	}

	if err := writeFile(path, data); err != nil {
		return "", fmt.Errorf("files: save %s: %w", path, err)
	}
	return path, nil
}

// PromptError maps the ways a promptui prompt is abandoned (Ctrl-C, Ctrl-D,
// a "no" to a confirm) to ErrCancelled.
func PromptError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrCancelled
	}
	return fmt.Errorf("prompt: %w", err)
}

// Pick returns the dialog when a user can answer it (interactive allowed and
// both stdin and stdout are terminals) and the download fallback otherwise.
func Pick(interactive bool, dialog Dialog, download Download) Saver {
	if interactive && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return dialog
	}
	return download
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
