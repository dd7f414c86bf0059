package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/nhle/maildraft/internal/model"
)

// draftFlags binds the flags shared by every command that builds a draft.
type draftFlags struct {
	fs       *pflag.FlagSet
	app      string
	from     string
	to       []string
	cc       []string
	bcc      []string
	subject  string
	body     string
	bodyFile string
	html     bool
	emlFile  bool
}

func newDraftFlags(fs *pflag.FlagSet) *draftFlags {
	f := &draftFlags{fs: fs}
	fs.StringVar(&f.app, "app", "", "target app or alias (mailto, imap, gmail, outlook, ...)")
	fs.StringVar(&f.from, "from", "", "sender address")
	fs.StringSliceVar(&f.to, "to", nil, "recipient address (repeatable or comma-separated)")
	fs.StringSliceVar(&f.cc, "cc", nil, "cc address (repeatable or comma-separated)")
	fs.StringSliceVar(&f.bcc, "bcc", nil, "bcc address (repeatable or comma-separated)")
	fs.StringVar(&f.subject, "subject", "", "subject line")
	fs.StringVar(&f.body, "body", "", "message body")
	fs.StringVar(&f.bodyFile, "body-file", "", "read the body from a file (- for stdin)")
	fs.BoolVar(&f.html, "html", false, "treat the body as HTML")
	fs.BoolVar(&f.emlFile, "eml-file", false, "open as an .eml file instead of a mailto URI")
	return f
}

// properties builds draft properties from the parsed flags. Boolean
// flags that were not given stay unset so configured defaults apply.
func (f *draftFlags) properties(stdin io.Reader) (*model.DraftProperties, error) {
	body := f.body
	if f.bodyFile != "" {
		if f.body != "" {
			return nil, fmt.Errorf("--body and --body-file are mutually exclusive")
		}
		data, err := readInput(f.bodyFile, stdin)
		if err != nil {
			return nil, err
		}
		body = string(data)
	}

	p := &model.DraftProperties{
		App:     f.app,
		From:    f.from,
		To:      addressList(f.to),
		Cc:      addressList(f.cc),
		Bcc:     addressList(f.bcc),
		Subject: f.subject,
		Body:    body,
	}
	if f.fs.Changed("html") {
		p.IsHTML = f.html
	}
	if f.fs.Changed("eml-file") {
		p.EMLFile = f.emlFile
	}
	return p, nil
}

func addressList(v []string) model.AddressList {
	if len(v) == 0 {
		return nil
	}
	return model.AddressList(v)
}

// readInput reads a whole file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
