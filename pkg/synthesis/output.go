package synthesis

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TemplateFile is a synthesized template held in memory until written.
type TemplateFile struct {
	FPath   string
	Content []byte
}

func (f *TemplateFile) Path() string { return f.FPath }

func (f *TemplateFile) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Content)
	return int64(n), err
}

// File renders the artifact's template as indented JSON named after the
// stack.
func (a *StackArtifact) File() (*TemplateFile, error) {
	content, err := json.MarshalIndent(a.Template, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling template for stack '%s'", a.Name)
	}
	return &TemplateFile{
		FPath:   a.Name + ".json",
		Content: append(content, '\n'),
	}, nil
}

// WriteArtifacts writes one template file per artifact under dir, creating
// it if needed.
func WriteArtifacts(dir string, artifacts []*StackArtifact) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating output directory '%s'", dir)
	}
	for _, a := range artifacts {
		f, err := a.File()
		if err != nil {
			return err
		}
		target := filepath.Join(dir, f.Path())
		out, err := os.Create(target)
		if err != nil {
			return errors.Wrapf(err, "creating '%s'", target)
		}
		if _, err := f.WriteTo(out); err != nil {
			out.Close()
			return errors.Wrapf(err, "writing '%s'", target)
		}
		if err := out.Close(); err != nil {
			return errors.Wrapf(err, "closing '%s'", target)
		}
		zap.S().Infof("wrote %s", target)
	}
	return nil
}
