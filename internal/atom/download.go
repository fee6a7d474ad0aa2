package atom

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Download is the file.download atom: fetches a URL to a local path. No
// library in the retrieved corpus wraps HTTP downloads directly (only
// net/http-based HTTP servers/clients appear, never a download helper),
// so this uses the standard library's http.Client the way the teacher's
// own plugins use os/exec directly rather than a shell wrapper.
type Download struct {
	ManifestName string
	URL          string
	To           string
	Mode         os.FileMode

	errorMessage string
}

var _ model.Atom = (*Download)(nil)

func (a *Download) Plan(context.Context) (model.Outcome, error) {
	if _, err := os.Stat(a.To); err == nil {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"download " + a.URL + " to " + a.To}, ShouldRun: true}, nil
}

func (a *Download) Execute(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.To), 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %s downloading %s", resp.Status, a.URL)
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	mode := a.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := writeEntry(a.To, resp.Body, mode); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *Download) OutputString() string { return a.To }
func (a *Download) ErrorMessage() string  { return a.errorMessage }
