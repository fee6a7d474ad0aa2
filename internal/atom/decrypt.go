package atom

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Decrypt is the file.decrypt atom (comtrya atoms/file/decrypt.rs):
// decrypts a symmetrically-encrypted OpenPGP message, using the same
// go-crypto package go-git already pulls in for SSH signing, rather than
// shelling out to gpg.
type Decrypt struct {
	ManifestName string
	From         string
	To           string
	Passphrase   string

	errorMessage string
}

var _ model.Atom = (*Decrypt)(nil)

func (a *Decrypt) Plan(context.Context) (model.Outcome, error) {
	if _, err := os.Stat(a.To); err == nil {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"decrypt " + a.From + " to " + a.To}, ShouldRun: true}, nil
}

func (a *Decrypt) Execute(context.Context) error {
	in, err := os.Open(a.From)
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	defer in.Close()

	promptFunc := func([]openpgp.Key, bool) ([]byte, error) {
		return []byte(a.Passphrase), nil
	}

	md, err := openpgp.ReadMessage(in, nil, promptFunc, &packet.Config{})
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.To), 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	out, err := os.OpenFile(a.To, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, md.UnverifiedBody); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *Decrypt) OutputString() string { return a.To }
func (a *Decrypt) ErrorMessage() string  { return a.errorMessage }
