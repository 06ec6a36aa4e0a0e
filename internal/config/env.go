package config

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
)

// EnvFiles are loaded, when present, before the configuration file.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads every present file of EnvFiles. Variables already set in
// the process environment win over file values, and earlier files win over
// later ones.
func LoadEnvFiles() error {
	for _, path := range EnvFiles {
		if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				WithContext("path", path).
				Build()
		}
	}
	return nil
}
