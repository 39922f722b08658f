package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"glin-wallet/internal/service"
)

const tokenLength = 48

// loadExtensionToken returns configured when set. Otherwise it reads the
// token from path, creating the file with a fresh random token on first run.
func loadExtensionToken(configured, path string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if path == "" {
		return "", errors.New("no extension token configured and no token file given")
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		token := strings.TrimSpace(string(raw))
		if token == "" {
			return "", fmt.Errorf("token file %s is empty", path)
		}
		return token, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("reading token file: %w", err)
	}

	token, err := service.GeneratePassword(tokenLength)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("writing token file: %w", err)
	}
	return token, nil
}
