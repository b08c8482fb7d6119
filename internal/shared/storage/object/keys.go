package object

import (
	"fmt"
	"path"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"realestate-backend/internal/shared/util"
)

const keyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewKey builds a collision-resistant storage key "<folder>/<nanoid>_<name>".
func NewKey(folder, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	id, err := gonanoid.Generate(keyAlphabet, 16)
	if err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	finalName := id + "_" + name

	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return finalName, nil
	}
	return path.Join(folder, finalName), nil
}
