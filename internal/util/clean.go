package util

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const maxBinaryCheckBytes = 512

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Invisible direction and joiner marks are common in text pasted from
// Arabic word processors.
var charReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u200b", "", "\u200c", "", "\u200d", "",
	"\u200e", "", "\u200f", "",
	"\u202a", "", "\u202b", "", "\u202c", "", "\u202d", "", "\u202e", "",
	"\ufeff", "",
	"\r\n", "\n",
	"\r", "\n",
)

func IsLikelyBinary(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, maxBinaryCheckBytes)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	return bytes.Contains(buffer[:n], []byte{0}), nil
}

func CleanFileContent(fileContentBytes []byte, src string) (string, error) {
	fileContentBytes = bytes.TrimPrefix(fileContentBytes, utf8BOM)

	if !utf8.Valid(fileContentBytes) {
		log.Warnf("%s invalid UTF-8, replacing invalid chars", src)
		fileContentBytes = bytes.ToValidUTF8(fileContentBytes, []byte(string(utf8.RuneError)))
	}

	str := charReplacer.Replace(string(fileContentBytes))

	if !utf8.ValidString(str) {
		log.Errorf("%s still invalid after cleaning", src)
		return "", fmt.Errorf("invalid UTF-8 after replacements: %s", src)
	}
	return str, nil
}

// ReadProblemLines reads a batch file with one problem per line. Blank lines
// are kept so line numbers stay meaningful.
func ReadProblemLines(path string) ([]string, error) {
	binary, err := IsLikelyBinary(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if binary {
		return nil, fmt.Errorf("%s looks like a binary file", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	content, err := CleanFileContent(raw, path)
	if err != nil {
		return nil, err
	}
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return []string{}, nil
	}
	return strings.Split(content, "\n"), nil
}
