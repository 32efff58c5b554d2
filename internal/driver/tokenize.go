package driver

import (
	"kiln/internal/diag"
	"kiln/internal/lexer"
	"kiln/internal/source"
	"kiln/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Diags   *diag.Recorder
}

// Tokenize lexes one file up to and including EOF.
func Tokenize(path string) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	rec := diag.NewRecorder()
	tokens := lexer.Tokenize(fs, fileID, lexer.Options{Sink: rec})
	return &TokenizeResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Tokens:  tokens,
		Diags:   rec,
	}, nil
}
