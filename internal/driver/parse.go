package driver

import (
	"fmt"

	"fortio.org/safecast"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/lexer"
	"kiln/internal/parser"
	"kiln/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	Builder *ast.Builder
	ASTFile ast.FileID
	Diags   *diag.Recorder
}

// Parse lexes and parses one file without folding it.
func Parse(path string, maxErrors int) (*ParseResult, error) {
	limit, err := safecast.Conv[uint](maxErrors)
	if err != nil {
		return nil, fmt.Errorf("max errors: %w", err)
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	rec := diag.NewRecorder()
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs, fileID, lexer.Options{Sink: rec})
	res := parser.ParseFile(path, lx, builder, parser.Options{Sink: rec, MaxErrors: limit})
	return &ParseResult{
		FileSet: fs,
		Builder: builder,
		ASTFile: res.File,
		Diags:   rec,
	}, nil
}
