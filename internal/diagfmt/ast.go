package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"kiln/internal/ast"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Pos      string          `json:"pos"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty prints the statements of a file as a tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := fileNode(builder, fileID)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "File %s\n", root.Text); err != nil {
		return err
	}
	for i, child := range root.Children {
		if err := writeNodePretty(w, child, "", i == len(root.Children)-1); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTJSON prints the same tree as indented JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := fileNode(builder, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func writeNodePretty(w io.Writer, n ASTNodeOutput, prefix string, last bool) error {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	line := prefix + branch + n.Type
	if n.Kind != "" {
		line += " " + n.Kind
	}
	if n.Text != "" {
		line += " " + n.Text
	}
	if _, err := fmt.Fprintf(w, "%s (%s)\n", line, n.Pos); err != nil {
		return err
	}
	for i, child := range n.Children {
		if err := writeNodePretty(w, child, prefix+next, i == len(n.Children)-1); err != nil {
			return err
		}
	}
	return nil
}

func fileNode(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file not found")
	}
	root := ASTNodeOutput{Type: "File", Pos: "-", Text: file.Path}
	for _, stmtID := range file.Stmts {
		stmt := builder.Stmts.Get(stmtID)
		if stmt == nil {
			continue
		}
		node := ASTNodeOutput{Type: "Stmt", Kind: stmt.Kind.String(), Pos: formatPos(stmt.Pos), Text: stmt.Name}
		if stmt.Kind != ast.StmtExtern {
			node.Children = append(node.Children, exprNode(builder, stmt.Value))
		}
		root.Children = append(root.Children, node)
	}
	return root, nil
}

func exprNode(builder *ast.Builder, id ast.ExprID) ASTNodeOutput {
	expr := builder.Exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "Invalid", Pos: "-"}
	}
	node := ASTNodeOutput{Type: "Expr", Kind: expr.Kind.String(), Pos: formatPos(expr.Pos)}
	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := builder.Exprs.Ident(id); ok {
			node.Text = data.Name
		}
	case ast.ExprLit:
		if data, ok := builder.Exprs.Literal(id); ok {
			node.Text = data.Value
			if data.Kind == ast.ExprLitString {
				node.Text = strconv.Quote(data.Value)
			}
		}
	case ast.ExprUnary:
		if data, ok := builder.Exprs.Unary(id); ok {
			node.Text = data.Op.String()
			node.Children = []ASTNodeOutput{exprNode(builder, data.Operand)}
		}
	case ast.ExprBinary:
		if data, ok := builder.Exprs.Binary(id); ok {
			node.Text = data.Op.String()
			node.Children = []ASTNodeOutput{exprNode(builder, data.Left), exprNode(builder, data.Right)}
		}
	case ast.ExprGroup:
		if data, ok := builder.Exprs.Group(id); ok {
			node.Children = []ASTNodeOutput{exprNode(builder, data.Inner)}
		}
	}
	return node
}
