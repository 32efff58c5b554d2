package ast

type File struct {
	Path  string
	Stmts []StmtID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(path string) FileID {
	return FileID(f.Arena.Allocate(File{
		Path:  path,
		Stmts: make([]StmtID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
