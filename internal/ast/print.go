package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of node to w, grounded on the
// teacher's syntax.Fprint: one indented line per node, children nested
// under a labeled field.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) field(name string, n Node) {
	p.printf("%s:\n", name)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		for _, imp := range n.Imports {
			p.print(imp)
		}
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *ImportDecl:
		kw := "import"
		if n.Export {
			kw = "export"
		}
		p.printf("ImportDecl %s %s %s\n", n.pos, kw, n.Name.Value)

	case *NamespaceDecl:
		p.printf("NamespaceDecl %s %s\n", n.pos, n.Name.Value)
		p.indent++
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *ClassDecl:
		kw := "class"
		if n.IsStruct {
			kw = "struct"
		}
		base := ""
		if n.Base != nil {
			base = " : " + n.Base.Value
		}
		p.printf("ClassDecl %s %s %s%s\n", n.pos, kw, n.Name.Value, base)
		p.indent++
		for _, m := range n.Members {
			p.print(m)
		}
		p.indent--

	case *AccessLabel:
		p.printf("AccessLabel %s %s\n", n.pos, accessString(n.Access))

	case *FriendDecl:
		p.printf("FriendDecl %s %s\n", n.pos, n.Name.Value)

	case *EnumDecl:
		kw := "enum"
		if n.IsEnumClass {
			kw = "enum class"
		}
		p.printf("EnumDecl %s %s %s\n", n.pos, kw, n.Name.Value)
		p.indent++
		for _, v := range n.Values {
			p.print(v)
		}
		p.indent--

	case *EnumValue:
		p.printf("EnumValue %s %s\n", n.pos, n.Name.Value)
		if n.Value != nil {
			p.indent++
			p.field("Value", n.Value)
			p.indent--
		}

	case *TypedefDecl:
		p.printf("TypedefDecl %s %s\n", n.pos, n.Name.Value)
		p.indent++
		p.field("Type", n.Type)
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s %s\n", n.pos, identString(n.Name))
		p.indent++
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.print(f)
			}
			p.indent--
		}
		if n.Result != nil {
			p.field("Result", n.Result)
		}
		if len(n.Inits) > 0 {
			p.printf("Inits:\n")
			p.indent++
			for _, init := range n.Inits {
				p.print(init)
			}
			p.indent--
		}
		if n.Body != nil {
			p.field("Body", n.Body)
		}
		p.indent--

	case *MemberInit:
		p.printf("MemberInit %s %s\n", n.pos, n.Name.Value)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *TemplateDecl:
		p.printf("TemplateDecl %s\n", n.pos)
		p.indent++
		for _, tp := range n.Params {
			p.print(tp)
		}
		p.field("Body", n.Body)
		p.indent--

	case *TemplateParam:
		p.printf("TemplateParam %s %s\n", n.pos, n.Name.Value)

	case *VarDecl:
		p.printf("VarDecl %s %s\n", n.pos, n.Name.Value)
		p.indent++
		p.field("Type", n.Type)
		if n.Init != nil {
			p.field("Init", n.Init)
		}
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *Field:
		name := "<unnamed>"
		if n.Name != nil {
			name = n.Name.Value
		}
		p.printf("Field %s %s\n", n.pos, name)
		if n.Type != nil {
			p.indent++
			p.field("Type", n.Type)
			p.indent--
		}

	case *QualifiedType:
		p.printf("QualifiedType %s const=%v ref=%v rref=%v\n", n.pos, n.Const, n.Ref, n.RvalueRef)
		p.indent++
		p.print(n.Base)
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Then", n.Then)
		if n.Else != nil {
			p.field("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		if n.Init != nil {
			p.field("Init", n.Init)
		}
		if n.Cond != nil {
			p.field("Cond", n.Cond)
		}
		if n.Post != nil {
			p.field("Post", n.Post)
		}
		p.field("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Value != nil {
			p.indent++
			p.print(n.Value)
			p.indent--
		}

	case *BreakStmt:
		p.printf("BreakStmt %s\n", n.pos)

	case *ContinueStmt:
		p.printf("ContinueStmt %s\n", n.pos)

	case *VarDeclStmt:
		p.printf("VarDeclStmt %s %s\n", n.pos, n.Name.Value)
		p.indent++
		p.field("Type", n.Type)
		if n.Init != nil {
			p.field("Init", n.Init)
		}
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *DeclStmt:
		p.printf("DeclStmt %s\n", n.pos)
		p.indent++
		p.print(n.D)
		p.indent--

	case *UsingStmt:
		p.printf("UsingStmt %s\n", n.pos)
		if n.Name != nil {
			p.indent++
			p.printf("Name: %s\n", n.Name.Value)
			p.field("Alias", n.Alias)
			p.indent--
		}

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *OperatorName:
		p.printf("OperatorName %s %s\n", n.pos, identString(n))

	case *TemplateID:
		p.printf("TemplateID %s\n", n.pos)
		p.indent++
		p.field("Base", n.Base)
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *ScopedID:
		p.printf("ScopedID %s\n", n.pos)
		p.indent++
		p.field("Left", n.Left)
		p.field("Right", n.Right)
		p.indent--

	case *BasicLit:
		p.printf("BasicLit %s %v %q\n", n.pos, n.Kind, n.Value)

	case *UnaryExpr:
		p.printf("UnaryExpr %s %s postfix=%v\n", n.pos, n.Op, n.Postfix)
		p.indent++
		p.print(n.X)
		p.indent--

	case *BinaryExpr:
		p.printf("BinaryExpr %s %s\n", n.pos, n.Op)
		p.indent++
		p.field("X", n.X)
		p.field("Y", n.Y)
		p.indent--

	case *ConditionalExpr:
		p.printf("ConditionalExpr %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Then", n.Then)
		p.field("Else", n.Else)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.indent++
		p.field("Fun", n.Fun)
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		p.indent--

	case *IndexExpr:
		p.printf("IndexExpr %s\n", n.pos)
		p.indent++
		p.field("X", n.X)
		p.field("Index", n.Index)
		p.indent--

	case *MemberExpr:
		p.printf("MemberExpr %s\n", n.pos)
		p.indent++
		p.field("X", n.X)
		p.field("Sel", n.Sel)
		p.indent--

	case *BraceConstructExpr:
		p.printf("BraceConstructExpr %s\n", n.pos)
		p.indent++
		p.field("Type", n.Type)
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *ArrayLitExpr:
		p.printf("ArrayLitExpr %s\n", n.pos)
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *LambdaExpr:
		p.printf("LambdaExpr %s\n", n.pos)
		p.indent++
		if len(n.Captures) > 0 {
			p.printf("Captures:\n")
			p.indent++
			for _, c := range n.Captures {
				p.print(c)
			}
			p.indent--
		}
		for _, param := range n.Params {
			p.print(param)
		}
		if n.Result != nil {
			p.field("Result", n.Result)
		}
		p.field("Body", n.Body)
		p.indent--

	case *ThisExpr:
		p.printf("ThisExpr %s\n", n.Pos())

	default:
		p.printf("<%T>\n", node)
	}
}

func accessString(a Access) string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	default:
		return "default"
	}
}

func identString(id Ident) string {
	switch n := id.(type) {
	case *Name:
		return n.Value
	case *OperatorName:
		switch {
		case n.IsCall:
			return "operator()"
		case n.IsIndex:
			return "operator[]"
		case n.LiteralSuffx != "":
			return `operator"" ` + n.LiteralSuffx
		default:
			return "operator" + n.Op.String()
		}
	case *TemplateID:
		return identString(n.Base) + "<...>"
	case *ScopedID:
		return identString(n.Left) + "::" + identString(n.Right)
	default:
		return fmt.Sprintf("<%T>", id)
	}
}
