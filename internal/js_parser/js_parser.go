// Package js_parser turns source text into a js_ast.Program. It is a
// recursive-descent parser with a precedence-climbing expression grammar.
// Scope analysis is not done here; callers run internal/scope over the
// returned program.
package js_parser

import (
	"github.com/nqminh/niu/internal/diag"
	"github.com/nqminh/niu/internal/js_ast"
	"github.com/nqminh/niu/internal/js_lexer"
)

type parser struct {
	l *js_lexer.Lexer

	// allowIn is cleared while parsing a for-statement initializer so the
	// "in" of for-in is not swallowed as a binary operator.
	allowIn bool
}

// Parse parses source into a program. The first syntax error aborts the
// parse and is returned (and recorded in log) unchanged.
func Parse(log *diag.Log, source string) (prog *js_ast.Program, err error) {
	p := &parser{allowIn: true}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(js_lexer.LexerPanic); ok {
				prog = nil
				err = log.FirstError()
				if err == nil {
					err = &diag.Error{File: log.File, Msg: diag.Msg{Kind: diag.ErrorKind, Text: "syntax error"}}
				}
				return
			}
			panic(r)
		}
	}()
	p.l = js_lexer.New(log, source)
	body := p.parseStmtsUpTo(js_lexer.TEndOfFile, true)
	return &js_ast.Program{Body: body}, nil
}

func (p *parser) loc() js_ast.Loc {
	return js_ast.Loc{Start: int32(p.l.Loc().Start)}
}

func (p *parser) expect(token js_lexer.T, what string) {
	if p.l.Token != token {
		p.l.SyntaxError("expected %s", what)
	}
	p.l.Next()
}

func (p *parser) expectSemicolon() {
	switch {
	case p.l.Token == js_lexer.TSemicolon:
		p.l.Next()
	case p.l.Token == js_lexer.TCloseBrace, p.l.Token == js_lexer.TEndOfFile, p.l.HasNewlineBefore:
		// automatic semicolon insertion
	default:
		p.l.SyntaxError("expected \";\"")
	}
}

func (p *parser) isContextualKeyword(name string) bool {
	return p.l.Token == js_lexer.TIdentifier && p.l.Identifier == name
}

// ---- Statements ----

func (p *parser) parseStmtsUpTo(end js_lexer.T, allowDirectives bool) []js_ast.Stmt {
	var stmts []js_ast.Stmt
	inPrologue := allowDirectives
	for p.l.Token != end {
		if p.l.Token == js_lexer.TEndOfFile {
			p.l.SyntaxError("unexpected end of file")
		}
		stmt := p.parseStmt()
		if inPrologue {
			if dir, ok := p.asDirective(stmt); ok {
				stmts = append(stmts, dir)
				continue
			}
			inPrologue = false
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// asDirective turns a statement that is exactly a string-literal
// expression into an SDirective so later passes leave it alone.
func (p *parser) asDirective(stmt js_ast.Stmt) (js_ast.Stmt, bool) {
	if expr, ok := stmt.Data.(*js_ast.SExpr); ok {
		if str, ok := expr.Value.Data.(*js_ast.EString); ok {
			return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SDirective{Value: str.Value}}, true
		}
	}
	return stmt, false
}

func (p *parser) parseStmt() js_ast.Stmt {
	loc := p.loc()

	switch p.l.Token {
	case js_lexer.TSemicolon:
		p.l.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}

	case js_lexer.TOpenBrace:
		p.l.Next()
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, false)
		p.l.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: stmts}}

	case js_lexer.TVar, js_lexer.TConst:
		kind := js_ast.DeclVar
		if p.l.Token == js_lexer.TConst {
			kind = js_ast.DeclConst
		}
		p.l.Next()
		decls := p.parseDecls()
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SVar{Kind: kind, Decls: decls}}

	case js_lexer.TIf:
		p.l.Next()
		p.expect(js_lexer.TOpenParen, "\"(\"")
		test := p.parseExpr(LLowest)
		p.expect(js_lexer.TCloseParen, "\")\"")
		yes := p.parseStmt()
		var no *js_ast.Stmt
		if p.l.Token == js_lexer.TElse {
			p.l.Next()
			s := p.parseStmt()
			no = &s
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SIf{Test: test, Yes: yes, No: no}}

	case js_lexer.TFor:
		return p.parseForStmt(loc)

	case js_lexer.TWhile:
		p.l.Next()
		p.expect(js_lexer.TOpenParen, "\"(\"")
		test := p.parseExpr(LLowest)
		p.expect(js_lexer.TCloseParen, "\")\"")
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}

	case js_lexer.TDo:
		p.l.Next()
		body := p.parseStmt()
		p.expect(js_lexer.TWhile, "\"while\"")
		p.expect(js_lexer.TOpenParen, "\"(\"")
		test := p.parseExpr(LLowest)
		p.expect(js_lexer.TCloseParen, "\")\"")
		if p.l.Token == js_lexer.TSemicolon {
			p.l.Next()
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}

	case js_lexer.TReturn:
		p.l.Next()
		var value *js_ast.Expr
		if p.l.Token != js_lexer.TSemicolon && p.l.Token != js_lexer.TCloseBrace &&
			p.l.Token != js_lexer.TEndOfFile && !p.l.HasNewlineBefore {
			expr := p.parseExpr(LLowest)
			value = &expr
		}
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{Value: value}}

	case js_lexer.TThrow:
		p.l.Next()
		value := p.parseExpr(LLowest)
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: value}}

	case js_lexer.TBreak:
		p.l.Next()
		var label *js_ast.PropName
		if p.l.Token == js_lexer.TIdentifier && !p.l.HasNewlineBefore {
			label = &js_ast.PropName{Loc: p.loc(), Name: p.l.Identifier}
			p.l.Next()
		}
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{Label: label}}

	case js_lexer.TContinue:
		p.l.Next()
		var label *js_ast.PropName
		if p.l.Token == js_lexer.TIdentifier && !p.l.HasNewlineBefore {
			label = &js_ast.PropName{Loc: p.loc(), Name: p.l.Identifier}
			p.l.Next()
		}
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{Label: label}}

	case js_lexer.TTry:
		p.l.Next()
		p.expect(js_lexer.TOpenBrace, "\"{\"")
		block := p.parseStmtsUpTo(js_lexer.TCloseBrace, false)
		p.l.Next()
		var catch *js_ast.Catch
		var finally []js_ast.Stmt
		if p.l.Token == js_lexer.TCatch {
			p.l.Next()
			catch = &js_ast.Catch{}
			if p.l.Token == js_lexer.TOpenParen {
				p.l.Next()
				pat := p.parsePattern()
				catch.Binding = &pat
				p.expect(js_lexer.TCloseParen, "\")\"")
			}
			p.expect(js_lexer.TOpenBrace, "\"{\"")
			catch.Body = p.parseStmtsUpTo(js_lexer.TCloseBrace, false)
			p.l.Next()
		}
		if p.l.Token == js_lexer.TFinally {
			p.l.Next()
			p.expect(js_lexer.TOpenBrace, "\"{\"")
			finally = p.parseStmtsUpTo(js_lexer.TCloseBrace, false)
			p.l.Next()
		}
		if catch == nil && finally == nil {
			p.l.SyntaxError("expected \"catch\" or \"finally\"")
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.STry{Block: block, Catch: catch, Finally: finally}}

	case js_lexer.TSwitch:
		p.l.Next()
		p.expect(js_lexer.TOpenParen, "\"(\"")
		test := p.parseExpr(LLowest)
		p.expect(js_lexer.TCloseParen, "\")\"")
		p.expect(js_lexer.TOpenBrace, "\"{\"")
		var cases []js_ast.SwitchCase
		for p.l.Token != js_lexer.TCloseBrace {
			var c js_ast.SwitchCase
			switch p.l.Token {
			case js_lexer.TCase:
				p.l.Next()
				value := p.parseExpr(LLowest)
				c.Value = &value
			case js_lexer.TDefault:
				p.l.Next()
			default:
				p.l.SyntaxError("expected \"case\" or \"default\"")
			}
			p.expect(js_lexer.TColon, "\":\"")
			for p.l.Token != js_lexer.TCase && p.l.Token != js_lexer.TDefault && p.l.Token != js_lexer.TCloseBrace {
				c.Body = append(c.Body, p.parseStmt())
			}
			cases = append(cases, c)
		}
		p.l.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SSwitch{Test: test, Cases: cases}}

	case js_lexer.TFunction:
		fn := p.parseFn(false, false)
		if fn.Name == nil {
			p.l.SyntaxError("function declarations require a name")
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: fn}}

	case js_lexer.TClass:
		class := p.parseClass()
		if class.Name == nil {
			p.l.SyntaxError("class declarations require a name")
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SClass{Class: class}}

	case js_lexer.TDebugger:
		p.l.Next()
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDebugger{}}

	case js_lexer.TImport:
		save := *p.l
		p.l.Next()
		if p.l.Token == js_lexer.TOpenParen || p.l.Token == js_lexer.TDot {
			// import(...) or import.meta: an expression, not a declaration
			*p.l = save
			break
		}
		return p.parseImportStmt(loc)

	case js_lexer.TExport:
		return p.parseExportStmt(loc)

	case js_lexer.TIdentifier:
		switch p.l.Identifier {
		case "let":
			save := *p.l
			p.l.Next()
			if p.l.Token == js_lexer.TIdentifier || p.l.Token == js_lexer.TOpenBracket || p.l.Token == js_lexer.TOpenBrace {
				decls := p.parseDecls()
				p.expectSemicolon()
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SVar{Kind: js_ast.DeclLet, Decls: decls}}
			}
			*p.l = save
		case "async":
			save := *p.l
			p.l.Next()
			if p.l.Token == js_lexer.TFunction && !p.l.HasNewlineBefore {
				fn := p.parseFn(true, false)
				if fn.Name == nil {
					p.l.SyntaxError("function declarations require a name")
				}
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: fn}}
			}
			*p.l = save
		default:
			// label?
			save := *p.l
			name := p.l.Identifier
			p.l.Next()
			if p.l.Token == js_lexer.TColon {
				p.l.Next()
				stmt := p.parseStmt()
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SLabel{Name: name, Stmt: stmt}}
			}
			*p.l = save
		}
	}

	expr := p.parseExpr(LLowest)
	p.expectSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
}

func (p *parser) parseForStmt(loc js_ast.Loc) js_ast.Stmt {
	p.l.Next()
	isAwait := p.isContextualKeyword("await")
	if isAwait {
		p.l.Next()
	}
	p.expect(js_lexer.TOpenParen, "\"(\"")

	var init js_ast.Stmt
	initLoc := p.loc()
	p.allowIn = false
	switch {
	case p.l.Token == js_lexer.TSemicolon:
		init = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SEmpty{}}
	case p.l.Token == js_lexer.TVar || p.l.Token == js_lexer.TConst || p.isContextualKeyword("let"):
		kind := js_ast.DeclVar
		switch {
		case p.l.Token == js_lexer.TConst:
			kind = js_ast.DeclConst
		case p.l.Token != js_lexer.TVar:
			kind = js_ast.DeclLet
		}
		p.l.Next()
		decls := p.parseDecls()
		init = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SVar{Kind: kind, Decls: decls}}
	default:
		expr := p.parseExpr(LLowest)
		init = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SExpr{Value: expr}}
	}
	p.allowIn = true

	if p.l.Token == js_lexer.TIn {
		p.l.Next()
		value := p.parseExpr(LLowest)
		p.expect(js_lexer.TCloseParen, "\")\"")
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: init, Value: value, Body: body}}
	}
	if p.isContextualKeyword("of") {
		p.l.Next()
		value := p.parseExpr(LComma)
		p.expect(js_lexer.TCloseParen, "\")\"")
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: init, Value: value, Body: body, Await: isAwait}}
	}

	p.expect(js_lexer.TSemicolon, "\";\"")
	var test, update *js_ast.Expr
	if p.l.Token != js_lexer.TSemicolon {
		expr := p.parseExpr(LLowest)
		test = &expr
	}
	p.expect(js_lexer.TSemicolon, "\";\"")
	if p.l.Token != js_lexer.TCloseParen {
		expr := p.parseExpr(LLowest)
		update = &expr
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	body := p.parseStmt()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}

func (p *parser) parseImportStmt(loc js_ast.Loc) js_ast.Stmt {
	// the "import" keyword is already consumed
	stmt := &js_ast.SImport{}

	if p.l.Token == js_lexer.TStringLiteral {
		stmt.Path = p.l.StringLiteral
		p.l.Next()
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: stmt}
	}

	if p.l.Token == js_lexer.TIdentifier {
		stmt.DefaultName = &js_ast.Ident{Name: p.l.Identifier}
		p.l.Next()
		if p.l.Token == js_lexer.TComma {
			p.l.Next()
		}
	}
	switch p.l.Token {
	case js_lexer.TStar:
		p.l.Next()
		if !p.isContextualKeyword("as") {
			p.l.SyntaxError("expected \"as\"")
		}
		p.l.Next()
		if p.l.Token != js_lexer.TIdentifier {
			p.l.SyntaxError("expected an identifier")
		}
		stmt.NamespaceName = &js_ast.Ident{Name: p.l.Identifier}
		p.l.Next()
	case js_lexer.TOpenBrace:
		stmt.HasItems = true
		p.l.Next()
		for p.l.Token != js_lexer.TCloseBrace {
			if p.l.Token != js_lexer.TIdentifier {
				p.l.SyntaxError("expected an identifier")
			}
			item := js_ast.ImportItem{ImportedName: p.l.Identifier}
			p.l.Next()
			if p.isContextualKeyword("as") {
				p.l.Next()
				if p.l.Token != js_lexer.TIdentifier {
					p.l.SyntaxError("expected an identifier")
				}
				item.Local = &js_ast.Ident{Name: p.l.Identifier}
				p.l.Next()
			} else {
				item.Local = &js_ast.Ident{Name: item.ImportedName}
			}
			stmt.Items = append(stmt.Items, item)
			if p.l.Token != js_lexer.TComma {
				break
			}
			p.l.Next()
		}
		p.expect(js_lexer.TCloseBrace, "\"}\"")
	}

	if !p.isContextualKeyword("from") {
		p.l.SyntaxError("expected \"from\"")
	}
	p.l.Next()
	if p.l.Token != js_lexer.TStringLiteral {
		p.l.SyntaxError("expected a module path")
	}
	stmt.Path = p.l.StringLiteral
	p.l.Next()
	p.expectSemicolon()
	return js_ast.Stmt{Loc: loc, Data: stmt}
}

func (p *parser) parseExportStmt(loc js_ast.Loc) js_ast.Stmt {
	p.l.Next()

	switch p.l.Token {
	case js_lexer.TDefault:
		p.l.Next()
		value := p.parseExpr(LComma)
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}

	case js_lexer.TStar:
		p.l.Next()
		stmt := &js_ast.SExportStar{}
		if p.isContextualKeyword("as") {
			p.l.Next()
			if p.l.Token != js_lexer.TIdentifier {
				p.l.SyntaxError("expected an identifier")
			}
			stmt.NamespaceName = p.l.Identifier
			p.l.Next()
		}
		if !p.isContextualKeyword("from") {
			p.l.SyntaxError("expected \"from\"")
		}
		p.l.Next()
		if p.l.Token != js_lexer.TStringLiteral {
			p.l.SyntaxError("expected a module path")
		}
		stmt.Path = p.l.StringLiteral
		p.l.Next()
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: stmt}

	case js_lexer.TOpenBrace:
		p.l.Next()
		stmt := &js_ast.SExportNamed{}
		for p.l.Token != js_lexer.TCloseBrace {
			if p.l.Token != js_lexer.TIdentifier {
				p.l.SyntaxError("expected an identifier")
			}
			item := js_ast.ExportItem{Local: &js_ast.Ident{Name: p.l.Identifier}}
			item.ExportedName = item.Local.Name
			p.l.Next()
			if p.isContextualKeyword("as") {
				p.l.Next()
				if p.l.Token != js_lexer.TIdentifier {
					p.l.SyntaxError("expected an identifier")
				}
				item.ExportedName = p.l.Identifier
				p.l.Next()
			}
			stmt.Items = append(stmt.Items, item)
			if p.l.Token != js_lexer.TComma {
				break
			}
			p.l.Next()
		}
		p.expect(js_lexer.TCloseBrace, "\"}\"")
		if p.isContextualKeyword("from") {
			p.l.Next()
			if p.l.Token != js_lexer.TStringLiteral {
				p.l.SyntaxError("expected a module path")
			}
			stmt.Path = p.l.StringLiteral
			stmt.HasPath = true
			p.l.Next()
		}
		p.expectSemicolon()
		return js_ast.Stmt{Loc: loc, Data: stmt}

	case js_lexer.TVar, js_lexer.TConst, js_lexer.TFunction, js_lexer.TClass:
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDecl{Stmt: p.parseStmt()}}

	case js_lexer.TIdentifier:
		if p.l.Identifier == "let" || p.l.Identifier == "async" {
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDecl{Stmt: p.parseStmt()}}
		}
	}
	p.l.SyntaxError("unexpected token after \"export\"")
	return js_ast.Stmt{}
}

// ---- Declarations, patterns, functions, classes ----

func (p *parser) parseDecls() []js_ast.Declarator {
	var decls []js_ast.Declarator
	for {
		binding := p.parsePattern()
		var value *js_ast.Expr
		if p.l.Token == js_lexer.TEquals {
			p.l.Next()
			expr := p.parseExpr(LComma)
			value = &expr
		}
		decls = append(decls, js_ast.Declarator{Binding: binding, Value: value})
		if p.l.Token != js_lexer.TComma {
			return decls
		}
		p.l.Next()
	}
}

func (p *parser) parsePattern() js_ast.Pattern {
	loc := p.loc()
	switch p.l.Token {
	case js_lexer.TIdentifier:
		id := &js_ast.Ident{Name: p.l.Identifier}
		p.l.Next()
		return js_ast.Pattern{Loc: loc, Data: &js_ast.PIdentifier{Ident: id}}

	case js_lexer.TOpenBracket:
		p.l.Next()
		var items []js_ast.ArrayPatternItem
		for p.l.Token != js_lexer.TCloseBracket {
			if p.l.Token == js_lexer.TComma {
				// elision
				items = append(items, js_ast.ArrayPatternItem{})
				p.l.Next()
				continue
			}
			var item js_ast.ArrayPatternItem
			if p.l.Token == js_lexer.TDotDotDot {
				item.IsSpread = true
				p.l.Next()
			}
			item.Pattern = p.parsePattern()
			if p.l.Token == js_lexer.TEquals {
				p.l.Next()
				expr := p.parseExpr(LComma)
				item.DefaultValue = &expr
			}
			items = append(items, item)
			if p.l.Token != js_lexer.TComma {
				break
			}
			p.l.Next()
		}
		p.expect(js_lexer.TCloseBracket, "\"]\"")
		return js_ast.Pattern{Loc: loc, Data: &js_ast.PArray{Items: items}}

	case js_lexer.TOpenBrace:
		p.l.Next()
		var props []js_ast.ObjectPatternProperty
		for p.l.Token != js_lexer.TCloseBrace {
			var prop js_ast.ObjectPatternProperty
			if p.l.Token == js_lexer.TDotDotDot {
				prop.IsSpread = true
				p.l.Next()
				prop.Value = p.parsePattern()
			} else {
				key, computed, name := p.parsePropertyKey()
				prop.Key = key
				prop.Computed = computed
				if p.l.Token == js_lexer.TColon {
					p.l.Next()
					prop.Value = p.parsePattern()
				} else {
					// shorthand
					if computed || name == "" {
						p.l.SyntaxError("expected \":\"")
					}
					prop.IsShorthand = true
					prop.Value = js_ast.Pattern{Loc: loc, Data: &js_ast.PIdentifier{Ident: &js_ast.Ident{Name: name}}}
				}
				if p.l.Token == js_lexer.TEquals {
					p.l.Next()
					expr := p.parseExpr(LComma)
					prop.DefaultValue = &expr
				}
			}
			props = append(props, prop)
			if p.l.Token != js_lexer.TComma {
				break
			}
			p.l.Next()
		}
		p.expect(js_lexer.TCloseBrace, "\"}\"")
		return js_ast.Pattern{Loc: loc, Data: &js_ast.PObject{Properties: props}}
	}
	p.l.SyntaxError("expected a binding")
	return js_ast.Pattern{}
}

// parsePropertyKey parses an object/class member key. name is non-empty
// when the key is a plain identifier (or keyword used as a name).
func (p *parser) parsePropertyKey() (key js_ast.Expr, computed bool, name string) {
	loc := p.loc()
	switch p.l.Token {
	case js_lexer.TOpenBracket:
		p.l.Next()
		expr := p.parseExpr(LComma)
		p.expect(js_lexer.TCloseBracket, "\"]\"")
		return expr, true, ""

	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: p.l.StringLiteral}}
		p.l.Next()
		return key, false, ""

	case js_lexer.TNumericLiteral:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: p.l.Number}}
		p.l.Next()
		return key, false, ""

	case js_lexer.TPrivateIdentifier:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EPropName{Name: js_ast.PropName{Loc: loc, Name: p.l.Identifier}}}
		p.l.Next()
		return key, false, ""

	default:
		// identifiers and keywords are both valid names here
		if p.l.Token != js_lexer.TIdentifier && !p.l.Token.IsKeyword() {
			p.l.SyntaxError("expected a property name")
		}
		name = p.l.Identifier
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EPropName{Name: js_ast.PropName{Loc: loc, Name: name}}}
		p.l.Next()
		return key, false, name
	}
}

// parseFn parses a function expression or declaration starting at either
// "function" or, when isAsync is set, at the "function" after "async".
func (p *parser) parseFn(isAsync bool, requireName bool) *js_ast.Fn {
	p.expect(js_lexer.TFunction, "\"function\"")
	fn := &js_ast.Fn{IsAsync: isAsync}
	if p.l.Token == js_lexer.TStar {
		fn.IsGenerator = true
		p.l.Next()
	}
	if p.l.Token == js_lexer.TIdentifier {
		fn.Name = &js_ast.Ident{Name: p.l.Identifier}
		p.l.Next()
	} else if requireName {
		p.l.SyntaxError("expected a function name")
	}
	fn.Args = p.parseParams()
	fn.Body = p.parseFnBody()
	return fn
}

func (p *parser) parseParams() []js_ast.Param {
	p.expect(js_lexer.TOpenParen, "\"(\"")
	var params []js_ast.Param
	for p.l.Token != js_lexer.TCloseParen {
		var param js_ast.Param
		if p.l.Token == js_lexer.TDotDotDot {
			param.IsSpread = true
			p.l.Next()
		}
		param.Binding = p.parsePattern()
		if p.l.Token == js_lexer.TEquals {
			p.l.Next()
			expr := p.parseExpr(LComma)
			param.DefaultValue = &expr
		}
		params = append(params, param)
		if p.l.Token != js_lexer.TComma {
			break
		}
		p.l.Next()
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	return params
}

func (p *parser) parseFnBody() []js_ast.Stmt {
	p.expect(js_lexer.TOpenBrace, "\"{\"")
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, true)
	p.l.Next()
	return stmts
}

func (p *parser) parseClass() *js_ast.Class {
	p.expect(js_lexer.TClass, "\"class\"")
	class := &js_ast.Class{}
	if p.l.Token == js_lexer.TIdentifier {
		class.Name = &js_ast.Ident{Name: p.l.Identifier}
		p.l.Next()
	}
	if p.l.Token == js_lexer.TExtends {
		p.l.Next()
		expr := p.parseExpr(LPostfix) // member/call expressions only
		class.SuperClass = &expr
	}
	p.expect(js_lexer.TOpenBrace, "\"{\"")

	for p.l.Token != js_lexer.TCloseBrace {
		if p.l.Token == js_lexer.TSemicolon {
			p.l.Next()
			continue
		}
		class.Members = append(class.Members, p.parseClassMember())
	}
	p.l.Next()
	return class
}

func (p *parser) parseClassMember() js_ast.ClassMember {
	var member js_ast.ClassMember

	if p.isContextualKeyword("static") {
		save := *p.l
		p.l.Next()
		if p.l.Token == js_lexer.TOpenParen || p.l.Token == js_lexer.TEquals ||
			p.l.Token == js_lexer.TSemicolon || p.l.Token == js_lexer.TCloseBrace {
			*p.l = save // a member actually named "static"
		} else {
			member.Static = true
		}
	}

	isAsync := false
	isGenerator := false
	kind := js_ast.MemberMethod
	hasAccessorPrefix := false

	if p.isContextualKeyword("async") {
		save := *p.l
		p.l.Next()
		if p.l.Token == js_lexer.TOpenParen || p.l.Token == js_lexer.TEquals ||
			p.l.Token == js_lexer.TSemicolon || p.l.Token == js_lexer.TCloseBrace {
			*p.l = save
		} else {
			isAsync = true
		}
	}
	if p.l.Token == js_lexer.TStar {
		isGenerator = true
		p.l.Next()
	}
	if !isAsync && !isGenerator && (p.isContextualKeyword("get") || p.isContextualKeyword("set")) {
		accessor := p.l.Identifier
		save := *p.l
		p.l.Next()
		if p.l.Token == js_lexer.TOpenParen || p.l.Token == js_lexer.TEquals ||
			p.l.Token == js_lexer.TSemicolon || p.l.Token == js_lexer.TCloseBrace {
			*p.l = save // a member actually named "get"/"set"
		} else {
			hasAccessorPrefix = true
			if accessor == "get" {
				kind = js_ast.MemberGet
			} else {
				kind = js_ast.MemberSet
			}
		}
	}

	key, computed, name := p.parsePropertyKey()
	member.Key = key
	member.Computed = computed

	if p.l.Token == js_lexer.TOpenParen {
		if !hasAccessorPrefix && !computed && !member.Static && name == "constructor" {
			kind = js_ast.MemberConstructor
		}
		member.Kind = kind
		fn := &js_ast.Fn{IsAsync: isAsync, IsGenerator: isGenerator}
		fn.Args = p.parseParams()
		fn.Body = p.parseFnBody()
		member.Fn = fn
		return member
	}

	member.Kind = js_ast.MemberField
	if p.l.Token == js_lexer.TEquals {
		p.l.Next()
		expr := p.parseExpr(LComma)
		member.Value = &expr
	}
	p.expectSemicolon()
	return member
}

// ---- Expressions ----

// Operator precedence levels, lowest binding first.
const (
	LLowest = iota
	LComma
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
)

type binOpInfo struct {
	op         js_ast.BinOp
	level      int
	rightAssoc bool
}

var binOps = map[js_lexer.T]binOpInfo{
	js_lexer.TComma:                                   {js_ast.BinOpComma, LComma, false},
	js_lexer.TQuestionQuestion:                        {js_ast.BinOpNullishCoalescing, LNullishCoalescing, false},
	js_lexer.TBarBar:                                  {js_ast.BinOpOr, LLogicalOr, false},
	js_lexer.TAmpersandAmpersand:                      {js_ast.BinOpAnd, LLogicalAnd, false},
	js_lexer.TBar:                                     {js_ast.BinOpBitOr, LBitwiseOr, false},
	js_lexer.TCaret:                                   {js_ast.BinOpBitXor, LBitwiseXor, false},
	js_lexer.TAmpersand:                               {js_ast.BinOpBitAnd, LBitwiseAnd, false},
	js_lexer.TEqualsEquals:                            {js_ast.BinOpEq, LEquals, false},
	js_lexer.TEqualsEqualsEquals:                      {js_ast.BinOpStrictEq, LEquals, false},
	js_lexer.TExclamationEquals:                       {js_ast.BinOpNe, LEquals, false},
	js_lexer.TExclamationEqualsEquals:                 {js_ast.BinOpStrictNe, LEquals, false},
	js_lexer.TLessThan:                                {js_ast.BinOpLt, LCompare, false},
	js_lexer.TLessThanEquals:                          {js_ast.BinOpLe, LCompare, false},
	js_lexer.TGreaterThan:                             {js_ast.BinOpGt, LCompare, false},
	js_lexer.TGreaterThanEquals:                       {js_ast.BinOpGe, LCompare, false},
	js_lexer.TIn:                                      {js_ast.BinOpIn, LCompare, false},
	js_lexer.TInstanceof:                              {js_ast.BinOpInstanceof, LCompare, false},
	js_lexer.TLessThanLessThan:                        {js_ast.BinOpShl, LShift, false},
	js_lexer.TGreaterThanGreaterThan:                  {js_ast.BinOpShr, LShift, false},
	js_lexer.TGreaterThanGreaterThanGreaterThan:       {js_ast.BinOpUShr, LShift, false},
	js_lexer.TPlus:                                    {js_ast.BinOpAdd, LAdd, false},
	js_lexer.TMinus:                                   {js_ast.BinOpSub, LAdd, false},
	js_lexer.TStar:                                    {js_ast.BinOpMul, LMultiply, false},
	js_lexer.TSlash:                                   {js_ast.BinOpDiv, LMultiply, false},
	js_lexer.TPercent:                                 {js_ast.BinOpMod, LMultiply, false},
	js_lexer.TStarStar:                                {js_ast.BinOpPow, LExponentiation, true},
	js_lexer.TEquals:                                  {js_ast.BinOpAssign, LAssign, true},
	js_lexer.TPlusEquals:                              {js_ast.BinOpAddAssign, LAssign, true},
	js_lexer.TMinusEquals:                             {js_ast.BinOpSubAssign, LAssign, true},
	js_lexer.TStarEquals:                              {js_ast.BinOpMulAssign, LAssign, true},
	js_lexer.TSlashEquals:                             {js_ast.BinOpDivAssign, LAssign, true},
	js_lexer.TPercentEquals:                           {js_ast.BinOpModAssign, LAssign, true},
	js_lexer.TStarStarEquals:                          {js_ast.BinOpPowAssign, LAssign, true},
	js_lexer.TAmpersandAmpersandEquals:                {js_ast.BinOpAndAssign, LAssign, true},
	js_lexer.TBarBarEquals:                            {js_ast.BinOpOrAssign, LAssign, true},
	js_lexer.TQuestionQuestionEquals:                  {js_ast.BinOpNullishAssign, LAssign, true},
	js_lexer.TAmpersandEquals:                         {js_ast.BinOpBitAndAssign, LAssign, true},
	js_lexer.TBarEquals:                               {js_ast.BinOpBitOrAssign, LAssign, true},
	js_lexer.TCaretEquals:                             {js_ast.BinOpBitXorAssign, LAssign, true},
	js_lexer.TLessThanLessThanEquals:                  {js_ast.BinOpShlAssign, LAssign, true},
	js_lexer.TGreaterThanGreaterThanEquals:            {js_ast.BinOpShrAssign, LAssign, true},
	js_lexer.TGreaterThanGreaterThanGreaterThanEquals: {js_ast.BinOpUShrAssign, LAssign, true},
}

func (p *parser) parseExpr(level int) js_ast.Expr {
	expr := p.parsePrefix(level)
	return p.parseSuffix(expr, level)
}

func (p *parser) parsePrefix(level int) js_ast.Expr {
	loc := p.loc()

	switch p.l.Token {
	case js_lexer.TIdentifier:
		name := p.l.Identifier
		switch name {
		case "undefined":
			p.l.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUndefined{}}
		case "async":
			save := *p.l
			p.l.Next()
			if p.l.Token == js_lexer.TFunction && !p.l.HasNewlineBefore {
				return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: p.parseFn(true, false)}}
			}
			if p.l.Token == js_lexer.TIdentifier && !p.l.HasNewlineBefore {
				// async x=>...
				argSave := *p.l
				arg := p.l.Identifier
				p.l.Next()
				if p.l.Token == js_lexer.TArrow {
					p.l.Next()
					return p.parseArrowBody(loc, []js_ast.Param{{
						Binding: js_ast.Pattern{Loc: loc, Data: &js_ast.PIdentifier{Ident: &js_ast.Ident{Name: arg}}},
					}}, true)
				}
				*p.l = argSave
			}
			if p.l.Token == js_lexer.TOpenParen && !p.l.HasNewlineBefore && p.parenStartsArrow() {
				params := p.parseParams()
				p.expect(js_lexer.TArrow, "\"=>\"")
				return p.parseArrowBody(loc, params, true)
			}
			*p.l = save
		case "await":
			save := *p.l
			p.l.Next()
			if p.startsExpr() && !p.l.HasNewlineBefore {
				value := p.parseExpr(LPrefix)
				return js_ast.Expr{Loc: loc, Data: &js_ast.EAwait{Value: value}}
			}
			*p.l = save
		case "yield":
			save := *p.l
			p.l.Next()
			isStar := false
			if p.l.Token == js_lexer.TStar && !p.l.HasNewlineBefore {
				isStar = true
				p.l.Next()
			}
			if isStar || (p.startsExpr() && !p.l.HasNewlineBefore) {
				var value *js_ast.Expr
				if p.startsExpr() {
					expr := p.parseExpr(LComma)
					value = &expr
				}
				return js_ast.Expr{Loc: loc, Data: &js_ast.EYield{Value: value, IsStar: isStar}}
			}
			if p.l.Token == js_lexer.TSemicolon || p.l.Token == js_lexer.TCloseParen ||
				p.l.Token == js_lexer.TCloseBracket || p.l.Token == js_lexer.TComma ||
				p.l.Token == js_lexer.TCloseBrace || p.l.Token == js_lexer.TEndOfFile ||
				p.l.HasNewlineBefore {
				return js_ast.Expr{Loc: loc, Data: &js_ast.EYield{}}
			}
			*p.l = save
		}
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ident: &js_ast.Ident{Name: name}}}

	case js_lexer.TNumericLiteral:
		value := p.l.Number
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: value}}

	case js_lexer.TBigIntLiteral:
		value := p.l.StringLiteral
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBigInt{Value: value}}

	case js_lexer.TStringLiteral:
		value := p.l.StringLiteral
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: value}}

	case js_lexer.TNoSubstitutionTemplateLiteral:
		head := p.l.StringLiteral
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{HeadRaw: head}}

	case js_lexer.TTemplateHead:
		return p.parseTemplate(loc)

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		p.l.ScanRegExp()
		value := p.l.StringLiteral
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ERegExp{Value: value}}

	case js_lexer.TLessThan:
		// JSX
		raw := p.l.ScanJSXRaw()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EJSXElement{Raw: raw}}

	case js_lexer.TTrue:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}

	case js_lexer.TFalse:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: false}}

	case js_lexer.TNull:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENull{}}

	case js_lexer.TThis:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}

	case js_lexer.TSuper:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ESuper{}}

	case js_lexer.TImport:
		// import(...) and import.meta reach here via parseStmt fallthrough
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ident: &js_ast.Ident{Name: "import"}}}

	case js_lexer.TOpenParen:
		if p.parenStartsArrow() {
			params := p.parseParams()
			p.expect(js_lexer.TArrow, "\"=>\"")
			return p.parseArrowBody(loc, params, false)
		}
		p.l.Next()
		value := p.parseExpr(LLowest)
		p.expect(js_lexer.TCloseParen, "\")\"")
		return value

	case js_lexer.TOpenBracket:
		p.l.Next()
		var items []js_ast.ArrayItem
		for p.l.Token != js_lexer.TCloseBracket {
			if p.l.Token == js_lexer.TComma {
				items = append(items, js_ast.ArrayItem{}) // elision
				p.l.Next()
				continue
			}
			var item js_ast.ArrayItem
			if p.l.Token == js_lexer.TDotDotDot {
				item.IsSpread = true
				p.l.Next()
			}
			item.Value = p.parseExpr(LComma)
			items = append(items, item)
			if p.l.Token != js_lexer.TComma {
				break
			}
			p.l.Next()
		}
		p.expect(js_lexer.TCloseBracket, "\"]\"")
		return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items}}

	case js_lexer.TOpenBrace:
		return p.parseObjectLiteral(loc)

	case js_lexer.TFunction:
		return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: p.parseFn(false, false)}}

	case js_lexer.TClass:
		return js_ast.Expr{Loc: loc, Data: &js_ast.EClass{Class: p.parseClass()}}

	case js_lexer.TNew:
		p.l.Next()
		target := p.parseExpr(LNew)
		var args []js_ast.ArrayItem
		if p.l.Token == js_lexer.TOpenParen {
			args = p.parseCallArgs()
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENew{Target: target, Args: args}}

	case js_lexer.TExclamation:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpNot, Value: p.parseExpr(LPrefix)}}

	case js_lexer.TTilde:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpBitNot, Value: p.parseExpr(LPrefix)}}

	case js_lexer.TPlus:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPos, Value: p.parseExpr(LPrefix)}}

	case js_lexer.TMinus:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpNeg, Value: p.parseExpr(LPrefix)}}

	case js_lexer.TPlusPlus:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPreInc, Value: p.parseExpr(LPrefix)}}

	case js_lexer.TMinusMinus:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPreDec, Value: p.parseExpr(LPrefix)}}

	case js_lexer.TTypeof:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpTypeof, Value: p.parseExpr(LPrefix)}}

	case js_lexer.TVoid:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpVoid, Value: p.parseExpr(LPrefix)}}

	case js_lexer.TDelete:
		p.l.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: js_ast.UnOpDelete, Value: p.parseExpr(LPrefix)}}
	}

	p.l.SyntaxError("unexpected token")
	return js_ast.Expr{}
}

// startsExpr reports whether the current token can begin an expression.
func (p *parser) startsExpr() bool {
	switch p.l.Token {
	case js_lexer.TIdentifier, js_lexer.TNumericLiteral, js_lexer.TBigIntLiteral,
		js_lexer.TStringLiteral, js_lexer.TNoSubstitutionTemplateLiteral, js_lexer.TTemplateHead,
		js_lexer.TOpenParen, js_lexer.TOpenBracket, js_lexer.TOpenBrace,
		js_lexer.TFunction, js_lexer.TClass, js_lexer.TNew, js_lexer.TSlash, js_lexer.TSlashEquals,
		js_lexer.TExclamation, js_lexer.TTilde, js_lexer.TPlus, js_lexer.TMinus,
		js_lexer.TPlusPlus, js_lexer.TMinusMinus, js_lexer.TTypeof, js_lexer.TVoid, js_lexer.TDelete,
		js_lexer.TTrue, js_lexer.TFalse, js_lexer.TNull, js_lexer.TThis, js_lexer.TSuper,
		js_lexer.TLessThan, js_lexer.TImport:
		return true
	}
	return false
}

// parenStartsArrow looks ahead from an "(" to the token after its
// matching ")" without consuming anything.
func (p *parser) parenStartsArrow() bool {
	save := *p.l
	depth := 0
	for {
		switch p.l.Token {
		case js_lexer.TOpenParen, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
			depth++
		case js_lexer.TCloseParen, js_lexer.TCloseBracket, js_lexer.TCloseBrace:
			depth--
			if depth == 0 {
				p.l.Next()
				isArrow := p.l.Token == js_lexer.TArrow && !p.l.HasNewlineBefore
				*p.l = save
				return isArrow
			}
		case js_lexer.TEndOfFile:
			*p.l = save
			return false
		}
		p.l.Next()
	}
}

func (p *parser) parseArrowBody(loc js_ast.Loc, params []js_ast.Param, isAsync bool) js_ast.Expr {
	fn := &js_ast.Fn{Args: params, IsArrow: true, IsAsync: isAsync}
	if p.l.Token == js_lexer.TOpenBrace {
		fn.Body = p.parseFnBody()
	} else {
		expr := p.parseExpr(LComma)
		fn.ArrowExprBody = &expr
	}
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArrow{Fn: fn}}
}

func (p *parser) parseTemplate(loc js_ast.Loc) js_ast.Expr {
	tmpl := &js_ast.ETemplate{HeadRaw: p.l.StringLiteral}
	for {
		p.l.Next()
		value := p.parseExpr(LLowest)
		if p.l.Token != js_lexer.TCloseBrace {
			p.l.SyntaxError("expected \"}\"")
		}
		p.l.RescanCloseBraceAsTemplateToken()
		part := js_ast.ETemplatePart{Value: value, Raw: p.l.StringLiteral}
		tmpl.Parts = append(tmpl.Parts, part)
		if p.l.Token == js_lexer.TTemplateTail {
			p.l.Next()
			return js_ast.Expr{Loc: loc, Data: tmpl}
		}
	}
}

func (p *parser) parseObjectLiteral(loc js_ast.Loc) js_ast.Expr {
	p.l.Next()
	var props []js_ast.Property
	for p.l.Token != js_lexer.TCloseBrace {
		var prop js_ast.Property

		if p.l.Token == js_lexer.TDotDotDot {
			p.l.Next()
			prop.Kind = js_ast.PropertySpread
			prop.Value = p.parseExpr(LComma)
			props = append(props, prop)
			if p.l.Token != js_lexer.TComma {
				break
			}
			p.l.Next()
			continue
		}

		isAsync := false
		isGenerator := false
		kind := js_ast.PropertyNormal

		if p.isContextualKeyword("async") {
			save := *p.l
			p.l.Next()
			if p.l.Token == js_lexer.TColon || p.l.Token == js_lexer.TComma ||
				p.l.Token == js_lexer.TCloseBrace || p.l.Token == js_lexer.TOpenParen {
				*p.l = save
			} else {
				isAsync = true
				kind = js_ast.PropertyMethod
			}
		}
		if p.l.Token == js_lexer.TStar {
			isGenerator = true
			kind = js_ast.PropertyMethod
			p.l.Next()
		}
		if !isAsync && !isGenerator && (p.isContextualKeyword("get") || p.isContextualKeyword("set")) {
			accessor := p.l.Identifier
			save := *p.l
			p.l.Next()
			if p.l.Token == js_lexer.TColon || p.l.Token == js_lexer.TComma ||
				p.l.Token == js_lexer.TCloseBrace || p.l.Token == js_lexer.TOpenParen {
				*p.l = save
			} else {
				if accessor == "get" {
					kind = js_ast.PropertyGet
				} else {
					kind = js_ast.PropertySet
				}
			}
		}

		key, computed, name := p.parsePropertyKey()
		prop.Key = key
		prop.Computed = computed

		switch {
		case p.l.Token == js_lexer.TOpenParen:
			if kind == js_ast.PropertyNormal {
				kind = js_ast.PropertyMethod
			}
			prop.Kind = kind
			fn := &js_ast.Fn{IsAsync: isAsync, IsGenerator: isGenerator}
			fn.Args = p.parseParams()
			fn.Body = p.parseFnBody()
			prop.Fn = fn

		case p.l.Token == js_lexer.TColon:
			p.l.Next()
			prop.Kind = kind
			prop.Value = p.parseExpr(LComma)

		default:
			// shorthand, possibly with a default inside a destructuring
			// assignment target
			if computed || name == "" {
				p.l.SyntaxError("expected \":\"")
			}
			prop.Kind = kind
			prop.Shorthand = true
			prop.Value = js_ast.Expr{Loc: key.Loc, Data: &js_ast.EIdentifier{Ident: &js_ast.Ident{Name: name}}}
			if p.l.Token == js_lexer.TEquals {
				p.l.Next()
				prop.Value = js_ast.Expr{Loc: key.Loc, Data: &js_ast.EBinary{
					Op:    js_ast.BinOpAssign,
					Left:  prop.Value,
					Right: p.parseExpr(LComma),
				}}
			}
		}

		props = append(props, prop)
		if p.l.Token != js_lexer.TComma {
			break
		}
		p.l.Next()
	}
	p.expect(js_lexer.TCloseBrace, "\"}\"")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: props}}
}

func (p *parser) parseCallArgs() []js_ast.ArrayItem {
	p.expect(js_lexer.TOpenParen, "\"(\"")
	var args []js_ast.ArrayItem
	for p.l.Token != js_lexer.TCloseParen {
		var arg js_ast.ArrayItem
		if p.l.Token == js_lexer.TDotDotDot {
			arg.IsSpread = true
			p.l.Next()
		}
		arg.Value = p.parseExpr(LComma)
		args = append(args, arg)
		if p.l.Token != js_lexer.TComma {
			break
		}
		p.l.Next()
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	return args
}

func (p *parser) parseSuffix(left js_ast.Expr, level int) js_ast.Expr {
	for {
		switch p.l.Token {
		case js_lexer.TDot:
			p.l.Next()
			if p.l.Token != js_lexer.TIdentifier && !p.l.Token.IsKeyword() {
				p.l.SyntaxError("expected a property name")
			}
			name := js_ast.PropName{Loc: p.loc(), Name: p.l.Identifier}
			p.l.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EDot{Target: left, Name: name}}

		case js_lexer.TQuestionDot:
			p.l.Next()
			switch p.l.Token {
			case js_lexer.TOpenBracket:
				p.l.Next()
				index := p.parseExpr(LLowest)
				p.expect(js_lexer.TCloseBracket, "\"]\"")
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index, Optional: true}}
			case js_lexer.TOpenParen:
				args := p.parseCallArgs()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Target: left, Args: args, Optional: true}}
			default:
				if p.l.Token != js_lexer.TIdentifier && !p.l.Token.IsKeyword() {
					p.l.SyntaxError("expected a property name")
				}
				name := js_ast.PropName{Loc: p.loc(), Name: p.l.Identifier}
				p.l.Next()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EDot{Target: left, Name: name, Optional: true}}
			}

		case js_lexer.TOpenBracket:
			if level >= LCall {
				return left
			}
			p.l.Next()
			index := p.parseExpr(LLowest)
			p.expect(js_lexer.TCloseBracket, "\"]\"")
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index}}

		case js_lexer.TOpenParen:
			if level >= LNew {
				return left
			}
			args := p.parseCallArgs()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Target: left, Args: args}}

		case js_lexer.TNoSubstitutionTemplateLiteral:
			tmpl := js_ast.Expr{Loc: p.loc(), Data: &js_ast.ETemplate{HeadRaw: p.l.StringLiteral}}
			p.l.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ETaggedTemplate{Tag: left, Template: tmpl}}

		case js_lexer.TTemplateHead:
			tmpl := p.parseTemplate(p.loc())
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ETaggedTemplate{Tag: left, Template: tmpl}}

		case js_lexer.TPlusPlus:
			if p.l.HasNewlineBefore || level >= LPostfix {
				return left
			}
			p.l.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPostInc, Value: left}}

		case js_lexer.TMinusMinus:
			if p.l.HasNewlineBefore || level >= LPostfix {
				return left
			}
			p.l.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: js_ast.UnOpPostDec, Value: left}}

		case js_lexer.TQuestion:
			if level >= LConditional {
				return left
			}
			p.l.Next()
			yes := p.parseExpr(LComma)
			p.expect(js_lexer.TColon, "\":\"")
			no := p.parseExpr(LComma)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIf{Test: left, Yes: yes, No: no}}

		case js_lexer.TArrow:
			if p.l.HasNewlineBefore || level > LAssign {
				return left
			}
			if id, ok := left.Data.(*js_ast.EIdentifier); ok {
				p.l.Next()
				return p.parseArrowBody(left.Loc, []js_ast.Param{{
					Binding: js_ast.Pattern{Loc: left.Loc, Data: &js_ast.PIdentifier{Ident: id.Ident}},
				}}, false)
			}
			return left

		default:
			info, ok := binOps[p.l.Token]
			if !ok {
				return left
			}
			if info.op == js_ast.BinOpIn && !p.allowIn {
				return left
			}
			if info.level <= level && !(info.rightAssoc && info.level == level) {
				return left
			}
			p.l.Next()
			rightLevel := info.level
			if info.rightAssoc {
				rightLevel--
			}
			right := p.parseExpr(rightLevel)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: info.op, Left: left, Right: right}}
		}
	}
}
