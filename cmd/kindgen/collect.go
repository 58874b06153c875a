package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

const directive = "//kindgen:component"

// maxKinds mirrors ecs.MaxKinds.
const maxKinds = 64

type component struct {
	Name       string
	HasDefault bool
}

func collect(pattern string) (string, []component, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedFiles,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return "", nil, err
	}
	if len(pkgs) != 1 {
		return "", nil, fmt.Errorf("pattern %q matched %d packages, want 1", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		msgs := make([]string, len(pkg.Errors))
		for i, e := range pkg.Errors {
			msgs[i] = e.Error()
		}
		return "", nil, errors.New(strings.Join(msgs, "; "))
	}

	components := fromFiles(pkg.Fset, pkg.Syntax)
	if len(components) > maxKinds {
		return "", nil, fmt.Errorf("%d components exceed the %d kind limit", len(components), maxKinds)
	}
	for i := range components {
		components[i].HasDefault = hasDefault(pkg.Types, components[i].Name)
	}
	return pkg.Name, components, nil
}

// fromFiles returns the directive-tagged type names ordered by file name, then
// position within the file.
func fromFiles(fset *token.FileSet, files []*ast.File) []component {
	sorted := append([]*ast.File(nil), files...)
	sort.Slice(sorted, func(i, j int) bool {
		return fset.File(sorted[i].Pos()).Name() < fset.File(sorted[j].Pos()).Name()
	})

	var components []component
	for _, file := range sorted {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				if tagged(doc) {
					components = append(components, component{Name: ts.Name.Name})
				}
			}
		}
	}
	return components
}

func tagged(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == directive {
			return true
		}
	}
	return false
}

// hasDefault reports whether pkg declares func Default<name>() <name>.
func hasDefault(pkg *types.Package, name string) bool {
	if pkg == nil {
		return false
	}
	fn, ok := pkg.Scope().Lookup("Default" + name).(*types.Func)
	if !ok {
		return false
	}
	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	named, ok := sig.Results().At(0).Type().(*types.Named)
	return ok && named.Obj().Name() == name && named.Obj().Pkg() == pkg
}
