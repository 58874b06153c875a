// Command kindgen emits the component kind constants, masks and registration
// function for a package. A type is a component when its doc comment carries a
// //kindgen:component directive. Kinds are numbered in declaration order. A
// package-level func Default<Type>() <Type> becomes the registered default.
//
//	//go:generate go run ../cmd/kindgen -pkg . -out components_gen.go
package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	pattern := flag.String("pkg", ".", "Package pattern to scan for components.")
	out := flag.String("out", "components_gen.go", "Output file.")
	ecsPath := flag.String("ecs", "github.com/plus3/spree/ecs", "Import path of the ecs package.")
	flag.Parse()

	pkg, components, err := collect(*pattern)
	if err != nil {
		log.Fatalf("kindgen: %v", err)
	}
	src, err := render(pkg, *ecsPath, components)
	if err != nil {
		log.Fatalf("kindgen: %v", err)
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Fatalf("kindgen: %v", err)
	}
	log.Printf("kindgen: wrote %d components to %s", len(components), *out)
}
