// Command schemagen writes the JSON schema for the menu configuration.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/senenv/shellmenu/api/v1beta1/configs"
)

const module = "github.com/senenv/shellmenu"

var (
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
	rootDir = flag.String("root", "../../..", "Module root, used to read Go doc comments")
)

// Packages whose doc comments become schema descriptions.
var commentPackages = []string{
	"api/v1beta1",
	"api/v1beta1/configs",
	"pkg/command",
	"pkg/execs",
	"pkg/keys",
	"pkg/rule",
	"pkg/ui/picker",
}

func main() {
	flag.Parse()

	out, err := filepath.Abs(*outFile)
	if err != nil {
		log.Fatalf("resolve output path: %v", err)
	}

	// Comment keys are module-relative import paths.
	err = os.Chdir(*rootDir)
	if err != nil {
		log.Fatalf("change to module root: %v", err)
	}

	r := &jsonschema.Reflector{}

	for _, pkg := range commentPackages {
		err = r.AddGoComments(module, "./"+pkg)
		if err != nil {
			log.Fatalf("read comments for %s: %v", pkg, err)
		}
	}

	s := r.Reflect(configs.New())
	s.ID = jsonschema.ID(module + "/api/v1beta1/configs/config")

	jsData, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	// Write schema.json file.
	err = os.WriteFile(out, append(jsData, '\n'), 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
